package services

import (
	"context"

	"basha-backend/models"
)

const interestedLeads = 28

// weeklyViews are placeholder impressions until view tracking exists.
var weeklyViews = []models.DailyViews{
	{Name: "Mon", Views: 400},
	{Name: "Tue", Views: 300},
	{Name: "Wed", Views: 600},
	{Name: "Thu", Views: 800},
	{Name: "Fri", Views: 700},
	{Name: "Sat", Views: 900},
	{Name: "Sun", Views: 500},
}

type DashboardService struct {
	catalog  *CatalogService
	bookings *BookingService
}

func NewDashboardService(catalog *CatalogService, bookings *BookingService) *DashboardService {
	return &DashboardService{catalog: catalog, bookings: bookings}
}

// Get assembles the owner's dashboard.
func (s *DashboardService) Get(ctx context.Context, sess *Session) (*models.Dashboard, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}
	if !sess.User.IsOwner() {
		return nil, ErrOwnerOnly
	}

	listings, err := s.catalog.ListByOwner(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}
	requests, err := s.bookings.ListForOwner(ctx, sess.User.ID)
	if err != nil {
		return nil, err
	}

	stats := models.DashboardStats{
		TotalListings:   len(listings),
		InterestedLeads: interestedLeads,
		ProfileStatus:   "Verified Pro",
	}
	for _, r := range listings {
		if r.IsAvailable {
			stats.ActiveListings++
		}
	}
	for _, b := range requests {
		if b.Status == models.BookingPending {
			stats.PendingRequests++
		}
	}
	views := make([]models.DailyViews, len(weeklyViews))
	copy(views, weeklyViews)
	for _, d := range views {
		stats.TotalViews += d.Views
	}

	return &models.Dashboard{
		Owner:       sess.User,
		Listings:    listings,
		Requests:    requests,
		Stats:       stats,
		WeeklyViews: views,
	}, nil
}
