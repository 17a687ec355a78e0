package models

type DailyViews struct {
	Name  string `json:"name"`
	Views int    `json:"views"`
}

type DashboardStats struct {
	TotalListings   int    `json:"totalListings"`
	ActiveListings  int    `json:"activeListings"`
	PendingRequests int    `json:"pendingRequests"`
	TotalViews      int    `json:"totalViews"`
	InterestedLeads int    `json:"interestedLeads"`
	ProfileStatus   string `json:"profileStatus"`
}

type Dashboard struct {
	Owner       *User            `json:"owner"`
	Listings    []Room           `json:"listings"`
	Requests    []BookingRequest `json:"requests"`
	Stats       DashboardStats   `json:"stats"`
	WeeklyViews []DailyViews     `json:"weeklyViews"`
}
