package services

import (
	"context"

	"basha-backend/models"
)

// RoomService builds the room page.
type RoomService struct {
	catalog *CatalogService
	ai      *AIService
}

func NewRoomService(catalog *CatalogService, ai *AIService) *RoomService {
	return &RoomService{catalog: catalog, ai: ai}
}

// Detail returns the room with pricing and area insights. sess may be nil.
func (s *RoomService) Detail(ctx context.Context, sess *Session, id string) (*models.RoomDetail, error) {
	room, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.RoomDetail{
		Room:         *room,
		Pricing:      room.Pricing(),
		AreaInsights: s.ai.AreaInsights(ctx, room.Area),
		BookingForm:  models.DefaultBookingForm(),
	}
	if sess != nil {
		detail.IsFavorite = sess.User.HasFavorite(room.ID)
	}
	return detail, nil
}

func (s *RoomService) Areas() []string {
	return models.Areas
}
