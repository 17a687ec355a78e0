package services

import (
	"context"

	"basha-backend/models"
)

// RoomLister supplies the catalog in catalog order.
type RoomLister interface {
	List(ctx context.Context) ([]models.Room, error)
}

type SearchService struct {
	rooms RoomLister
}

func NewSearchService(rooms RoomLister) *SearchService {
	return &SearchService{rooms: rooms}
}

// Search runs the filter engine over the current catalog.
func (s *SearchService) Search(ctx context.Context, f models.FilterState) (models.SearchResult, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return models.SearchResult{}, err
	}
	matched := FilterRooms(rooms, f)
	return models.SearchResult{
		Rooms:   matched,
		Total:   len(matched),
		Empty:   len(matched) == 0,
		Filters: f,
		Reset:   models.DefaultFilterState(),
	}, nil
}
