package services

import (
	"context"

	"basha-backend/logging"
	"basha-backend/models"
)

type FavoriteService struct {
	catalog *CatalogService
	auth    *AuthService
}

func NewFavoriteService(catalog *CatalogService, auth *AuthService) *FavoriteService {
	return &FavoriteService{catalog: catalog, auth: auth}
}

// Toggle flips roomID in the session user's favorites.
func (s *FavoriteService) Toggle(ctx context.Context, sess *Session, roomID string) (*models.FavoriteResult, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}
	if _, err := s.catalog.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	var favorited bool
	err := s.auth.UpdateUser(ctx, sess, func(u *models.User) {
		favorited = u.ToggleFavorite(roomID)
	})
	if err != nil {
		return nil, err
	}

	logging.Audit(ctx, logging.ActionFavoriteToggle, sess.User.ID, "favorite toggled")
	return &models.FavoriteResult{
		RoomID:    roomID,
		Favorited: favorited,
		Favorites: sess.User.Favorites,
	}, nil
}

// List returns the favorite rooms in catalog order.
func (s *FavoriteService) List(ctx context.Context, sess *Session) ([]models.Room, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}
	return s.catalog.ListByIDs(ctx, sess.User.Favorites)
}
