package controllers

import (
	"github.com/gin-gonic/gin"

	"basha-backend/middleware"
	"basha-backend/services"
	"basha-backend/utils"
)

type FavoriteController struct {
	favorites *services.FavoriteService
}

func NewFavoriteController(favorites *services.FavoriteService) *FavoriteController {
	return &FavoriteController{favorites: favorites}
}

// Toggle handles POST /api/favorites/:roomId/toggle. Anonymous callers get AUTH_REQUIRED.
func (fc *FavoriteController) Toggle(c *gin.Context) {
	res, err := fc.favorites.Toggle(c.Request.Context(), middleware.CurrentSession(c), c.Param("roomId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, res)
}

func (fc *FavoriteController) List(c *gin.Context) {
	rooms, err := fc.favorites.List(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, rooms)
}
