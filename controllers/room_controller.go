package controllers

import (
	"github.com/gin-gonic/gin"

	"basha-backend/middleware"
	"basha-backend/models"
	"basha-backend/services"
	"basha-backend/utils"
)

type RoomController struct {
	rooms  *services.RoomService
	search *services.SearchService
}

func NewRoomController(rooms *services.RoomService, search *services.SearchService) *RoomController {
	return &RoomController{rooms: rooms, search: search}
}

// Search handles GET /api/rooms?q=&budget=&type=&gender=&area=
func (rc *RoomController) Search(c *gin.Context) {
	var q models.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	f, err := q.FilterState()
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := rc.search.Search(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, res)
}

func (rc *RoomController) DefaultFilters(c *gin.Context) {
	utils.OK(c, models.DefaultFilterState())
}

// GetRoom handles GET /api/rooms/:id
func (rc *RoomController) GetRoom(c *gin.Context) {
	detail, err := rc.rooms.Detail(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, detail)
}

func (rc *RoomController) GetAreas(c *gin.Context) {
	utils.OK(c, rc.rooms.Areas())
}
