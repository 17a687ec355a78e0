package controllers

import (
	"github.com/gin-gonic/gin"

	"basha-backend/middleware"
	"basha-backend/models"
	"basha-backend/services"
	"basha-backend/utils"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// Create handles POST /api/bookings
func (bc *BookingController) Create(c *gin.Context) {
	var in models.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	b, err := bc.bookings.Create(c.Request.Context(), middleware.CurrentSession(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, b)
}

func (bc *BookingController) Mine(c *gin.Context) {
	list, err := bc.bookings.ListForStudent(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, list)
}

// Incoming lists requests against the owner's rooms.
func (bc *BookingController) Incoming(c *gin.Context) {
	list, err := bc.bookings.ListForOwner(c.Request.Context(), middleware.CurrentSession(c).User.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, list)
}

// UpdateStatus handles PATCH /api/bookings/:id/status. An unknown id answers
// 200 with updated=false.
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	var in models.UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	b, updated, err := bc.bookings.UpdateStatus(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), in.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, gin.H{"updated": updated, "booking": b})
}
