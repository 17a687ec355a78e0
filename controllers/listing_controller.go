package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"basha-backend/middleware"
	"basha-backend/models"
	"basha-backend/services"
	"basha-backend/utils"
)

type ListingController struct {
	listings *services.ListingService
	ai       *services.AIService
}

func NewListingController(listings *services.ListingService, ai *services.AIService) *ListingController {
	return &ListingController{listings: listings, ai: ai}
}

// ValidateStep handles POST /api/listings/validate?step=N
func (lc *ListingController) ValidateStep(c *gin.Context) {
	step, err := strconv.Atoi(c.Query("step"))
	if err != nil {
		respondError(c, services.ErrInvalidStep)
		return
	}
	var in models.ListingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	res, err := lc.listings.ValidateStep(c.Request.Context(), step, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, res)
}

func (lc *ListingController) Create(c *gin.Context) {
	var in models.ListingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	room, err := lc.listings.Create(c.Request.Context(), middleware.CurrentSession(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, room)
}

// GenerateDescription always answers 200; failures fall back to a canned text.
func (lc *ListingController) GenerateDescription(c *gin.Context) {
	var in models.DescriptionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	utils.OK(c, gin.H{"description": lc.ai.GenerateDescription(c.Request.Context(), in)})
}
