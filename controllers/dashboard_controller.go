package controllers

import (
	"github.com/gin-gonic/gin"

	"basha-backend/middleware"
	"basha-backend/services"
	"basha-backend/utils"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

func (dc *DashboardController) Get(c *gin.Context) {
	d, err := dc.dashboard.Get(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, d)
}
