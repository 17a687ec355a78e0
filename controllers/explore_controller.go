package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"basha-backend/models"
	"basha-backend/services"
	"basha-backend/utils"
)

const HeaderExploreSession = "X-Explore-Session"

type ExploreController struct {
	explore *services.ExploreService
}

func NewExploreController(explore *services.ExploreService) *ExploreController {
	return &ExploreController{explore: explore}
}

// sessionID reads the explore session header, minting one when absent.
func (ec *ExploreController) sessionID(c *gin.Context) string {
	sid := strings.TrimSpace(c.GetHeader(HeaderExploreSession))
	if sid == "" {
		sid = services.NewExploreSessionID()
	}
	c.Header(HeaderExploreSession, sid)
	return sid
}

func (ec *ExploreController) reply(c *gin.Context, view models.ExploreView, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	utils.OK(c, view)
}

// Mount handles POST /api/explore/mount?area=
func (ec *ExploreController) Mount(c *gin.Context) {
	view, err := ec.explore.Mount(c.Request.Context(), ec.sessionID(c), c.Query("area"))
	ec.reply(c, view, err)
}

func (ec *ExploreController) Get(c *gin.Context) {
	view, err := ec.explore.Get(c.Request.Context(), ec.sessionID(c))
	ec.reply(c, view, err)
}

func (ec *ExploreController) SetFilters(c *gin.Context) {
	var patch models.FilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	view, err := ec.explore.SetFilters(c.Request.Context(), ec.sessionID(c), patch)
	ec.reply(c, view, err)
}

func (ec *ExploreController) SetViewMode(c *gin.Context) {
	var in models.SetViewModeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	view, err := ec.explore.SetViewMode(c.Request.Context(), ec.sessionID(c), in.Mode)
	ec.reply(c, view, err)
}

func (ec *ExploreController) BoundsChanged(c *gin.Context) {
	var bounds models.MapBounds
	if err := c.ShouldBindJSON(&bounds); err != nil {
		bindError(c, err)
		return
	}
	view, err := ec.explore.BoundsChanged(c.Request.Context(), ec.sessionID(c), bounds)
	ec.reply(c, view, err)
}

func (ec *ExploreController) ConfirmSearchArea(c *gin.Context) {
	view, err := ec.explore.ConfirmSearchArea(c.Request.Context(), ec.sessionID(c))
	ec.reply(c, view, err)
}

func (ec *ExploreController) Reset(c *gin.Context) {
	view, err := ec.explore.Reset(c.Request.Context(), ec.sessionID(c))
	ec.reply(c, view, err)
}
