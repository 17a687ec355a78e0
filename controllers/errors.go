package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"basha-backend/logging"
	"basha-backend/models"
	"basha-backend/services"
	"basha-backend/utils"
)

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	var listingErr *services.ListingValidationError
	switch {
	case errors.As(err, &listingErr):
		utils.JSONErrorDetails(c, http.StatusBadRequest, utils.CodeListingInvalid, listingErr.Error(), listingErr.Steps)
	case errors.Is(err, models.ErrInvalidFilter):
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidFilter, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "status must be accepted or rejected")
	case errors.Is(err, services.ErrInvalidMoveInDate):
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "moveInDate must be YYYY-MM-DD")
	case errors.Is(err, services.ErrInvalidStep):
		utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, "step must be 1, 2 or 3")
	case errors.Is(err, services.ErrInvalidPhoto):
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidPhoto, err.Error())
	case errors.Is(err, services.ErrInvalidViewMode):
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidViewMode, "mode must be list or map")
	case errors.Is(err, services.ErrAuthRequired):
		utils.JSONError(c, http.StatusUnauthorized, utils.CodeAuthRequired, "please log in to continue")
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrSessionNotFound):
		utils.JSONError(c, http.StatusUnauthorized, utils.CodeInvalidToken, "session expired or invalid")
	case errors.Is(err, services.ErrOwnerOnly):
		utils.JSONError(c, http.StatusForbidden, utils.CodeOwnerOnly, "only owners can do this")
	case errors.Is(err, services.ErrNotListingOwner):
		utils.JSONError(c, http.StatusForbidden, utils.CodeForbidden, "you do not own this listing")
	case errors.Is(err, services.ErrRoomNotFound):
		utils.NotFound(c, "room not found")
	case errors.Is(err, services.ErrBookingAlreadyDecided):
		utils.JSONError(c, http.StatusConflict, utils.CodeAlreadyDecided, "booking request already decided")
	default:
		l := logging.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("request failed")
		utils.InternalError(c)
	}
}

// bindError reports a request body or query that failed to bind.
func bindError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrInvalidFilter) {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidFilter, err.Error())
		return
	}
	utils.JSONError(c, http.StatusBadRequest, utils.CodeValidation, err.Error())
}
