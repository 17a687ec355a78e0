package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the envelope.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidFilter   = "INVALID_FILTER"
	CodeAuthRequired    = "AUTH_REQUIRED"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeOwnerOnly       = "OWNER_ONLY"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyDecided  = "BOOKING_ALREADY_DECIDED"
	CodeInternal        = "INTERNAL_ERROR"
	CodeListingInvalid  = "LISTING_INVALID"
	CodeInvalidPhoto    = "INVALID_PHOTO"
	CodeInvalidViewMode = "INVALID_VIEW_MODE"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Response{Success: true, Data: data})
}

func OK(c *gin.Context, data interface{}) {
	JSONSuccess(c, http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	JSONSuccess(c, http.StatusCreated, data)
}

func JSONError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}})
}

// JSONErrorDetails is JSONError with a machine-readable details payload.
func JSONErrorDetails(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, Response{Success: false, Error: &ErrorInfo{Code: code, Message: message, Details: details}})
}

func BadRequest(c *gin.Context, message string) {
	JSONError(c, http.StatusBadRequest, CodeBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	JSONError(c, http.StatusNotFound, CodeNotFound, message)
}

func InternalError(c *gin.Context) {
	JSONError(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
