package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"basha-backend/logging"
)

const HeaderRequestID = "X-Request-ID"

// Logger tags each request with an id, puts a child logger on the request
// context and logs the outcome.
func Logger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		child := logger.With().
			Str(logging.FieldRequestID, reqID).
			Str(logging.FieldMethod, c.Request.Method).
			Str(logging.FieldPath, c.Request.URL.Path).
			Str(logging.FieldClientIP, c.ClientIP()).
			Logger()

		c.Header(HeaderRequestID, reqID)
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), child))

		c.Next()

		status := c.Writer.Status()
		evt := child.Info()
		if status >= 500 {
			evt = child.Error()
		}
		evt = evt.Int(logging.FieldStatus, status).
			Float64(logging.FieldLatency, float64(time.Since(start).Microseconds())/1000)
		if userID := c.GetString(logging.FieldUserID); userID != "" {
			evt = evt.Str(logging.FieldUserID, userID)
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}
		evt.Msg("request completed")
	}
}
