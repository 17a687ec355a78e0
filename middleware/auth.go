package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"basha-backend/logging"
	"basha-backend/services"
	"basha-backend/utils"
)

const sessionKey = "session"

// Authenticator resolves bearer tokens to sessions.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.Session, error)
}

// Session loads the caller's session when a bearer token is sent. Requests
// without a token pass through anonymously; a bad token is rejected.
func Session(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			utils.JSONError(c, http.StatusUnauthorized, utils.CodeInvalidToken, "malformed authorization header")
			c.Abort()
			return
		}

		sess, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, services.ErrInvalidToken) {
				utils.JSONError(c, http.StatusUnauthorized, utils.CodeInvalidToken, "session expired or invalid")
			} else {
				l := logging.Ctx(c.Request.Context())
				l.Error().Err(err).Msg("load session failed")
				utils.InternalError(c)
			}
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Set(logging.FieldUserID, sess.User.ID)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			utils.JSONError(c, http.StatusUnauthorized, utils.CodeAuthRequired, "please log in to continue")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireOwner rejects anyone who is not logged in as an owner.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil {
			utils.JSONError(c, http.StatusUnauthorized, utils.CodeAuthRequired, "please log in to continue")
			c.Abort()
			return
		}
		if !sess.User.IsOwner() {
			utils.JSONError(c, http.StatusForbidden, utils.CodeOwnerOnly, "only owners can do this")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the request's session, or nil when anonymous.
func CurrentSession(c *gin.Context) *services.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*services.Session)
	return sess
}
