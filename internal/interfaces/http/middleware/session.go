package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pupuk/storefront/internal/infrastructure/logger"
)

const (
	SessionHeader     = "X-Session-ID"
	sessionContextKey = "session_id"
)

// SessionConfig controls the storefront session cookie
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session resolves the visitor's session id from the cookie, falling back
// to the X-Session-ID header, and issues a new one when neither carries a
// valid uuid. The id is echoed in the cookie and the response header.
func Session(cfg SessionConfig) gin.HandlerFunc {
	if cfg.CookieName == "" {
		cfg.CookieName = "storefront_session"
	}
	return func(c *gin.Context) {
		id := ""
		if v, err := c.Cookie(cfg.CookieName); err == nil && validSessionID(v) {
			id = v
		} else if v := c.GetHeader(SessionHeader); validSessionID(v) {
			id = v
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, id, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
		c.Header(SessionHeader, id)
		c.Set(sessionContextKey, id)

		ctx, _ := logger.WithSessionID(c.Request.Context(), logger.FromContext(c.Request.Context()), id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func validSessionID(v string) bool {
	if v == "" {
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}

// GetSessionID returns the id set by Session.
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
