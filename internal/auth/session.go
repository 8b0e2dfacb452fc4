package auth

import (
	"net/http"

	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/gin-gonic/gin"
)

// SessionCookie carries the access token for browser clients.
// HttpOnly and SameSite=Lax: cross-site form posts arrive without it.
type SessionCookie struct {
	name   string
	maxAge int
	secure bool
}

func NewSessionCookie(cfg config.JWTConfig) SessionCookie {
	return SessionCookie{
		name:   cfg.CookieName,
		maxAge: int(cfg.Expiry.Seconds()),
		secure: cfg.CookieSecure,
	}
}

func (s SessionCookie) Name() string {
	return s.name
}

func (s SessionCookie) Set(c *gin.Context, accessToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, accessToken, s.maxAge, "/", "", s.secure, true)
}

func (s SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, "", -1, "/", "", s.secure, true)
}
