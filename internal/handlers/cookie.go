package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SessionTokenCookie is the cookie mirroring the issued session token.
// The JSON response body remains the contract; the cookie is a
// convenience for browser clients.
const SessionTokenCookie = "session_token"

// CookieConfig controls cookie attributes per deployment.
type CookieConfig struct {
	Path   string
	Domain string
	Secure bool
}

// CookieHelper manages the session token cookie.
type CookieHelper struct {
	config CookieConfig
	expiry time.Duration
}

// NewCookieHelper creates a cookie helper with the given configuration.
func NewCookieHelper(config CookieConfig, expiry time.Duration) *CookieHelper {
	if config.Path == "" {
		config.Path = "/"
	}
	return &CookieHelper{config: config, expiry: expiry}
}

// SetSessionCookie sets the session token cookie.
func (h *CookieHelper) SetSessionCookie(c *gin.Context, token string) {
	h.setCookie(c, token, int(h.expiry.Seconds()))
}

// ClearSessionCookie removes the session token cookie.
func (h *CookieHelper) ClearSessionCookie(c *gin.Context) {
	h.setCookie(c, "", -1)
}

// GetSessionToken retrieves the session token from the cookie, if any.
func (h *CookieHelper) GetSessionToken(c *gin.Context) string {
	token, err := c.Cookie(SessionTokenCookie)
	if err != nil {
		return ""
	}
	return token
}

func (h *CookieHelper) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetCookie(
		SessionTokenCookie,
		value,
		maxAge,
		h.config.Path,
		h.config.Domain,
		h.config.Secure,
		true, // httpOnly - always true for auth cookies
	)
}
