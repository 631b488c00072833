package views

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/models"
	"github.com/junaidrashid-git/teazen/session"
)

// Context keys set by middleware.
const (
	sessionKey     = "teazen.session"
	userKey        = "teazen.user"
	csrfKey        = "teazen.csrf"
	cartCounterKey = "teazen.cart_counter"
)

func SetSession(c *gin.Context, s *session.Session) { c.Set(sessionKey, s) }

// Session returns the request's session; middleware always sets one.
func Session(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		return v.(*session.Session)
	}
	return session.New("")
}

func SetUser(c *gin.Context, u *models.User) { c.Set(userKey, u) }

// CurrentUser is nil for anonymous visitors.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		u, _ := v.(*models.User)
		return u
	}
	return nil
}

func CurrentUserID(c *gin.Context) uint {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}

// SetCSRF stores the token forms must echo back.
func SetCSRF(c *gin.Context, token string) { c.Set(csrfKey, token) }

func CSRF(c *gin.Context) string { return c.GetString(csrfKey) }

// SetCartCounter installs the lookup for the header cart badge.
func SetCartCounter(c *gin.Context, fn func() int) { c.Set(cartCounterKey, fn) }

func cartCount(c *gin.Context) int {
	if v, ok := c.Get(cartCounterKey); ok {
		if fn, ok := v.(func() int); ok {
			return fn()
		}
	}
	return 0
}

// Flash queues a notice for the next rendered page.
func Flash(c *gin.Context, level, message string) {
	Session(c).AddFlash(level, message)
}
