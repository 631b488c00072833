package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/auth"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
)

const (
	CSRFHeader = "X-CSRF-Token"
	CSRFField  = "csrf_token"
)

// CSRF rejects unsafe requests that do not echo the session's token, either
// in the X-CSRF-Token header or the csrf_token form field.
func CSRF(codec *auth.SessionCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		token := c.GetHeader(CSRFHeader)
		if token == "" {
			token = c.PostForm(CSRFField)
		}
		if !codec.ValidCSRF(views.Session(c).Key(), token) {
			zerolog.Ctx(c.Request.Context()).Warn().Str("path", c.Request.URL.Path).Msg("🚫 CSRF check failed")
			views.Error(c, http.StatusForbidden, "CSRF verification failed. Reload the page and try again.")
			return
		}
		c.Next()
	}
}
