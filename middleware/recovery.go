package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
)

// Recovery turns a panic into a logged 500 page.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				zerolog.Ctx(c.Request.Context()).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("💥 panic recovered")
				if c.Writer.Written() {
					c.Abort()
					return
				}
				views.Error(c, http.StatusInternalServerError, "")
			}
		}()
		c.Next()
	}
}
