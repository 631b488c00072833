package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/views"
	"github.com/rs/zerolog"
)

// Logger attaches a request-scoped logger to the request context and writes
// one line per request once it completes.
func Logger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := base.With().Str("request_id", GetRequestID(c)).Logger()
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Uint("user_id", views.CurrentUserID(c)).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}
