package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/teazen/metrics"
)

// Metrics records every request under its route pattern.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := m.Begin(c.Request.Method)
		c.Next()
		done(c.FullPath(), c.Writer.Status(), time.Since(start).Seconds())
	}
}
