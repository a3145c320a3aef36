package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/observability"
)

// Metrics records request counts, latency and in-flight requests per route
// template. Unmatched paths share one label so scanners cannot grow the series.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		m.ApiInflightInc()
		defer m.ApiInflightDec()
		start := time.Now()
		c.Next()
		m.ObserveAPI(c.Request.Method, routeLabel(c), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func routeLabel(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}
