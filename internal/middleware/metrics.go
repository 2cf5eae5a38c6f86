package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zeon-projects/beach-cleanup-api/internal/service"
)

const scrapePath = "/metrics"

// Metrics records request counts and latency for every route except
// the scrape endpoint itself. Unmatched routes are collapsed into a
// single label so random scanner traffic cannot inflate the path
// cardinality.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == scrapePath {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
