package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zeon-projects/beach-cleanup-api/internal/service"
)

type readinessChecker interface {
	Ready(ctx context.Context) error
}

// HealthHandler exposes liveness, readiness and metrics endpoints.
type HealthHandler struct {
	checker readinessChecker
	metrics *service.MetricsService
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(checker readinessChecker, metrics *service.MetricsService) *HealthHandler {
	return &HealthHandler{checker: checker, metrics: metrics}
}

// Root godoc
// @Summary Liveness string for the landing page
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "🌊 Beach Cleanup 2025 Server is running!")
}

// Health responds with a generic OK payload.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the persistence store is reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.checker != nil {
		if err := h.checker.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *HealthHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
