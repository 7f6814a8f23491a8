package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports backend liveness and schema readiness.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Ready(ctx context.Context) ([]string, error)
	Backend() string
}

// StaticHealthChecker always reports healthy; used when running on memory storage.
type StaticHealthChecker struct {
	Name   string
	Tables []string
}

// Ping always succeeds.
func (s StaticHealthChecker) Ping(context.Context) error { return nil }

// Ready returns the configured table names.
func (s StaticHealthChecker) Ready(context.Context) ([]string, error) {
	return append([]string(nil), s.Tables...), nil
}

// Backend returns Name.
func (s StaticHealthChecker) Backend() string { return s.Name }

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	checker HealthChecker
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		timeout: 3 * time.Second,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Health pings the backing store.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": h.now(),
			"database":  "disconnected",
			"backend":   h.checker.Backend(),
			"error":     err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now(),
		"database":  "connected",
		"backend":   h.checker.Backend(),
		"version":   apiVersion,
	})
}

// Ready verifies every application table is reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	tables, err := h.checker.Ready(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not_ready",
			"timestamp": h.now(),
			"database":  "not_ready",
			"error":     err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": h.now(),
		"database":  "ready",
		"tables":    tables,
	})
}
