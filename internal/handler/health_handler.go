package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lalajistore/vendor-gateway/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// GetHealth responds with service status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
	})
}
