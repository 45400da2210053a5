package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/api/types"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store *store.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(s *store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and the device snapshot
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Service is degraded"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK

	if h.store.Err() != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Devices:   len(h.store.Devices()),
		Timestamp: time.Now(),
	})
}
