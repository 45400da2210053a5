package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/api/types"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

// DevicesHandler handles device read endpoints
type DevicesHandler struct {
	store *store.Store
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(s *store.Store) *DevicesHandler {
	return &DevicesHandler{store: s}
}

// ListDevices handles GET /devices
// @Summary      List all devices
// @Description  Returns the current device snapshot, optionally filtered by type
// @Tags         devices
// @Produce      json
// @Param        type  query     string  false  "Filter by device type (light, thermostat, lock, camera)"
// @Success      200   {object}  types.ListDevicesResponse
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	devices := h.store.Devices()
	if deviceType := c.Query("type"); deviceType != "" {
		devices = h.store.DevicesByType(deviceType)
	}

	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices: devices,
		Count:   len(devices),
	})
}

// GetDevice handles GET /devices/:id
// @Summary      Get device details
// @Description  Returns the snapshot entry for a specific device
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device ID"
// @Success      200  {object}  types.DeviceResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id} [get]
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	id := c.Param("id")

	d, ok := h.store.DeviceByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Device not found",
		})
		return
	}

	c.JSON(http.StatusOK, types.DeviceResponse{Device: d})
}

// RefreshDevices handles POST /devices/refresh
// @Summary      Refresh the device snapshot
// @Description  Reloads all devices from the registry and returns the new snapshot
// @Tags         devices
// @Produce      json
// @Success      200  {object}  types.ListDevicesResponse
// @Failure      502  {object}  types.ErrorResponse  "Registry error"
// @Router       /devices/refresh [post]
func (h *DevicesHandler) RefreshDevices(c *gin.Context) {
	if err := h.store.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error:   "registry_error",
			Message: err.Error(),
		})
		return
	}

	devices := h.store.Devices()
	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices: devices,
		Count:   len(devices),
	})
}
