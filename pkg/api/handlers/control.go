package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/api/types"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/device"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

// ControlHandler handles device mutation endpoints
type ControlHandler struct {
	store *store.Store
}

// NewControlHandler creates a new control handler
func NewControlHandler(s *store.Store) *ControlHandler {
	return &ControlHandler{store: s}
}

// ToggleLight handles POST /lights/:id/toggle
// @Summary      Toggle a light
// @Description  Flips the light between on and off and returns its new state
// @Tags         control
// @Produce      json
// @Param        id   path      string  true  "Light device ID"
// @Success      200  {object}  types.DeviceResponse
// @Failure      404  {object}  types.ErrorResponse  "No light with this ID"
// @Failure      422  {object}  types.ErrorResponse  "State rejected"
// @Router       /lights/{id}/toggle [post]
func (h *ControlHandler) ToggleLight(c *gin.Context) {
	d, err := h.store.ToggleLight(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeControlError(c, err, "No light with this ID")
		return
	}
	c.JSON(http.StatusOK, types.DeviceResponse{Device: d})
}

// SetThermostat handles POST /thermostats/:id/temperature
// @Summary      Set a thermostat temperature
// @Description  Sets the target temperature and forces the thermostat on
// @Tags         control
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Thermostat device ID"
// @Param        request  body      types.SetThermostatRequest   true  "Target temperature in degrees Celsius"
// @Success      200      {object}  types.DeviceResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "No thermostat with this ID"
// @Router       /thermostats/{id}/temperature [post]
func (h *ControlHandler) SetThermostat(c *gin.Context) {
	var req types.SetThermostatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "temperature is required",
		})
		return
	}

	d, err := h.store.SetThermostat(c.Request.Context(), c.Param("id"), req.Temperature)
	if err != nil {
		writeControlError(c, err, "No thermostat with this ID")
		return
	}
	c.JSON(http.StatusOK, types.DeviceResponse{Device: d})
}

// ToggleLock handles POST /locks/:id/toggle
// @Summary      Toggle a lock
// @Description  Flips the lock between locked and unlocked and returns its new state
// @Tags         control
// @Produce      json
// @Param        id   path      string  true  "Lock device ID"
// @Success      200  {object}  types.DeviceResponse
// @Failure      404  {object}  types.ErrorResponse  "No lock with this ID"
// @Failure      422  {object}  types.ErrorResponse  "State rejected"
// @Router       /locks/{id}/toggle [post]
func (h *ControlHandler) ToggleLock(c *gin.Context) {
	d, err := h.store.ToggleLock(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeControlError(c, err, "No lock with this ID")
		return
	}
	c.JSON(http.StatusOK, types.DeviceResponse{Device: d})
}

// writeControlError maps verb errors to HTTP responses. Absence and a type
// mismatch both read as "no such device of this kind" to callers, but the
// error code tells them apart.
func writeControlError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, device.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: notFoundMsg,
		})
	case errors.Is(err, device.ErrWrongType):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "wrong_type",
			Message: notFoundMsg,
		})
	case errors.Is(err, device.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, types.ErrorResponse{
			Error:   "invalid_state",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "registry_error",
			Message: err.Error(),
		})
	}
}
