package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/api/types"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/db"
)

// SettingsHandler handles dashboard settings endpoints
type SettingsHandler struct {
	db *db.DB
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(database *db.DB) *SettingsHandler {
	return &SettingsHandler{db: database}
}

// GetSettings handles GET /settings
// @Summary      Get settings
// @Description  Returns the dashboard preferences for the active profile
// @Tags         settings
// @Produce      json
// @Success      200  {object}  types.SettingsResponse
// @Failure      500  {object}  types.ErrorResponse  "Storage error"
// @Router       /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.activeSettings(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, types.SettingsResponse{
		VoiceControlEnabled:  settings.VoiceControlEnabled,
		NotificationsEnabled: settings.NotificationsEnabled,
		PollingIntervalSecs:  settings.PollingIntervalSecs,
	})
}

// UpdateSettings handles PUT /settings
// @Summary      Update settings
// @Description  Updates the dashboard preferences for the active profile. Omitted fields keep their current value.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request  body      types.UpdateSettingsRequest  true  "Settings changes"
// @Success      200      {object}  types.SettingsResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      500      {object}  types.ErrorResponse  "Storage error"
// @Router       /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req types.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if req.PollingIntervalSecs != nil && *req.PollingIntervalSecs <= 0 {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "polling_interval_secs must be positive",
		})
		return
	}

	settings, err := h.activeSettings(c)
	if err != nil {
		return
	}

	if req.VoiceControlEnabled != nil {
		settings.VoiceControlEnabled = *req.VoiceControlEnabled
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.PollingIntervalSecs != nil {
		settings.PollingIntervalSecs = *req.PollingIntervalSecs
	}

	if err := h.db.Settings().Update(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "storage_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.SettingsResponse{
		VoiceControlEnabled:  settings.VoiceControlEnabled,
		NotificationsEnabled: settings.NotificationsEnabled,
		PollingIntervalSecs:  settings.PollingIntervalSecs,
	})
}

// activeSettings loads the settings row for the active profile, writing the
// error response itself on failure.
func (h *SettingsHandler) activeSettings(c *gin.Context) (*db.Settings, error) {
	ctx := c.Request.Context()

	profile, err := h.db.Profiles().GetActive(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "storage_error",
			Message: err.Error(),
		})
		return nil, err
	}

	settings, err := h.db.Settings().Get(ctx, profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "storage_error",
			Message: err.Error(),
		})
		return nil, err
	}
	return settings, nil
}
