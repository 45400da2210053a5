package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/api/types"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/command"
)

// CommandHandler handles natural-language command endpoints
type CommandHandler struct {
	dispatcher *command.Dispatcher
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(d *command.Dispatcher) *CommandHandler {
	return &CommandHandler{dispatcher: d}
}

// Dispatch handles POST /commands
// @Summary      Dispatch a natural-language command
// @Description  Interprets a free-text phrase and applies the matching device actions. Unrecognized or unmatched phrases return 200 with a non-applied result, not an error.
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        request  body      types.CommandRequest  true  "Command phrase"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Router       /commands [post]
func (h *CommandHandler) Dispatch(c *gin.Context) {
	var req types.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "text is required",
		})
		return
	}

	outcome := h.dispatcher.Dispatch(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, types.CommandResponse{Outcome: outcome})
}

// Recent handles GET /commands/recent
// @Summary      Recent commands
// @Description  Returns the last few dispatched commands, newest first
// @Tags         commands
// @Produce      json
// @Success      200  {object}  types.RecentCommandsResponse
// @Router       /commands/recent [get]
func (h *CommandHandler) Recent(c *gin.Context) {
	c.JSON(http.StatusOK, types.RecentCommandsResponse{
		Commands: h.dispatcher.Recent(),
	})
}
