package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoyceUbale/animated-smart-home-verse/pkg/api/types"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/history"
	"github.com/JoyceUbale/animated-smart-home-verse/pkg/store"
)

// EventsHandler handles device history endpoints
type EventsHandler struct {
	log   *history.Log
	store *store.Store
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(log *history.Log, s *store.Store) *EventsHandler {
	return &EventsHandler{log: log, store: s}
}

// ListEvents handles GET /events
// @Summary      List device events
// @Description  Returns recent device history, newest first, optionally scoped to one device
// @Tags         events
// @Produce      json
// @Param        device_id  query     string  false  "Only events for this device"
// @Param        limit      query     int     false  "Maximum events to return (default 20)"
// @Success      200        {object}  types.EventsResponse
// @Failure      500        {object}  types.ErrorResponse  "Storage error"
// @Router       /events [get]
func (h *EventsHandler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	limit := history.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	var (
		events []history.Event
		err    error
	)
	if deviceID := c.Query("device_id"); deviceID != "" {
		events, err = h.log.ByDevice(ctx, deviceID, limit)
	} else {
		events, err = h.log.Recent(ctx, limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "storage_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.EventsResponse{
		Events: events,
		Count:  len(events),
	})
}

// Stream handles GET /events/stream (SSE)
// @Summary      Subscribe to device updates
// @Description  Server-Sent Events stream of snapshot refreshes and device state changes
// @Tags         events
// @Produce      text/event-stream
// @Success      200  {string}  string  "SSE event stream"
// @Router       /events/stream [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	updates := h.store.Subscribe()
	defer h.store.Unsubscribe(updates)

	sendSSEEvent(c.Writer, "connected", map[string]any{
		"timestamp": time.Now(),
		"message":   "Connected to device update stream",
	})
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-clientGone:
			return

		case update, ok := <-updates:
			if !ok {
				return
			}
			sendSSEEvent(c.Writer, update.Type, update)
			c.Writer.Flush()

		case <-ticker.C:
			sendSSEEvent(c.Writer, "heartbeat", map[string]any{
				"timestamp": time.Now(),
			})
			c.Writer.Flush()
		}
	}
}

// sendSSEEvent writes an SSE event to the response
func sendSSEEvent(w io.Writer, eventType string, data any) {
	jsonData, _ := json.Marshal(data)
	io.WriteString(w, "event: "+eventType+"\n")
	io.WriteString(w, "data: "+string(jsonData)+"\n\n")
}
