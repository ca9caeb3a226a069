package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"northpole/wishhub/internal/repository"
	"northpole/wishhub/pkg/response"
)

const defaultEventLimit = 100

// EventHandler exposes the persisted notification log to indexers and
// operators. Only mounted when the postgres event log is configured.
type EventHandler struct {
	events repository.EventLogRepository
}

func NewEventHandler(events repository.EventLogRepository) *EventHandler {
	return &EventHandler{events: events}
}

// ListRecent returns the newest events, newest first.
func (h *EventHandler) ListRecent(c *gin.Context) {
	limit := defaultEventLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	events, err := h.events.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c, "failed to list events")
		return
	}
	response.Success(c, events)
}
