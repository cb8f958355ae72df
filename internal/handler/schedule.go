package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/middleware"
	"github.com/homehero/homehero/internal/schedules"
)

// ScheduleHandler serves the acting profile's weekly availability.
type ScheduleHandler struct {
	service *schedules.Service
}

func NewScheduleHandler(service *schedules.Service) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

type scheduleRequest struct {
	// Weekly is an opaque JSON document owned by the client.
	Weekly json.RawMessage `json:"weekly" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.service.Get(c.Request.Context(), middleware.ProfileID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profileId": schedule.ProfileID,
		"weekly":    json.RawMessage(schedule.Weekly),
	})
}

func (h *ScheduleHandler) Put(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	schedule, err := h.service.Put(c.Request.Context(), middleware.ProfileID(c), string(req.Weekly))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profileId": schedule.ProfileID,
		"weekly":    json.RawMessage(schedule.Weekly),
	})
}
