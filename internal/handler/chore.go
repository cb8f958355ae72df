package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/chores"
	"github.com/homehero/homehero/internal/models"
)

// ChoreHandler serves chore creation, listing and completion.
type ChoreHandler struct {
	service *chores.Service
}

func NewChoreHandler(service *chores.Service) *ChoreHandler {
	return &ChoreHandler{service: service}
}

type createChoreRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	DueAt         int64    `json:"dueAt"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	RepeatRule    string   `json:"repeatRule"`
	RotateEnabled bool     `json:"rotateEnabled"`
	RotateWith    []string `json:"rotateWith"`
	AssigneeID    string   `json:"assigneeId"`
}

type choreResponse struct {
	ID            string   `json:"id"`
	HouseholdID   string   `json:"householdId"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	DueAt         int64    `json:"dueAt,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
	EndDate       string   `json:"endDate,omitempty"`
	RepeatRule    string   `json:"repeatRule"`
	RotateEnabled bool     `json:"rotateEnabled"`
	RotateWith    []string `json:"rotateWith,omitempty"`
	AssigneeID    string   `json:"assigneeId"`
	Impact        int      `json:"impact"`
	CreatedAt     int64    `json:"createdAt"`
}

func toChoreResponse(chore *models.Chore) choreResponse {
	return choreResponse{
		ID:            chore.ID,
		HouseholdID:   chore.HouseholdID,
		Title:         chore.Title,
		Description:   chore.Description,
		DueAt:         chore.DueAt,
		StartDate:     chore.StartDate,
		EndDate:       chore.EndDate,
		RepeatRule:    chore.RepeatRule,
		RotateEnabled: chore.RotateEnabled,
		RotateWith:    chore.RotateWith,
		AssigneeID:    chore.AssigneeID,
		Impact:        chore.Impact,
		CreatedAt:     chore.CreatedAt,
	}
}

// Create adds a chore to the household, resolving its assignee and
// impact server-side.
func (h *ChoreHandler) Create(c *gin.Context) {
	var req createChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	chore, err := h.service.Create(c.Request.Context(), c.Param("householdId"), chores.CreateRequest{
		Title:         req.Title,
		Description:   req.Description,
		DueAt:         req.DueAt,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		RepeatRule:    req.RepeatRule,
		RotateEnabled: req.RotateEnabled,
		RotateWith:    req.RotateWith,
		AssigneeID:    req.AssigneeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toChoreResponse(chore))
}

// List returns a household's open chores.
func (h *ChoreHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Param("householdId"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]choreResponse, len(list))
	for i := range list {
		out[i] = toChoreResponse(&list[i])
	}
	c.JSON(http.StatusOK, gin.H{"chores": out})
}

// Complete closes a chore and credits the linked profile's score.
func (h *ChoreHandler) Complete(c *gin.Context) {
	err := h.service.Complete(c.Request.Context(), c.Param("householdId"), c.Param("choreId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
