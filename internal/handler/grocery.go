package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/groceries"
	"github.com/homehero/homehero/internal/middleware"
	"github.com/homehero/homehero/internal/models"
)

// GroceryHandler serves the household grocery list.
type GroceryHandler struct {
	service *groceries.Service
}

func NewGroceryHandler(service *groceries.Service) *GroceryHandler {
	return &GroceryHandler{service: service}
}

type groceryRequest struct {
	Name string  `json:"name" binding:"required"`
	Cost float64 `json:"cost"`
}

type groceryResponse struct {
	ID          string  `json:"id"`
	HouseholdID string  `json:"householdId"`
	ProfileID   string  `json:"profileId"`
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	CreatedAt   int64   `json:"createdAt"`
}

func toGroceryResponse(g *models.Grocery) groceryResponse {
	return groceryResponse{
		ID:          g.ID,
		HouseholdID: g.HouseholdID,
		ProfileID:   g.ProfileID,
		Name:        g.Name,
		Cost:        g.Cost,
		CreatedAt:   g.CreatedAt,
	}
}

func (h *GroceryHandler) Add(c *gin.Context) {
	var req groceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	grocery, err := h.service.Add(c.Request.Context(), c.Param("householdId"), middleware.ProfileID(c), req.Name, req.Cost)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroceryResponse(grocery))
}

func (h *GroceryHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Param("householdId"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]groceryResponse, len(list))
	for i := range list {
		out[i] = toGroceryResponse(&list[i])
	}
	c.JSON(http.StatusOK, gin.H{"groceries": out})
}

func (h *GroceryHandler) Update(c *gin.Context) {
	var req groceryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	grocery := &models.Grocery{
		ID:   c.Param("groceryId"),
		Name: req.Name,
		Cost: req.Cost,
	}
	if err := h.service.Update(c.Request.Context(), grocery); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GroceryHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("groceryId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
