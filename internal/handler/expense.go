package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/expenses"
	"github.com/homehero/homehero/internal/middleware"
	"github.com/homehero/homehero/internal/models"
)

// ExpenseHandler serves expense recording, splitting and settlement.
type ExpenseHandler struct {
	service *expenses.Service
}

func NewExpenseHandler(service *expenses.Service) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

type createExpenseRequest struct {
	Item         string   `json:"item" binding:"required"`
	Cost         float64  `json:"cost" binding:"required"`
	Score        int      `json:"score"`
	Participants []string `json:"participants"`
}

type updateExpenseRequest struct {
	Item string  `json:"item" binding:"required"`
	Cost float64 `json:"cost" binding:"required"`
}

type expenseResponse struct {
	ID          string  `json:"id"`
	HouseholdID string  `json:"householdId"`
	PayerID     string  `json:"payerId"`
	Item        string  `json:"item"`
	Cost        float64 `json:"cost"`
	Score       int     `json:"score"`
	CreatedAt   int64   `json:"createdAt"`
}

type splitResponse struct {
	ID        string  `json:"id"`
	ExpenseID string  `json:"expenseId"`
	ProfileID string  `json:"profileId"`
	Amount    float64 `json:"amount"`
	Paid      bool    `json:"paid"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		HouseholdID: e.HouseholdID,
		PayerID:     e.PayerID,
		Item:        e.Item,
		Cost:        e.Cost,
		Score:       e.Score,
		CreatedAt:   e.CreatedAt,
	}
}

func toSplitResponses(splits []models.ExpenseSplit) []splitResponse {
	out := make([]splitResponse, len(splits))
	for i, s := range splits {
		out[i] = splitResponse{
			ID:        s.ID,
			ExpenseID: s.ExpenseID,
			ProfileID: s.ProfileID,
			Amount:    s.Amount,
			Paid:      s.Paid,
		}
	}
	return out
}

// Create records an expense paid by the acting profile and splits it
// among the listed participants.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	expense, err := h.service.Create(c.Request.Context(), c.Param("householdId"), middleware.ProfileID(c),
		expenses.CreateRequest{
			Item:         req.Item,
			Cost:         req.Cost,
			Score:        req.Score,
			Participants: req.Participants,
		})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// List returns a household's expenses, newest first.
func (h *ExpenseHandler) List(c *gin.Context) {
	list, err := h.service.ListByHousehold(c.Request.Context(), c.Param("householdId"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]expenseResponse, len(list))
	for i := range list {
		out[i] = toExpenseResponse(&list[i])
	}
	c.JSON(http.StatusOK, gin.H{"expenses": out})
}

// Get returns one expense with its splits.
func (h *ExpenseHandler) Get(c *gin.Context) {
	expense, splits, err := h.service.Get(c.Request.Context(), c.Param("expenseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"expense": toExpenseResponse(expense),
		"splits":  toSplitResponses(splits),
	})
}

// Update renames or reprices an expense without touching its splits.
func (h *ExpenseHandler) Update(c *gin.Context) {
	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	expense, err := h.service.Update(c.Request.Context(), c.Param("expenseId"), req.Item, req.Cost)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// Remove deletes an expense and reverses its unpaid splits.
func (h *ExpenseHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("expenseId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MySplits lists the acting profile's splits in a household.
func (h *ExpenseHandler) MySplits(c *gin.Context) {
	splits, err := h.service.SplitsForProfile(c.Request.Context(), middleware.ProfileID(c), c.Param("householdId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"splits": toSplitResponses(splits)})
}

// PaySplit settles one split.
func (h *ExpenseHandler) PaySplit(c *gin.Context) {
	if err := h.service.MarkSplitPaid(c.Request.Context(), c.Param("splitId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnpaySplit reopens a settled split.
func (h *ExpenseHandler) UnpaySplit(c *gin.Context) {
	if err := h.service.MarkSplitUnpaid(c.Request.Context(), c.Param("splitId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MonthlyTotal reports the household's spend since the start of the
// current month.
func (h *ExpenseHandler) MonthlyTotal(c *gin.Context) {
	total, err := h.service.MonthlyTotal(c.Request.Context(), c.Param("householdId"), time.Local)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}
