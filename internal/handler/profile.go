package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/middleware"
	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

const defaultSearchLimit = 10

// ProfileHandler serves the acting profile and profile search.
type ProfileHandler struct {
	store storage.Store
}

func NewProfileHandler(store storage.Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

type profileResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Score            int     `json:"score"`
	AmountOwed       float64 `json:"amountOwed"`
	AmountOwedToUser float64 `json:"amountOwedToUser"`
	CreatedAt        int64   `json:"createdAt"`
}

func toProfileResponse(p *models.Profile) profileResponse {
	return profileResponse{
		ID:               p.ID,
		Name:             p.Name,
		Email:            p.Email,
		Score:            p.Score,
		AmountOwed:       p.AmountOwed,
		AmountOwedToUser: p.AmountOwedToUser,
		CreatedAt:        p.CreatedAt,
	}
}

// Me returns the authenticated profile with its live balances and score.
func (h *ProfileHandler) Me(c *gin.Context) {
	profile, err := h.store.GetProfileByID(c.Request.Context(), middleware.ProfileID(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Search finds profiles by email fragment, for building invites.
func (h *ProfileHandler) Search(c *gin.Context) {
	fragment := c.Query("email")
	if fragment == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}
	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	profiles, err := h.store.SearchProfilesByEmail(c.Request.Context(), fragment, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]profileResponse, len(profiles))
	for i := range profiles {
		out[i] = toProfileResponse(&profiles[i])
	}
	c.JSON(http.StatusOK, gin.H{"profiles": out})
}
