package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/households"
	"github.com/homehero/homehero/internal/middleware"
	"github.com/homehero/homehero/internal/models"
)

// HouseholdHandler serves household membership endpoints.
type HouseholdHandler struct {
	service *households.Service
}

func NewHouseholdHandler(service *households.Service) *HouseholdHandler {
	return &HouseholdHandler{service: service}
}

type createHouseholdRequest struct {
	Name         string   `json:"name" binding:"required"`
	Address      string   `json:"address"`
	InviteEmails []string `json:"inviteEmails"`
}

type joinHouseholdRequest struct {
	HomeCode string `json:"homeCode" binding:"required"`
}

type inviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type householdResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	HomeCode  string `json:"homeCode"`
	Score     int    `json:"score"`
	CreatedAt int64  `json:"createdAt"`
}

type inviteResponse struct {
	ID               string `json:"id"`
	HouseholdID      string `json:"householdId"`
	InviterProfileID string `json:"inviterProfileId"`
	InviteeEmail     string `json:"inviteeEmail"`
	Status           string `json:"status"`
	CreatedAt        int64  `json:"createdAt"`
}

func toHouseholdResponse(h *models.Household) householdResponse {
	return householdResponse{
		ID:        h.ID,
		Name:      h.Name,
		Address:   h.Address,
		HomeCode:  h.HomeCode,
		Score:     h.Score,
		CreatedAt: h.CreatedAt,
	}
}

func toInviteResponse(i *models.HouseholdInvite) inviteResponse {
	return inviteResponse{
		ID:               i.ID,
		HouseholdID:      i.HouseholdID,
		InviterProfileID: i.InviterProfileID,
		InviteeEmail:     i.InviteeEmail,
		Status:           i.Status,
		CreatedAt:        i.CreatedAt,
	}
}

// Create makes a household and optionally fires off invites in the same
// request.
func (h *HouseholdHandler) Create(c *gin.Context) {
	var req createHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	household, failed, err := h.service.CreateAndInvite(
		c.Request.Context(), middleware.ProfileID(c), req.Name, req.Address, req.InviteEmails)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"household":     toHouseholdResponse(household),
		"failedInvites": failed,
	})
}

// List returns the acting profile's households.
func (h *HouseholdHandler) List(c *gin.Context) {
	list, err := h.service.ListForProfile(c.Request.Context(), middleware.ProfileID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]householdResponse, len(list))
	for i := range list {
		out[i] = toHouseholdResponse(&list[i])
	}
	c.JSON(http.StatusOK, gin.H{"households": out})
}

// Get returns one household.
func (h *HouseholdHandler) Get(c *gin.Context) {
	household, err := h.service.Get(c.Request.Context(), c.Param("householdId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHouseholdResponse(household))
}

// Members lists a household's members in name order.
func (h *HouseholdHandler) Members(c *gin.Context) {
	members, err := h.service.Members(c.Request.Context(), c.Param("householdId"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]profileResponse, len(members))
	for i := range members {
		out[i] = toProfileResponse(&members[i])
	}
	c.JSON(http.StatusOK, gin.H{"members": out})
}

// Join adds the acting profile to the household owning the posted home
// code.
func (h *HouseholdHandler) Join(c *gin.Context) {
	var req joinHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	household, err := h.service.JoinByHomeCode(c.Request.Context(), middleware.ProfileID(c), req.HomeCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHouseholdResponse(household))
}

// Leave removes the acting profile from the household.
func (h *HouseholdHandler) Leave(c *gin.Context) {
	if err := h.service.Leave(c.Request.Context(), c.Param("householdId"), middleware.ProfileID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Invite issues an invitation to the posted email address.
func (h *HouseholdHandler) Invite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	invite, err := h.service.InviteByEmail(
		c.Request.Context(), c.Param("householdId"), middleware.ProfileID(c), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInviteResponse(invite))
}

// Invites lists the invites addressed to the acting profile.
func (h *HouseholdHandler) Invites(c *gin.Context) {
	invites, err := h.service.InvitesFor(c.Request.Context(), middleware.ProfileID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]inviteResponse, len(invites))
	for i := range invites {
		out[i] = toInviteResponse(&invites[i])
	}
	c.JSON(http.StatusOK, gin.H{"invites": out})
}

// AcceptInvite accepts an invite and returns the joined household.
func (h *HouseholdHandler) AcceptInvite(c *gin.Context) {
	household, err := h.service.AcceptInvite(c.Request.Context(), c.Param("inviteId"), middleware.ProfileID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHouseholdResponse(household))
}

// DeclineInvite declines an invite.
func (h *HouseholdHandler) DeclineInvite(c *gin.Context) {
	if err := h.service.DeclineInvite(c.Request.Context(), c.Param("inviteId"), middleware.ProfileID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
