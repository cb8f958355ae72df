package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/auth"
	"github.com/homehero/homehero/internal/models"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

func NewAuthHandler(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, jwtManager: jwtManager}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token   string          `json:"token"`
	Profile profileResponse `json:"profile"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	profile, err := h.authenticator.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSession(c, http.StatusCreated, profile)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	profile, err := h.authenticator.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSession(c, http.StatusOK, profile)
}

func (h *AuthHandler) respondSession(c *gin.Context, status int, profile *models.Profile) {
	token, err := h.jwtManager.Generate(profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, sessionResponse{
		Token:   token,
		Profile: toProfileResponse(profile),
	})
}
