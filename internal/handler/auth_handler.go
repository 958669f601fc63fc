package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
	"github.com/yourorg/smart-bookmarks/internal/service"
	"github.com/yourorg/smart-bookmarks/internal/utils"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles account creation
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var request model.UserCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.authService.Register(c.Request.Context(), &request)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))

		if err.Error() == "email already in use" {
			utils.SendErrorResponse(c, http.StatusConflict, err.Error())
		} else {
			utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tokens})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var request model.UserLogin
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		h.logger.Debug("Login failed", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tokens})
}

// Refresh handles access token renewal
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var request struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		h.logger.Debug("Token refresh failed", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tokens})
}
