package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/service"
	"github.com/yourorg/smart-bookmarks/internal/utils"
)

// SettingsHandler handles user settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings handles retrieving all settings sections with defaults
// GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get settings", zap.Error(err), zap.Int64("user_id", userID))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}

// UpdateSection handles replacing one settings section
// PUT /api/v1/settings/{section}
func (h *SettingsHandler) UpdateSection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	section := c.Param("section")

	var value json.RawMessage
	if err := c.ShouldBindJSON(&value); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.settingsService.UpdateSection(c.Request.Context(), userID, section, value); err != nil {
		h.logger.Error("Failed to update settings", zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("section", section))
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
