package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
	"github.com/yourorg/smart-bookmarks/internal/service"
	"github.com/yourorg/smart-bookmarks/internal/utils"
)

// FieldHandler handles custom field HTTP requests
type FieldHandler struct {
	fieldService *service.FieldService
	logger       *zap.Logger
}

// NewFieldHandler creates a new custom field handler
func NewFieldHandler(fieldService *service.FieldService, logger *zap.Logger) *FieldHandler {
	return &FieldHandler{
		fieldService: fieldService,
		logger:       logger,
	}
}

// GetListFields handles retrieving a list's custom fields
// GET /api/v1/lists/{id}/custom-fields
func (h *FieldHandler) GetListFields(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fields, err := h.fieldService.GetListFields(c.Request.Context(), listID, userID)
	if err != nil {
		h.logger.Error("Failed to get custom fields", zap.Error(err), zap.Int64("list_id", listID))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to fetch custom fields")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": fields})
}

// CreateField handles creating a custom field on a list
// POST /api/v1/lists/{id}/custom-fields
func (h *FieldHandler) CreateField(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request model.CustomFieldCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	field, err := h.fieldService.CreateField(c.Request.Context(), listID, userID, &request)
	if err != nil {
		h.logger.Error("Failed to create custom field", zap.Error(err), zap.Int64("list_id", listID))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": field})
}

// UpdateField handles updating a custom field
// PUT /api/v1/custom-fields/{id}
func (h *FieldHandler) UpdateField(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request model.CustomFieldUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	field, err := h.fieldService.UpdateField(c.Request.Context(), id, userID, &request)
	if err != nil {
		h.logger.Error("Failed to update custom field", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": field})
}

// DeleteField handles deleting a custom field
// DELETE /api/v1/custom-fields/{id}
func (h *FieldHandler) DeleteField(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fieldService.DeleteField(c.Request.Context(), id, userID); err != nil {
		h.logger.Error("Failed to delete custom field", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to delete custom field")
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckDuplicate handles the case-insensitive duplicate-name lookup the
// client calls while the user types a field name
// POST /api/v1/lists/{id}/custom-fields/check-duplicate
func (h *FieldHandler) CheckDuplicate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request model.DuplicateCheckRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.fieldService.CheckDuplicate(c.Request.Context(), listID, userID, &request)
	if err != nil {
		h.logger.Error("Failed to check duplicate", zap.Error(err), zap.Int64("list_id", listID))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
