package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
	"github.com/yourorg/smart-bookmarks/internal/service"
	"github.com/yourorg/smart-bookmarks/internal/utils"
)

// SchemaHandler handles field schema HTTP requests
type SchemaHandler struct {
	schemaService *service.SchemaService
	logger        *zap.Logger
}

// NewSchemaHandler creates a new field schema handler
func NewSchemaHandler(schemaService *service.SchemaService, logger *zap.Logger) *SchemaHandler {
	return &SchemaHandler{
		schemaService: schemaService,
		logger:        logger,
	}
}

// GetListSchemas handles retrieving a list's field schemas
// GET /api/v1/lists/{id}/schemas
func (h *SchemaHandler) GetListSchemas(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	schemas, err := h.schemaService.GetListSchemas(c.Request.Context(), listID, userID)
	if err != nil {
		h.logger.Error("Failed to get schemas", zap.Error(err), zap.Int64("list_id", listID))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to fetch schemas")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": schemas})
}

// CreateSchema handles creating a field schema
// POST /api/v1/lists/{id}/schemas
func (h *SchemaHandler) CreateSchema(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request model.FieldSchemaCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	schema, err := h.schemaService.CreateSchema(c.Request.Context(), listID, userID, &request)
	if err != nil {
		h.logger.Error("Failed to create schema", zap.Error(err), zap.Int64("list_id", listID))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": schema})
}

// UpdateSchema handles renaming a schema and/or replacing its field order
// PUT /api/v1/schemas/{id}
func (h *SchemaHandler) UpdateSchema(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request model.FieldSchemaUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	schema, err := h.schemaService.UpdateSchema(c.Request.Context(), id, userID, &request)
	if err != nil {
		h.logger.Error("Failed to update schema", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": schema})
}

// DeleteSchema handles deleting a field schema
// DELETE /api/v1/schemas/{id}
func (h *SchemaHandler) DeleteSchema(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.schemaService.DeleteSchema(c.Request.Context(), id, userID); err != nil {
		h.logger.Error("Failed to delete schema", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to delete schema")
		return
	}

	c.Status(http.StatusNoContent)
}
