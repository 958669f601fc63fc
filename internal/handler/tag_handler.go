package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/service"
	"github.com/yourorg/smart-bookmarks/internal/utils"
)

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	tagService *service.TagService
	logger     *zap.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService *service.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// GetAllTags handles retrieving the user's tags
// GET /api/v1/tags
func (h *TagHandler) GetAllTags(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// Parse pagination parameters using the utility function
	params := utils.ParsePaginationParams(c, 100, 500) // default limit: 100, max limit: 500

	// Parse search parameter
	searchTerm := c.Query("search")

	tags, total, err := h.tagService.GetAllTags(c.Request.Context(), userID, searchTerm, params.Page, params.Limit)
	if err != nil {
		h.logger.Error("Failed to get tags", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}

	// Use standardized pagination response
	utils.SendPaginatedResponse(c, http.StatusOK, tags, total, params.Page, params.Limit)
}

// GetTagByID handles retrieving a single tag
// GET /api/v1/tags/{id}
func (h *TagHandler) GetTagByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tag, err := h.tagService.GetTagByID(c.Request.Context(), id, userID)
	if err != nil {
		h.logger.Error("Failed to get tag", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to fetch tag")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tag})
}

// CreateTag handles creating a new tag
// POST /api/v1/tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, request.Name, request.Color)
	if err != nil {
		h.logger.Error("Failed to create tag", zap.Error(err))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tag})
}

// UpdateTag handles updating an existing tag
// PUT /api/v1/tags/{id}
func (h *TagHandler) UpdateTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), id, userID, request.Name, request.Color)
	if err != nil {
		h.logger.Error("Failed to update tag", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tag})
}

// DeleteTag handles deleting a tag
// DELETE /api/v1/tags/{id}
func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), id, userID); err != nil {
		h.logger.Error("Failed to delete tag", zap.Error(err), zap.Int64("id", id))

		if err.Error() == "tag is in use" {
			utils.SendErrorResponse(c, http.StatusConflict, "Cannot delete tag because it's in use")
			return
		}
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to delete tag")
		return
	}

	c.Status(http.StatusNoContent)
}
