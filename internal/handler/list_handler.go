package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
	"github.com/yourorg/smart-bookmarks/internal/service"
	"github.com/yourorg/smart-bookmarks/internal/utils"
)

// ListHandler handles bookmark list HTTP requests
type ListHandler struct {
	listService *service.ListService
	logger      *zap.Logger
}

// NewListHandler creates a new list handler
func NewListHandler(listService *service.ListService, logger *zap.Logger) *ListHandler {
	return &ListHandler{
		listService: listService,
		logger:      logger,
	}
}

// GetAllLists handles retrieving the user's lists
// GET /api/v1/lists
func (h *ListHandler) GetAllLists(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	lists, err := h.listService.GetAllLists(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get lists", zap.Error(err))
		utils.SendErrorResponse(c, http.StatusInternalServerError, "Failed to fetch lists")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": lists})
}

// GetList handles retrieving a single list
// GET /api/v1/lists/{id}
func (h *ListHandler) GetList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := h.listService.GetListByID(c.Request.Context(), id, userID)
	if err != nil {
		h.logger.Error("Failed to get list", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to fetch list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": list})
}

// CreateList handles creating a new list
// POST /api/v1/lists
func (h *ListHandler) CreateList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var request model.ListCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.listService.CreateList(c.Request.Context(), userID, &request)
	if err != nil {
		h.logger.Error("Failed to create list", zap.Error(err))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": list})
}

// UpdateList handles updating a list
// PUT /api/v1/lists/{id}
func (h *ListHandler) UpdateList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request model.ListUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.listService.UpdateList(c.Request.Context(), id, userID, &request)
	if err != nil {
		h.logger.Error("Failed to update list", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": list})
}

// DeleteList handles deleting a list
// DELETE /api/v1/lists/{id}
func (h *ListHandler) DeleteList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.listService.DeleteList(c.Request.Context(), id, userID); err != nil {
		h.logger.Error("Failed to delete list", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to delete list")
		return
	}

	c.Status(http.StatusNoContent)
}
