package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/smart-bookmarks/internal/model"
	"github.com/yourorg/smart-bookmarks/internal/service"
	"github.com/yourorg/smart-bookmarks/internal/utils"
)

// VideoHandler handles video bookmark HTTP requests
type VideoHandler struct {
	videoService *service.VideoService
	logger       *zap.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService *service.VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		logger:       logger,
	}
}

// GetListVideos handles retrieving a list's videos with tag filtering
// GET /api/v1/lists/{id}/videos?tags=1,2&search=...
func (h *VideoHandler) GetListVideos(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tagIDs, ok := parseTagIDs(c)
	if !ok {
		return
	}

	params := utils.ParsePaginationParams(c, 20, 100)
	searchTerm := c.Query("search")

	videos, total, err := h.videoService.GetListVideos(
		c.Request.Context(),
		listID,
		userID,
		tagIDs,
		searchTerm,
		params.Page,
		params.Limit,
	)

	if err != nil {
		h.logger.Error("Failed to get videos", zap.Error(err), zap.Int64("list_id", listID))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to fetch videos")
		return
	}

	utils.SendPaginatedResponse(c, http.StatusOK, videos, total, params.Page, params.Limit)
}

// GetVideo handles retrieving a single video with tags and field values
// GET /api/v1/videos/{id}
func (h *VideoHandler) GetVideo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	video, err := h.videoService.GetVideoByID(c.Request.Context(), id, userID)
	if err != nil {
		h.logger.Error("Failed to get video", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to fetch video")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": video})
}

// CreateVideo handles bookmarking a video in a list
// POST /api/v1/lists/{id}/videos
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request model.VideoCreate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.videoService.CreateVideo(c.Request.Context(), listID, userID, &request)
	if err != nil {
		h.logger.Error("Failed to create video", zap.Error(err), zap.Int64("list_id", listID))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": video})
}

// UpdateVideo handles updating a bookmark
// PUT /api/v1/videos/{id}
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request model.VideoUpdate
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.videoService.UpdateVideo(c.Request.Context(), id, userID, &request)
	if err != nil {
		h.logger.Error("Failed to update video", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": video})
}

// DeleteVideo handles removing a bookmark
// DELETE /api/v1/videos/{id}
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.videoService.DeleteVideo(c.Request.Context(), id, userID); err != nil {
		h.logger.Error("Failed to delete video", zap.Error(err), zap.Int64("id", id))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to delete video")
		return
	}

	c.Status(http.StatusNoContent)
}

// ReplaceTags handles replacing a video's tag set
// PUT /api/v1/videos/{id}/tags
func (h *VideoHandler) ReplaceTags(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var request struct {
		TagIDs []int64 `json:"tag_ids"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tags, err := h.videoService.ReplaceTags(c.Request.Context(), id, userID, request.TagIDs)
	if err != nil {
		h.logger.Error("Failed to replace tags", zap.Error(err), zap.Int64("video_id", id))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// SetFieldValue handles writing a custom field value on a video
// PUT /api/v1/videos/{id}/fields/{fieldID}
func (h *VideoHandler) SetFieldValue(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fieldID, ok := parseIDParam(c, "fieldID")
	if !ok {
		return
	}

	var request struct {
		Value json.RawMessage `json:"value" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.videoService.SetFieldValue(c.Request.Context(), videoID, fieldID, userID, request.Value)
	if err != nil {
		h.logger.Error("Failed to set field value", zap.Error(err),
			zap.Int64("video_id", videoID),
			zap.Int64("field_id", fieldID))
		sendServiceError(c, err, http.StatusBadRequest, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteFieldValue handles clearing a custom field value on a video
// DELETE /api/v1/videos/{id}/fields/{fieldID}
func (h *VideoHandler) DeleteFieldValue(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fieldID, ok := parseIDParam(c, "fieldID")
	if !ok {
		return
	}

	err := h.videoService.DeleteFieldValue(c.Request.Context(), videoID, fieldID, userID)
	if err != nil {
		h.logger.Error("Failed to delete field value", zap.Error(err),
			zap.Int64("video_id", videoID),
			zap.Int64("field_id", fieldID))
		sendServiceError(c, err, http.StatusInternalServerError, "Failed to delete field value")
		return
	}

	c.Status(http.StatusNoContent)
}
