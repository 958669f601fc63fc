package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourorg/smart-bookmarks/internal/middleware"
	"github.com/yourorg/smart-bookmarks/internal/utils"
)

// currentUser extracts the authenticated user ID, responding with 401
// when it is missing
func currentUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	return userID, true
}

// parseIDParam parses a numeric path parameter, responding with 400 when
// it is not a valid ID
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// parseTagIDs parses the comma-separated tags query parameter
func parseTagIDs(c *gin.Context) ([]int64, bool) {
	raw := c.Query("tags")
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	tagIDs := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid tags filter")
			return nil, false
		}
		tagIDs = append(tagIDs, id)
	}

	return tagIDs, true
}

// sendServiceError maps a service error message onto an HTTP status,
// following the not-found / already-exists / in-use conventions used
// throughout the services
func sendServiceError(c *gin.Context, err error, fallbackStatus int, fallbackMessage string) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		utils.SendErrorResponse(c, http.StatusNotFound, msg)
	case strings.Contains(msg, "already exists"):
		utils.SendErrorResponse(c, http.StatusConflict, msg)
	case strings.Contains(msg, "in use"):
		utils.SendErrorResponse(c, http.StatusConflict, msg)
	default:
		utils.SendErrorResponse(c, fallbackStatus, fallbackMessage)
	}
}
