package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginationParams is the page/limit pair parsed from a list request
type PaginationParams struct {
	Page  int
	Limit int
}

// ParsePaginationParams reads page and limit from the query string,
// falling back to defaultLimit and capping at maxLimit
func ParsePaginationParams(c *gin.Context, defaultLimit, maxLimit int) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	return PaginationParams{Page: page, Limit: limit}
}

// CalculateTotalPages returns the page count for a total item count,
// never below 1 so clients always see a last page
func CalculateTotalPages(totalItems, limit int) int {
	pages := (totalItems + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Pagination is the metadata block attached to every paginated response
type Pagination struct {
	TotalItems int `json:"total_items"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	PerPage    int `json:"per_page"`
}

// SendPaginatedResponse writes the data + pagination envelope
func SendPaginatedResponse(c *gin.Context, statusCode int, data interface{}, totalItems, page, limit int) {
	c.JSON(statusCode, gin.H{
		"data": data,
		"pagination": Pagination{
			TotalItems: totalItems,
			Page:       page,
			TotalPages: CalculateTotalPages(totalItems, limit),
			PerPage:    limit,
		},
	})
}

// SendErrorResponse writes the error envelope used across the API
func SendErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}
