package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePageRequest reads page, size, sortBy and sortDir query params
// with sane bounds. Unknown sort columns are rejected later by the
// repository's whitelist.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	sortDir := c.DefaultQuery("sortDir", "desc")
	if sortDir != "asc" && sortDir != "desc" {
		sortDir = "desc"
	}

	return domain.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  c.DefaultQuery("sortBy", "created_at"),
		SortDir: sortDir,
	}
}
