package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseInt parses a string to an integer, returning defaultValue if parsing fails
func ParseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(s); err == nil {
		return val
	}
	return defaultValue
}

// Pagination holds validated offset-pagination parameters
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of records to skip
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads page/limit query parameters with defaults 1 and 10.
// Limit is capped at 100.
func ParsePagination(c *gin.Context) Pagination {
	page := ParseInt(c.DefaultQuery("page", "1"), 1)
	if page < 1 {
		page = 1
	}
	limit := ParseInt(c.DefaultQuery("limit", "10"), 10)
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return Pagination{Page: page, Limit: limit}
}

// IsValidID reports whether s is a well-formed entity id. Handlers reject
// malformed ids before touching storage.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
