package util

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HandleDBError handles database errors and sends the matching envelope.
// Returns true if the error was handled (and a response was sent).
func HandleDBError(c *gin.Context, err error, resourceName string) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		RespondNotFound(c, resourceName)
		return true
	}

	RespondInternalError(c, "failed to fetch "+resourceName)
	return true
}
