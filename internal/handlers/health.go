package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/util"
)

// Healthz reports service and database health
// GET /healthz
func (h *Handlers) Healthz(c *gin.Context) {
	if err := database.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  "database unreachable",
		})
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "viewtube-backend",
	}, "healthy")
}
