package handlers

import (
	"net/http"

	"hussboss/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the last stored dependency checks.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": status.Checks, "checkedAt": status.CheckedAt})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status.Checks, "checkedAt": status.CheckedAt})
}
