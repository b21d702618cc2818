package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports process liveness only; no dependency checks.
func Health(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": service})
	}
}
