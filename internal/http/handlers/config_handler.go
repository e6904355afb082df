package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hexa_access/internal/doors"
	"hexa_access/internal/models"
)

// GetConfig exposes the static door registry and role set to clients.
func GetConfig() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"doors": doors.All(),
			"roles": models.Roles(),
		})
	}
}
