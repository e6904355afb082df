package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hexa_access/internal/access"
)

// RequestAccess is the decision engine endpoint. Challenge responses come
// back as 200 with success=false; security denials map to 401/403/404 and
// always leave an audit event behind.
func RequestAccess(engine *access.Engine, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req access.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing RFID or Door ID"})
			return
		}

		decision, err := engine.Decide(c.Request.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, access.ErrMissingInput):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing RFID or Door ID"})
			case errors.Is(err, access.ErrUnknownDoor):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invalid Door ID"})
			default:
				logger.Printf("access request error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal System Error"})
			}
			return
		}

		c.JSON(statusFor(decision), decision)
	}
}

func statusFor(d access.Decision) int {
	switch {
	case d.Success, d.RequirePin, d.RequirePassword:
		return http.StatusOK
	case d.Unknown:
		return http.StatusNotFound
	case d.Reason == access.DenialInvalidPassword, d.Reason == access.DenialInvalidPin:
		return http.StatusUnauthorized
	default:
		return http.StatusForbidden
	}
}
