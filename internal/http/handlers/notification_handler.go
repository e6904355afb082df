package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hexa_access/internal/alerts"
)

type emailInput struct {
	Subject string `json:"subject" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

// SendEmail dispatches a message directly through the notification
// channel. In mock-delivery mode this always succeeds.
func SendEmail(dispatch alerts.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input emailInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if err := dispatch.Send(input.Subject, input.Text); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send email"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
	}
}
