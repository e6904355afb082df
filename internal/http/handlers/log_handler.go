package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hexa_access/internal/events"
	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

func ListLogs(recorder *events.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := store.DefaultLogLimit
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= store.DefaultLogLimit {
				limit = parsed
			}
		}

		logs, err := recorder.Recent(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, logs)
	}
}

type createLogInput struct {
	Text     string         `json:"text" binding:"required"`
	Type     string         `json:"type" binding:"required"`
	UserID   *int64         `json:"user"`
	Metadata map[string]any `json:"metadata"`
}

// CreateLog appends a manual audit entry. Like every append it is
// evaluated by the alert engine in the background.
func CreateLog(recorder *events.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input createLogInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		typ := models.LogType(input.Type)
		if !typ.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown log type: " + input.Type})
			return
		}

		entry, err := recorder.Append(c.Request.Context(), input.Text, typ, input.Metadata, input.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}
