package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hexa_access/internal/events"
	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

// ResetSystem clears the audit trail, re-arms every alert rule and resets
// character registration/positions, then records the reset as the first
// entry of the fresh log.
func ResetSystem(logs store.LogStore, rules store.AlertRuleStore, characters store.CharacterStore, recorder *events.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := logs.DeleteAll(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		if err := rules.ReArmAll(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		if err := characters.ResetAll(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		if _, err := recorder.Append(ctx, "SYSTEM RESET COMPLETE. Logs cleared. Protocols restored.",
			models.LogSuccess, map[string]any{"action": "manual_reset"}, nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "System reset and logs cleared."})
	}
}
