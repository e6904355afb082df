package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hexa_access/internal/models"
	"hexa_access/internal/store"
)

func ListAlerts(rules store.AlertRuleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := rules.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, all)
	}
}

type alertRuleInput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Threshold *int   `json:"threshold"`
	Interval  int    `json:"interval"`
	Keyword   string `json:"keyword"`
	Action    string `json:"action"`
	Active    *bool  `json:"active"`
}

func CreateAlert(rules store.AlertRuleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input alertRuleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if input.Name == "" || input.Type == "" || input.Threshold == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, Type, and Threshold are required."})
			return
		}
		typ := models.AlertRuleType(input.Type)
		if !typ.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown alert type: " + input.Type})
			return
		}

		rule := models.AlertRule{
			Name:            input.Name,
			Type:            typ,
			Threshold:       *input.Threshold,
			IntervalSeconds: input.Interval,
			Keyword:         input.Keyword,
			Action:          input.Action,
			Active:          true,
		}
		if rule.Action == "" {
			rule.Action = "notify"
		}
		if input.Active != nil {
			rule.Active = *input.Active
		}

		if err := rules.Create(c.Request.Context(), &rule); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, rule)
	}
}

func UpdateAlert(rules store.AlertRuleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid alert id"})
			return
		}

		var input alertRuleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		all, err := rules.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		var rule *models.AlertRule
		for i := range all {
			if all[i].ID == id {
				rule = &all[i]
				break
			}
		}
		if rule == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Alert not found"})
			return
		}

		if input.Name != "" {
			rule.Name = input.Name
		}
		if input.Type != "" {
			typ := models.AlertRuleType(input.Type)
			if !typ.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown alert type: " + input.Type})
				return
			}
			rule.Type = typ
		}
		if input.Threshold != nil {
			rule.Threshold = *input.Threshold
		}
		if input.Interval != 0 {
			rule.IntervalSeconds = input.Interval
		}
		if input.Keyword != "" {
			rule.Keyword = input.Keyword
		}
		if input.Action != "" {
			rule.Action = input.Action
		}
		if input.Active != nil {
			rule.Active = *input.Active
		}

		if err := rules.Update(c.Request.Context(), rule); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rule)
	}
}

func DeleteAlert(rules store.AlertRuleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid alert id"})
			return
		}
		if err := rules.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Alert not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Alert deleted"})
	}
}
