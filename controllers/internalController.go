package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicreport-be/realtime"
)

// EmitUserNotification serves the service-to-service relay: a peer
// service that mutated an issue but owns no socket sessions asks this one
// to reach the reporter's room. Not a client-facing contract; deployment
// must keep it network-isolated.
func EmitUserNotification(c *gin.Context) {
	var input struct {
		UserID  string                 `json:"user_id" binding:"required"`
		Title   string                 `json:"title" binding:"required"`
		Message string                 `json:"message" binding:"required"`
		Payload map[string]interface{} `json:"payload"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	data := gin.H{
		"title":   input.Title,
		"message": input.Message,
	}
	for k, v := range input.Payload {
		data[k] = v
	}

	hub.Emit("user_notification", data, realtime.UserRoom(input.UserID))

	c.JSON(http.StatusOK, gin.H{"emitted": true})
}
