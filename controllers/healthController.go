package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"civicreport-be/config"
)

// HealthCheck verifies database connectivity and reports collection
// counts.
func HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := config.Client().Ping(ctx, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	usersCount, _ := config.GetCollection("users").CountDocuments(ctx, bson.M{})
	issuesCount, _ := config.GetCollection("issues").CountDocuments(ctx, bson.M{})

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
		"collections": gin.H{
			"users":  usersCount,
			"issues": issuesCount,
		},
		"timestamp": time.Now().UTC(),
	})
}
