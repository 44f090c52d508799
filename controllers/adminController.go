package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"civicreport-be/middlewares"
)

// GetAdminReports lists issues across all categories with optional
// category/status/location filters.
func GetAdminReports(c *gin.Context) {
	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if location := c.Query("location"); location != "" {
		filter["location.address"] = bson.M{"$regex": location, "$options": "i"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := listIssuesWithReporters(ctx, filter, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// AdminUpdateStatus updates any issue's status.
func AdminUpdateStatus(c *gin.Context) {
	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	updateIssueStatus(c, principal)
}
