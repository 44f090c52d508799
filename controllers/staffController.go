package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"civicreport-be/middlewares"
)

// GetStaffReports lists issues in the staff member's category. The
// category always comes from the principal, never from the client.
func GetStaffReports(c *gin.Context) {
	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	filter := bson.M{"category": principal.Category}
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

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"category":    principal.Category,
		"total_count": len(issues),
	})
}

// StaffUpdateStatus updates an issue's status, scoped to the staff
// member's own category.
func StaffUpdateStatus(c *gin.Context) {
	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	updateIssueStatus(c, principal)
}
