package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"civicreport-be/config"
	"civicreport-be/middlewares"
	"civicreport-be/models"
	"civicreport-be/notify"
)

// CreateIssue handles POST /report: persists the issue and announces it
// to the admins room. The announcement is best-effort; the report
// succeeds whether or not any admin is connected.
func CreateIssue(c *gin.Context) {
	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reporterID, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Description string   `json:"description" binding:"required,max=1000"`
		Category    string   `json:"category" binding:"required"`
		Image       *string  `json:"image,omitempty"`
		Latitude    *float64 `json:"latitude,omitempty"`
		Longitude   *float64 `json:"longitude,omitempty"`
		Address     string   `json:"address,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		UserID:      reporterID,
		Title:       input.Title,
		Description: input.Description,
		Category:    models.IssueCategory(input.Category),
		Status:      models.Pending,
		Image:       input.Image,
		Location: models.Location{
			Latitude:  input.Latitude,
			Longitude: input.Longitude,
			Address:   input.Address,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := config.GetCollection("issues")
	if _, err := issueCollection.InsertOne(ctx, issue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	reporterName := "Unknown"
	var reporter models.User
	userCollection := config.GetCollection("users")
	if err := userCollection.FindOne(ctx, bson.M{"_id": reporterID}).Decode(&reporter); err == nil {
		reporterName = reporter.Name
	}

	notify.BestEffort(logger, "new_issue", sink.EmitNewIssue(notify.NewIssueNotice{
		Title:     "New Issue Reported",
		Message:   "New issue reported by " + reporterName + ": " + issue.Title,
		Type:      models.NotificationTypeNewIssue,
		IssueID:   issue.ID.Hex(),
		Status:    models.Pending,
		CreatedAt: issue.CreatedAt,
	}))

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Issue reported successfully",
		"issue_id": issue.ID.Hex(),
	})
}

// GetMyReports returns the authenticated user's issues, newest first.
func GetMyReports(c *gin.Context) {
	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reporterID, err := primitive.ObjectIDFromHex(principal.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issueCollection := config.GetCollection("issues")
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := issueCollection.Find(ctx, bson.M{"user_id": reporterID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := make([]models.Issue, 0)
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// GetAllIssues handles the public issue listing with category/status
// filters.
func GetAllIssues(c *gin.Context) {
	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := listIssuesWithReporters(ctx, filter, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

// listIssuesWithReporters runs the filtered listing shared by the
// public, staff and admin report endpoints, joining reporter names (and
// emails for staff/admin views) onto each issue.
func listIssuesWithReporters(ctx context.Context, filter bson.M, includeEmail bool) ([]gin.H, error) {
	issueCollection := config.GetCollection("issues")
	userCollection := config.GetCollection("users")

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := issueCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}

	out := make([]gin.H, 0, len(issues))
	for _, issue := range issues {
		reporterName := "Unknown"
		reporterEmail := "Unknown"
		var reporter models.User
		if err := userCollection.FindOne(ctx, bson.M{"_id": issue.UserID}).Decode(&reporter); err == nil {
			reporterName = reporter.Name
			reporterEmail = reporter.Email
		}

		entry := gin.H{
			"id":              issue.ID.Hex(),
			"user_id":         issue.UserID.Hex(),
			"title":           issue.Title,
			"description":     issue.Description,
			"category":        issue.Category,
			"status":          issue.Status,
			"image":           issue.Image,
			"location":        issue.Location,
			"user_name":       reporterName,
			"created_at":      issue.CreatedAt,
			"updated_at":      issue.UpdatedAt,
			"updated_by":      issue.UpdatedBy,
			"updated_by_role": issue.UpdatedByRole,
		}
		if includeEmail {
			entry["user_email"] = reporterEmail
		}
		out = append(out, entry)
	}
	return out, nil
}

// findIssueByID fetches a single issue, distinguishing absence from
// storage failure.
func findIssueByID(ctx context.Context, id primitive.ObjectID) (models.Issue, error) {
	var issue models.Issue
	err := config.GetCollection("issues").FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return issue, models.ErrNotFound
	}
	return issue, err
}
