package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"civicreport-be/config"
	"civicreport-be/models"
	"civicreport-be/notify"
)

// authorizeStatusChange decides whether the actor may move this issue.
// Admins may update any issue; staff only issues in their own category.
func authorizeStatusChange(principal models.Principal, issue models.Issue) error {
	switch principal.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleStaff:
		if issue.Category != principal.Category {
			return models.ErrForbidden
		}
		return nil
	default:
		return models.ErrForbidden
	}
}

// actorDescription renders the actor for ledger messages and the
// updated_by fields, e.g. "Jane (Road Staff)" or "Bob (Administrator)".
func actorDescription(name string, principal models.Principal) string {
	if principal.IsStaff() {
		return name + " (" + string(principal.Category) + " Staff)"
	}
	return name + " (Administrator)"
}

// updateIssueStatus is the status-change fan-out shared by the staff and
// admin update endpoints. The store mutation and the ledger write are
// must-succeed; email and realtime emission are best-effort and never
// change the response.
func updateIssueStatus(c *gin.Context, principal models.Principal) {
	var input struct {
		IssueID string `json:"issue_id" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing issue_id or status"})
		return
	}

	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	newStatus := models.IssueStatus(input.Status)

	issueID, err := primitive.ObjectIDFromHex(input.IssueID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := findIssueByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if err := authorizeStatusChange(principal, issue); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: Issue not in your category"})
		return
	}

	// Single-document $set keeps the mutation atomic; concurrent updates
	// are last-writer-wins with no partial field interleaving.
	issueCollection := config.GetCollection("issues")
	result, err := issueCollection.UpdateOne(ctx, bson.M{"_id": issueID}, bson.M{
		"$set": bson.M{
			"status":          newStatus,
			"updated_at":      time.Now(),
			"updated_by":      principal.ID,
			"updated_by_role": principal.Role,
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	updatedIssue, err := findIssueByID(ctx, issueID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	userCollection := config.GetCollection("users")

	reporterName := "Unknown"
	reporterEmail := ""
	var reporter models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": updatedIssue.UserID}).Decode(&reporter); err == nil {
		reporterName = reporter.Name
		reporterEmail = reporter.Email
	}

	actorName := "Unknown"
	if actorID, err := primitive.ObjectIDFromHex(principal.ID); err == nil {
		var actor models.User
		if err := userCollection.FindOne(ctx, bson.M{"_id": actorID}).Decode(&actor); err == nil {
			actorName = actor.Name
		}
	}
	actorDesc := actorDescription(actorName, principal)

	// Durable ledger record for the reporter. Must succeed for the
	// request to report success, even though the status already moved.
	if _, err := ledger.RecordStatusChange(ctx, updatedIssue, newStatus, actorDesc); err != nil {
		logger.Error().Err(err).Str("issue_id", input.IssueID).Msg("failed to record notification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record notification"})
		return
	}

	if reporterEmail != "" {
		subject, body := notify.StatusUpdateEmail(reporterName, updatedIssue.Title, newStatus, actorDesc)
		mailer.Enqueue(reporterEmail, subject, body)
	}

	notify.BestEffort(logger, "status_update", sink.EmitStatusUpdate(notify.StatusUpdate{
		IssueID:      input.IssueID,
		Status:       newStatus,
		Title:        updatedIssue.Title,
		ReporterName: reporterName,
		UpdatedBy:    actorDesc,
	}))

	notify.BestEffort(logger, "user_notification", sink.EmitUserNotification(notify.UserNotification{
		UserID:    updatedIssue.UserID.Hex(),
		Title:     updatedIssue.Title,
		Message:   "Your issue '" + updatedIssue.Title + "' status has been updated to: " + string(newStatus),
		Type:      models.NotificationTypeIssueStatus,
		IssueID:   input.IssueID,
		Status:    newStatus,
		UpdatedBy: actorDesc,
		CreatedAt: time.Now().UTC(),
	}))

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}
