package notify

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"civicreport-be/models"
)

// Ledger is the durable notification record store. A row is written for
// every status change whether or not any live channel delivers.
type Ledger struct {
	coll *mongo.Collection
}

func NewLedger(coll *mongo.Collection) *Ledger {
	return &Ledger{coll: coll}
}

// StatusChangeMessage synthesizes the human-readable ledger message for a
// status change. actorDesc is like "Jane - Road Staff" and may be empty.
func StatusChangeMessage(issueTitle string, newStatus models.IssueStatus, actorDesc string) string {
	if actorDesc == "" {
		return fmt.Sprintf("Your issue '%s' is now %s", issueTitle, newStatus)
	}
	return fmt.Sprintf("Your issue '%s' is now %s (Updated by %s)", issueTitle, newStatus, actorDesc)
}

// RecordStatusChange writes the durable notification for the issue's
// reporter. This write is must-succeed: the caller reports the request
// failed if it errors, even though the status mutation already landed.
func (l *Ledger) RecordStatusChange(ctx context.Context, issue models.Issue, newStatus models.IssueStatus, actorDesc string) (models.Notification, error) {
	notification := models.Notification{
		UserID:    issue.UserID.Hex(),
		Type:      models.NotificationTypeIssueStatus,
		Title:     "Issue Status Updated",
		Message:   StatusChangeMessage(issue.Title, newStatus, actorDesc),
		IssueID:   issue.ID.Hex(),
		Status:    newStatus,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	result, err := l.coll.InsertOne(ctx, notification)
	if err != nil {
		return models.Notification{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid
	}
	return notification, nil
}

// ListForUser returns the user's notifications newest first plus the
// unread count.
func (l *Ledger) ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, int64, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := l.coll.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}

	unread, err := l.coll.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
	if err != nil {
		return nil, 0, err
	}

	return notifications, unread, nil
}

// ParseNotificationIDs converts hex id strings to ObjectIDs, failing with
// ErrValidation on any malformed id.
func ParseNotificationIDs(ids []string) ([]primitive.ObjectID, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid notification id %q", models.ErrValidation, id)
		}
		objectIDs = append(objectIDs, oid)
	}
	return objectIDs, nil
}

// MarkRead flips the user's unread notifications to read and returns how
// many rows changed. With ids it restricts to that subset; re-marking
// already-read rows updates zero, so the operation is idempotent.
func (l *Ledger) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	query := bson.M{"user_id": userID, "read": false}
	if len(ids) > 0 {
		objectIDs, err := ParseNotificationIDs(ids)
		if err != nil {
			return 0, err
		}
		query["_id"] = bson.M{"$in": objectIDs}
	}

	result, err := l.coll.UpdateMany(ctx, query, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
