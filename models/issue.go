package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IssueCategory enum
type IssueCategory string

const (
	Road        IssueCategory = "Road"
	Waste       IssueCategory = "Waste"
	Water       IssueCategory = "Water"
	Electricity IssueCategory = "Electricity"
	Other       IssueCategory = "Other"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	InProgress IssueStatus = "InProgress"
	Resolved   IssueStatus = "Resolved"
)

// ValidCategory reports whether s is one of the known issue categories.
func ValidCategory(s string) bool {
	switch IssueCategory(s) {
	case Road, Waste, Water, Electricity, Other:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the three issue statuses.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case Pending, InProgress, Resolved:
		return true
	}
	return false
}

// Location is the optional geolocation attached to an issue.
type Location struct {
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Address   string   `bson:"address,omitempty" json:"address,omitempty"`
}

// Issue represents a civic issue reported by a user
type Issue struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Category      IssueCategory      `bson:"category" json:"category"`
	Status        IssueStatus        `bson:"status" json:"status"`
	Image         *string            `bson:"image,omitempty" json:"image,omitempty"`
	Location      Location           `bson:"location" json:"location"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	UpdatedBy     string             `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	UpdatedByRole string             `bson:"updated_by_role,omitempty" json:"updated_by_role,omitempty"`
}

// EnsureIssueIndexes creates the indexes backing the list/filter queries
func EnsureIssueIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
