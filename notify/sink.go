package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"civicreport-be/models"
	"civicreport-be/realtime"
)

// NewIssueNotice announces a freshly reported issue to admin dashboards.
type NewIssueNotice struct {
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Type      string             `json:"type"`
	IssueID   string             `json:"issue_id"`
	Status    models.IssueStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

// StatusUpdate is the global status broadcast for dashboards.
type StatusUpdate struct {
	IssueID      string             `json:"issue_id"`
	Status       models.IssueStatus `json:"status"`
	Title        string             `json:"title"`
	ReporterName string             `json:"user_name"`
	UpdatedBy    string             `json:"updated_by,omitempty"`
}

// UserNotification is the reporter-targeted status-change event.
type UserNotification struct {
	UserID    string             `json:"user_id,omitempty"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Type      string             `json:"type"`
	IssueID   string             `json:"issue_id"`
	Status    models.IssueStatus `json:"status"`
	UpdatedBy string             `json:"updated_by,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// NotificationSink is where the fan-out hands events for live delivery.
// The mutating service may own the socket sessions itself (DirectSink) or
// reach them in a peer service over HTTP (RemoteSink); the fan-out logic
// does not care which.
type NotificationSink interface {
	EmitNewIssue(n NewIssueNotice) error
	EmitStatusUpdate(u StatusUpdate) error
	EmitUserNotification(n UserNotification) error
}

// RoomEmitter is the slice of the hub the direct sink needs.
type RoomEmitter interface {
	Emit(event string, data interface{}, room string)
}

// DirectSink delivers through the in-process hub.
type DirectSink struct {
	Hub RoomEmitter
}

func (s *DirectSink) EmitNewIssue(n NewIssueNotice) error {
	s.Hub.Emit("notification", n, realtime.RoomAdmins)
	return nil
}

func (s *DirectSink) EmitStatusUpdate(u StatusUpdate) error {
	s.Hub.Emit("status_update", u, "")
	return nil
}

// EmitUserNotification sends the event twice: once to the reporter's room
// and once as a global broadcast carrying the user_id, so dashboards that
// never joined a per-user room still see it. Consumers dedup by
// issue_id+status+created_at.
func (s *DirectSink) EmitUserNotification(n UserNotification) error {
	room := realtime.UserRoom(n.UserID)

	scoped := n
	scoped.UserID = ""
	s.Hub.Emit("user_notification", scoped, room)

	s.Hub.Emit("user_notification", n, "")
	return nil
}

// RemoteSink relays the user-targeted event to the service that owns the
// socket sessions. New-issue and status broadcasts are not relayed; those
// dashboards are connected to the peer service directly.
type RemoteSink struct {
	BaseURL string
	Client  *http.Client
}

func NewRemoteSink(baseURL string) *RemoteSink {
	return &RemoteSink{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 2 * time.Second},
	}
}

func (s *RemoteSink) EmitNewIssue(NewIssueNotice) error { return nil }

func (s *RemoteSink) EmitStatusUpdate(StatusUpdate) error { return nil }

func (s *RemoteSink) EmitUserNotification(n UserNotification) error {
	body, err := json.Marshal(map[string]interface{}{
		"user_id": n.UserID,
		"title":   n.Title,
		"message": n.Message,
		"payload": map[string]interface{}{
			"type":       n.Type,
			"issue_id":   n.IssueID,
			"status":     n.Status,
			"updated_by": n.UpdatedBy,
			"created_at": n.CreatedAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return err
	}

	resp, err := s.Client.Post(s.BaseURL+"/internal/emit_user_notification", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	return nil
}

// BestEffort logs a sink failure and swallows it. Channel failures never
// alter the request outcome.
func BestEffort(log zerolog.Logger, what string, err error) {
	if err != nil {
		log.Warn().Err(err).Str("channel", what).Msg("notification channel failed")
	}
}
