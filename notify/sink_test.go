package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicreport-be/models"
	"civicreport-be/realtime"
)

type recordedEmit struct {
	event string
	data  interface{}
	room  string
}

type fakeEmitter struct {
	emits []recordedEmit
}

func (f *fakeEmitter) Emit(event string, data interface{}, room string) {
	f.emits = append(f.emits, recordedEmit{event: event, data: data, room: room})
}

func TestDirectSinkEmitsUserNotificationTwice(t *testing.T) {
	emitter := &fakeEmitter{}
	sink := &DirectSink{Hub: emitter}

	err := sink.EmitUserNotification(UserNotification{
		UserID:  "42",
		Title:   "Pothole",
		Message: "Your issue 'Pothole' status has been updated to: Resolved",
		Type:    models.NotificationTypeIssueStatus,
		IssueID: "abc",
		Status:  models.Resolved,
	})
	require.NoError(t, err)
	require.Len(t, emitter.emits, 2)

	scoped := emitter.emits[0]
	assert.Equal(t, "user_notification", scoped.event)
	assert.Equal(t, realtime.UserRoom("42"), scoped.room)
	assert.Empty(t, scoped.data.(UserNotification).UserID)

	broadcast := emitter.emits[1]
	assert.Equal(t, "user_notification", broadcast.event)
	assert.Equal(t, "", broadcast.room)
	assert.Equal(t, "42", broadcast.data.(UserNotification).UserID, "broadcast copy carries the user id for client-side filtering")
}

func TestDirectSinkRoutesNewIssueToAdmins(t *testing.T) {
	emitter := &fakeEmitter{}
	sink := &DirectSink{Hub: emitter}

	require.NoError(t, sink.EmitNewIssue(NewIssueNotice{Title: "New Issue Reported"}))

	require.Len(t, emitter.emits, 1)
	assert.Equal(t, "notification", emitter.emits[0].event)
	assert.Equal(t, realtime.RoomAdmins, emitter.emits[0].room)
}

func TestDirectSinkBroadcastsStatusUpdate(t *testing.T) {
	emitter := &fakeEmitter{}
	sink := &DirectSink{Hub: emitter}

	require.NoError(t, sink.EmitStatusUpdate(StatusUpdate{IssueID: "abc", Status: models.Resolved}))

	require.Len(t, emitter.emits, 1)
	assert.Equal(t, "status_update", emitter.emits[0].event)
	assert.Equal(t, "", emitter.emits[0].room)
}

func TestRemoteSinkPostsRelayPayload(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink := NewRemoteSink(server.URL)
	err := sink.EmitUserNotification(UserNotification{
		UserID:    "42",
		Title:     "Issue Status Updated",
		Message:   "Your issue 'Pothole' is now Resolved",
		Type:      models.NotificationTypeIssueStatus,
		IssueID:   "abc",
		Status:    models.Resolved,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, "/internal/emit_user_notification", gotPath)
	assert.Equal(t, "42", gotBody["user_id"])
	assert.Equal(t, "Issue Status Updated", gotBody["title"])

	payload, ok := gotBody["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "issue_status", payload["type"])
	assert.Equal(t, "abc", payload["issue_id"])
	assert.Equal(t, "Resolved", payload["status"])
}

func TestRemoteSinkReportsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sink := NewRemoteSink(server.URL)
	err := sink.EmitUserNotification(UserNotification{UserID: "42"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestRemoteSinkHonorsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	sink := &RemoteSink{
		BaseURL: server.URL,
		Client:  &http.Client{Timeout: 50 * time.Millisecond},
	}
	err := sink.EmitUserNotification(UserNotification{UserID: "42"})
	require.Error(t, err)
}

func TestRemoteSinkConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	sink := NewRemoteSink(server.URL)
	err := sink.EmitUserNotification(UserNotification{UserID: "42"})
	require.Error(t, err)
}

func TestRemoteSinkSkipsLocalBroadcasts(t *testing.T) {
	// The peer service owns those dashboards; nothing to relay.
	sink := NewRemoteSink("http://127.0.0.1:1")
	assert.NoError(t, sink.EmitNewIssue(NewIssueNotice{}))
	assert.NoError(t, sink.EmitStatusUpdate(StatusUpdate{}))
}
