package realtime

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func connect(h *Hub) *Client {
	c := newClient(h, nil)
	h.register(c)
	return c
}

// drain returns every event currently queued for the session.
func drain(c *Client) []Event {
	var events []Event
	for {
		select {
		case ev := <-c.send:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestEmitToRoom(t *testing.T) {
	h := newTestHub()
	reporter := connect(h)
	admin := connect(h)

	h.Join(reporter, UserRoom("42"))
	h.Join(admin, RoomAdmins)

	h.Emit("user_notification", map[string]string{"issue_id": "abc"}, UserRoom("42"))

	reporterEvents := drain(reporter)
	require.Len(t, reporterEvents, 1)
	assert.Equal(t, "user_notification", reporterEvents[0].Event)

	assert.Empty(t, drain(admin), "session joined only to admins must not receive the room-scoped copy")
}

func TestEmitBroadcastReachesAllSessions(t *testing.T) {
	h := newTestHub()
	a := connect(h)
	b := connect(h)
	h.Join(a, UserRoom("42"))

	h.Emit("status_update", map[string]string{"status": "Resolved"}, "")

	require.Len(t, drain(a), 1)
	require.Len(t, drain(b), 1)
}

func TestEmitToEmptyRoomIsNoop(t *testing.T) {
	h := newTestHub()
	c := connect(h)

	h.Emit("notification", nil, RoomAdmins)

	assert.Empty(t, drain(c))
}

func TestJoinIsIdempotent(t *testing.T) {
	h := newTestHub()
	c := connect(h)

	h.Join(c, RoomAdmins)
	h.Join(c, RoomAdmins)

	assert.Equal(t, 1, h.RoomSize(RoomAdmins))

	h.Emit("notification", nil, RoomAdmins)
	assert.Len(t, drain(c), 1, "double join must not duplicate delivery")
}

func TestLeaveIsIdempotent(t *testing.T) {
	h := newTestHub()
	c := connect(h)

	h.Join(c, RoomAdmins)
	h.Leave(c, RoomAdmins)
	h.Leave(c, RoomAdmins)
	h.Leave(c, "never_joined")

	assert.Equal(t, 0, h.RoomSize(RoomAdmins))

	h.Emit("notification", nil, RoomAdmins)
	assert.Empty(t, drain(c))
}

func TestUnregisterRemovesSessionFromAllRooms(t *testing.T) {
	h := newTestHub()
	c := connect(h)
	h.Join(c, RoomAdmins)
	h.Join(c, UserRoom("42"))

	h.unregister(c)

	assert.Equal(t, 0, h.RoomSize(RoomAdmins))
	assert.Equal(t, 0, h.RoomSize(UserRoom("42")))

	_, open := <-c.send
	assert.False(t, open, "send channel must be closed on unregister")
}

func TestEmitNeverBlocksOnSlowSession(t *testing.T) {
	h := newTestHub()
	c := connect(h)
	h.Join(c, RoomAdmins)

	// Fill the session's buffer; further emits must drop, not block.
	for i := 0; i < sendBuffer+10; i++ {
		h.Emit("notification", i, RoomAdmins)
	}

	assert.Len(t, drain(c), sendBuffer)
}

func TestConcurrentJoinLeave(t *testing.T) {
	h := newTestHub()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		c := connect(h)
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Join(c, RoomAdmins)
				h.Emit("notification", j, RoomAdmins)
				h.Leave(c, RoomAdmins)
			}
			h.unregister(c)
		}(c)
	}
	wg.Wait()

	assert.Equal(t, 0, h.RoomSize(RoomAdmins))
}
