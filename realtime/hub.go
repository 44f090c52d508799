package realtime

import (
	"sync"

	"github.com/rs/zerolog"
)

// RoomAdmins receives new-issue notifications for admin dashboards.
const RoomAdmins = "admins"

// UserRoom names the room holding all of one user's sessions.
func UserRoom(userID string) string {
	return "user_" + userID
}

// Event is the envelope written to every connected session.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub owns the room registry: which sessions are connected and which
// rooms each has joined. All access goes through the mutex; emission is
// best-effort and never blocks on a slow session.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		rooms:   make(map[string]map[*Client]bool),
		log:     log,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		for room, members := range h.rooms {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
		close(c.send)
	}
	h.mu.Unlock()
}

// Join adds the session to a room. Joining a room twice is a no-op.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	h.mu.Unlock()
}

// Leave removes the session from a room. Leaving a room the session
// never joined is a no-op.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	h.mu.Unlock()
}

// Emit delivers an event to every session in room, or to every connected
// session when room is empty. Sessions whose send buffer is full are
// skipped; emission never fails the caller.
func (h *Hub) Emit(event string, data interface{}, room string) {
	ev := Event{Event: event, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()

	if room == "" {
		for c := range h.clients {
			h.deliver(c, ev)
		}
		return
	}
	for c := range h.rooms[room] {
		h.deliver(c, ev)
	}
}

func (h *Hub) deliver(c *Client, ev Event) {
	select {
	case c.send <- ev:
	default:
		h.log.Warn().Str("event", ev.Event).Msg("dropping event for slow session")
	}
}

// RoomSize returns how many sessions are currently joined to a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}
