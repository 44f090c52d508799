package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one connected websocket session.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Event
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{hub: hub, conn: conn, send: make(chan Event, sendBuffer)}
}

// HandleWS upgrades the request and runs the session until disconnect.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade error")
		return
	}

	client := newClient(h, conn)
	h.register(client)

	client.send <- Event{Event: "connected", Data: gin.H{"message": "Connected to server"}}

	go client.writePump()
	go client.readPump()
}

// readPump handles the inbound side of the session protocol: join_room
// and leave_room requests.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msgData, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var payload struct {
			Event string `json:"event"`
			Room  string `json:"room"`
		}
		if err := json.Unmarshal(msgData, &payload); err != nil {
			c.hub.log.Warn().Err(err).Msg("invalid ws payload")
			continue
		}
		if payload.Room == "" {
			continue
		}

		switch payload.Event {
		case "join_room":
			c.hub.Join(c, payload.Room)
			c.trySend(Event{Event: "joined_room", Data: gin.H{"room": payload.Room}})
		case "leave_room":
			c.hub.Leave(c, payload.Room)
			c.trySend(Event{Event: "left_room", Data: gin.H{"room": payload.Room}})
		}
	}
}

// writePump writes queued events and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) trySend(ev Event) {
	select {
	case c.send <- ev:
	default:
	}
}
