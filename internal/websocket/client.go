package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// Client-to-server message types.
const (
	clientMessageSubscribe   = "subscribe"
	clientMessageUnsubscribe = "unsubscribe"
)

type clientMessage struct {
	Type   string `json:"type"`
	ListID int    `json:"list_id,omitempty"`
}

// Client is one websocket connection belonging to one user. A user may
// hold several at once (multiple tabs/devices).
type Client struct {
	id     string
	userID int
	hub    *Hub
	conn   *websocket.Conn
	send   chan Message

	mu    sync.RWMutex
	lists map[int]bool
}

func (c *Client) subscribedTo(listID int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lists[listID]
}

func (c *Client) subscribe(listID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[listID] = true
}

func (c *Client) unsubscribe(listID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, listID)
}

// trySend queues a message without blocking; a client that cannot keep
// up is dropped by its own pumps when the channel backs up.
func (c *Client) trySend(message Message) {
	select {
	case c.send <- message:
	default:
		slog.Warn("websocket send buffer full, dropping message", "client_id", c.id)
	}
}

// readPump consumes subscription messages from the peer until the
// connection dies, then unregisters the client.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read error", "error", err, "client_id", c.id)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			slog.Debug("ignoring malformed websocket message", "client_id", c.id, "error", err)
			continue
		}

		switch msg.Type {
		case clientMessageSubscribe:
			if msg.ListID > 0 {
				c.subscribe(msg.ListID)
			}
		case clientMessageUnsubscribe:
			if msg.ListID > 0 {
				c.unsubscribe(msg.ListID)
			}
		}
	}
}

// writePump forwards hub messages to the peer and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			message.stamp()
			payload, err := json.Marshal(message)
			if err != nil {
				slog.Warn("failed to marshal websocket message", "error", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
