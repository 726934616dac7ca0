// Package websocket pushes advisory live-update events (list, item and
// share changes) to connected clients. Nothing in the core lifecycle
// depends on delivery.
package websocket

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Server-to-client message types.
const (
	MessageTypeListUpdate  = "list_update"
	MessageTypeItemUpdate  = "item_update"
	MessageTypeShareUpdate = "share_update"
)

type Message struct {
	Type   string      `json:"type"`
	UserID int         `json:"user_id,omitempty"`
	ListID int         `json:"list_id,omitempty"`
	Data   interface{} `json:"data"`
	Time   int64       `json:"time"`
}

// Hub tracks connected clients per user and routes broadcasts.
type Hub struct {
	mu         sync.RWMutex
	clients    map[int]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message),
	}
}

// Run is the hub's event loop; start it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.dispatch(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	slog.Debug("websocket client connected", "client_id", client.id, "user_id", client.userID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
	slog.Debug("websocket client disconnected", "client_id", client.id, "user_id", client.userID)
}

func (h *Hub) dispatch(message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch message.Type {
	case MessageTypeListUpdate, MessageTypeItemUpdate:
		h.sendToListSubscribers(message)
	case MessageTypeShareUpdate:
		h.sendToUser(message.UserID, message)
	}
}

func (h *Hub) sendToListSubscribers(message Message) {
	for _, clients := range h.clients {
		for client := range clients {
			if client.subscribedTo(message.ListID) {
				client.trySend(message)
			}
		}
	}
}

func (h *Hub) sendToUser(userID int, message Message) {
	for client := range h.clients[userID] {
		client.trySend(message)
	}
}

// NotifyListUpdate fans a list change out to its subscribers.
func (h *Hub) NotifyListUpdate(listID int, data interface{}) {
	h.broadcast <- Message{Type: MessageTypeListUpdate, ListID: listID, Data: data}
}

// NotifyItemUpdate fans an item change out to the list's subscribers.
func (h *Hub) NotifyItemUpdate(listID int, data interface{}) {
	h.broadcast <- Message{Type: MessageTypeItemUpdate, ListID: listID, Data: data}
}

// NotifyShareUpdate delivers a share event to one user's connections.
func (h *Hub) NotifyShareUpdate(userID int, data interface{}) {
	h.broadcast <- Message{Type: MessageTypeShareUpdate, UserID: userID, Data: data}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin enforcement happens at the CORS layer.
		return true
	},
}

// ServeWS upgrades the request and registers the client.
func (h *Hub) ServeWS(c *gin.Context, userID int) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err, "user_id", userID)
		return
	}

	client := &Client{
		id:     uuid.NewString(),
		userID: userID,
		hub:    h,
		conn:   conn,
		send:   make(chan Message, 256),
		lists:  make(map[int]bool),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (m *Message) stamp() {
	if m.Time == 0 {
		m.Time = time.Now().Unix()
	}
}
