package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"TaskBadger/entity"
)

// Event represents a WebSocket event sent to dashboard clients.
type Event struct {
	Type string      `json:"type"` // "task_created", "task_updated"
	Data interface{} `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts task
// events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			// Write lock: slow clients are evicted from the map here.
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// TaskCreated sends a task_created event to all connected clients.
func (h *Hub) TaskCreated(t *entity.Task) {
	h.broadcast <- &Event{
		Type: "task_created",
		Data: t,
	}
}

// TaskUpdated sends a task_updated event to all connected clients.
func (h *Hub) TaskUpdated(t *entity.Task) {
	h.broadcast <- &Event{
		Type: "task_updated",
		Data: t,
	}
}
