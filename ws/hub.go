package ws

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one connected dashboard.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Message is the frame pushed to dashboards when the stored simulation changes.
type Message struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub keeps the connected clients and fans out broadcasts.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is done, then closes every client.
// It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.Clients {
				close(client.Send)
				delete(h.Clients, client)
			}
			return
		case client := <-h.Register:
			h.Clients[client] = true
			h.logger.Debug("ws client registered", zap.Int("clients", len(h.Clients)))
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				h.logger.Debug("ws client unregistered", zap.Int("clients", len(h.Clients)))
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					// slow reader
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// register hands the client to the hub loop. It reports false when the hub
// has stopped.
func (h *Hub) register(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// Publish encodes an event and queues it for broadcast. It never blocks;
// events are dropped when the queue is full.
func (h *Hub) Publish(event string, payload interface{}) {
	data, err := json.Marshal(Message{Event: event, Data: payload, Timestamp: time.Now().UTC()})
	if err != nil {
		h.logger.Error("encode ws message", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case h.Broadcast <- data:
	default:
		h.logger.Warn("ws broadcast queue full, dropping event", zap.String("event", event))
	}
}
