package ws

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one browser watching a frame stream.
type Client struct {
	ID     string          // connection id, for logs
	Stream string          // stream the client watches
	Send   chan []byte     // frames waiting to be written
	Conn   *websocket.Conn // nil in tests that only exercise the hub
}

// Frame is one encoded image addressed to every viewer of Stream.
type Frame struct {
	Stream string
	Data   []byte
}

// Hub fans frames out to the clients of each stream.
type Hub struct {
	clients    map[string]map[*Client]bool // stream -> clients
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Frame
	done       chan struct{} // closed when Run returns
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Frame),
		done:       make(chan struct{}),
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Join registers client. It reports false when the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters client; it does not block once the hub has stopped.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Viewers returns how many clients watch stream.
func (h *Hub) Viewers(stream string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[stream])
}

func (h *Hub) remove(client *Client) {
	if clients, ok := h.clients[client.Stream]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.Send)
			if len(clients) == 0 {
				delete(h.clients, client.Stream)
			}
		}
	}
}

// Run serves the hub's channels until ctx is done. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.Register:
			h.mu.Lock()
			if h.clients[client.Stream] == nil {
				h.clients[client.Stream] = make(map[*Client]bool)
			}
			h.clients[client.Stream][client] = true
			h.mu.Unlock()
			log.Printf("[Frames] Viewer %s joined stream %s", client.ID, client.Stream)
		case client := <-h.Unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
			log.Printf("[Frames] Viewer %s left stream %s", client.ID, client.Stream)
		case frame := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients[frame.Stream] {
				select {
				case client.Send <- frame.Data:
				default:
					// too slow; drop the viewer rather than stall the stream
					log.Printf("[Frames] Dropping slow viewer %s", client.ID)
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}
