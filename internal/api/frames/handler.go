// Package frames serves the live render stream to browsers over websockets.
package frames

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/Vasu1712/brayns-remote/internal/ws"
)

// DefaultStream is watched when the request names none.
const DefaultStream = "default"

const writeWait = 10 * time.Second

// FrameHandler upgrades viewers and registers them with Hub.
type FrameHandler struct {
	Hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewFrameHandler accepts websocket connections from origin only; an empty
// origin accepts same-host requests, as gorilla/websocket does by default.
func NewFrameHandler(hub *ws.Hub, origin string) *FrameHandler {
	h := &FrameHandler{Hub: hub}
	if origin != "" {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == origin
		}
	}
	return h
}

// ServeWS handles GET /ws/frames?stream=name.
func (h *FrameHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	stream := r.URL.Query().Get("stream")
	if stream == "" {
		stream = DefaultStream
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Frames] Failed to upgrade WebSocket for stream %s: %v", stream, err)
		return
	}

	client := &ws.Client{
		ID:     uuid.NewString(),
		Stream: stream,
		Send:   make(chan []byte, 4),
		Conn:   conn,
	}
	if !h.Hub.Join(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	// Read pump: viewers send nothing; reading detects disconnects.
	go func() {
		defer func() {
			h.Hub.Leave(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[Frames] WebSocket read error for viewer %s: %v", client.ID, err)
				}
				return
			}
		}
	}()

	// Write pump
	go func() {
		defer conn.Close()
		for {
			select {
			case frame, ok := <-client.Send:
				if !ok {
					conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
					log.Printf("[Frames] WebSocket write error for viewer %s: %v", client.ID, err)
					return
				}
			case <-h.Hub.Done():
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return
			}
		}
	}()
}

// RegisterFrameRoutes registers the frame stream route on r.
func RegisterFrameRoutes(r *mux.Router, handler *FrameHandler) {
	r.HandleFunc("/ws/frames", handler.ServeWS).Methods(http.MethodGet)
}
