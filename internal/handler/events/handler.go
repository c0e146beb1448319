package events

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// Handler owns the realtime notification channel. The channel carries no
// application payload; it exists so the frontend can observe liveness,
// and connect/disconnect events are logged server-side.
type Handler struct {
	upgrader websocket.Upgrader
}

// New creates the events handler. Connections are accepted from the
// configured frontend origin; requests without an Origin header (CLI
// clients) are accepted too.
func New(allowedOrigin string) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] client connected: %s", r.RemoteAddr)
	for {
		// Drain inbound frames; the channel carries no payload.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	log.Printf("[ws] client disconnected: %s", r.RemoteAddr)
}
