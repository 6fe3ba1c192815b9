// Package web is a headless frontend: it streams the emulator's
// framebuffer to browser clients over a websocket, brotli-compressed,
// and decodes button events from small JSON messages.
package web

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/go-gameboy/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks the set of connected clients and fans frames out to all
// of them.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}

	events chan ButtonEvent
	log    log.Logger
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		events:  make(chan ButtonEvent, 64),
		log:     log.New(),
	}
}

// ServeHTTP upgrades the request to a websocket connection and
// registers a Client for it, handing it off to its own read/write
// pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("web: upgrade: %v", err)
		return
	}

	client := newClient(h, conn)
	h.register(client)

	go client.writePump()
	go client.readPump()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Broadcast sends payload to every currently connected client.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// slow client; drop the frame rather than block the emulator.
		}
	}
}

// Events returns the channel button press/release events from any
// client are funnelled into.
func (h *Hub) Events() <-chan ButtonEvent { return h.events }

// ButtonEvent is one decoded client input message.
type ButtonEvent struct {
	Button  uint8
	Pressed bool
}
