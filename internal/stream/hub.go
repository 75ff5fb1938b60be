// Package stream ships frames to browser clients over WebSocket and feeds
// their pointer and viewport events back into the session.
package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"orrery-server/internal/simulation"

	"golang.org/x/time/rate"
)

// sendBuffer is the number of frames queued per client before it counts as slow
const sendBuffer = 8

// Hub is the renderer of the frame loop. It encodes each frame once and fans
// it out to every connected client, at most streamRate times per second. A
// non-positive rate streams every frame.
type Hub struct {
	mu       sync.Mutex
	clients  map[*Client]struct{}
	throttle *rate.Sometimes
	session  *simulation.Session
	logger   *slog.Logger
}

func NewHub(streamRate float64, session *simulation.Session, logger *slog.Logger) *Hub {
	throttle := &rate.Sometimes{Every: 1}
	if streamRate > 0 {
		throttle = &rate.Sometimes{Interval: time.Duration(float64(time.Second) / streamRate)}
	}
	return &Hub{
		clients:  make(map[*Client]struct{}),
		throttle: throttle,
		session:  session,
		logger:   logger.With("component", "stream_hub"),
	}
}

// Render implements simulation.Renderer. It never blocks the frame loop:
// clients whose buffer is full are disconnected.
func (h *Hub) Render(_ context.Context, frame *simulation.Frame) {
	h.throttle.Do(func() {
		h.broadcast(frame)
	})
}

func (h *Hub) broadcast(frame *simulation.Frame) {
	if h.ClientCount() == 0 {
		return
	}

	msg, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error("Failed to encode frame", "frame", frame.Number, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("Dropping slow stream client", "remote_addr", c.remoteAddr)
			h.removeLocked(c)
		}
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	h.logger.Info("Stream client connected", "remote_addr", c.remoteAddr, "clients", len(h.clients))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.removeLocked(c)
		h.logger.Info("Stream client disconnected", "remote_addr", c.remoteAddr, "clients", len(h.clients))
	}
}

func (h *Hub) removeLocked(c *Client) {
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}
