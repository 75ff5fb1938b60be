package stream

import (
	"encoding/json"
	"log/slog"
	"time"

	"orrery-server/internal/pick"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1024
)

const (
	MessagePointer  = "pointer"
	MessageViewport = "viewport"
)

// InputMessage is an event sent by the browser
type InputMessage struct {
	Type    string  `json:"type"`
	ClientX float32 `json:"clientX"`
	ClientY float32 `json:"clientY"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
}

// Client is one WebSocket connection. Only the write pump writes to conn.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	remoteAddr string
	logger     *slog.Logger
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	addr := conn.RemoteAddr().String()
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		remoteAddr: addr,
		logger:     hub.logger.With("remote_addr", addr),
	}
}

// readPump applies input events until the connection fails
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("Stream connection closed unexpectedly", "error", err)
			}
			return
		}

		var msg InputMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Debug("Ignoring malformed input message", "error", err)
			continue
		}
		c.hub.apply(msg)
	}
}

// writePump sends frames and keepalive pings. It exits when the hub closes
// the send channel or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logger.Debug("Stream write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// apply writes an input event into the session. Unknown types are ignored.
func (h *Hub) apply(msg InputMessage) {
	switch msg.Type {
	case MessagePointer:
		h.session.SetPointer(msg.ClientX, msg.ClientY)
	case MessageViewport:
		h.session.SetViewport(pick.Viewport{Width: msg.Width, Height: msg.Height})
	default:
		h.logger.Debug("Ignoring unknown input message", "type", msg.Type)
	}
}
