package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ethersheet/internal/metrics"
	"ethersheet/internal/models"
)

// Client is one live WebSocket connection. The connection token is internal
// bookkeeping and never shown to other room members.
type Client struct {
	ID   string
	Conn *websocket.Conn
	mu   sync.Mutex
	hook func(models.WSFrame)
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{ID: uuid.NewString(), Conn: conn}
}

// SetSendHook replaces the default WebSocket sender (used in tests).
func (c *Client) SetSendHook(fn func(models.WSFrame)) {
	c.mu.Lock()
	c.hook = fn
	c.mu.Unlock()
}

// Send delivers one frame to this connection. Delivery is best effort: a dead
// peer's write failure only bumps the dropped-frames counter so remaining
// recipients still get theirs.
func (c *Client) Send(frame models.WSFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hook != nil {
		c.hook(frame)
		return
	}
	if c.Conn == nil {
		return
	}
	if err := c.Conn.WriteJSON(frame); err != nil {
		metrics.DroppedFrames.Inc()
	}
}
