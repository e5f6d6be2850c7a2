package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/myproparti-blip/My-pro-backend/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Inbound frames are ignored, but the read loop still needs a cap.
	maxMessageSize = 512

	sendBuffer = 256
)

// Client is one live connection. Events are queued on Send and flushed
// by the write pump; a client that cannot keep up is dropped rather than
// allowed to stall the fanout.
type Client struct {
	UserID string

	manager *Manager
	conn    *websocket.Conn
	send    chan []byte
}

func newClient(manager *Manager, conn *websocket.Conn, userID string) *Client {
	return &Client{
		UserID:  userID,
		manager: manager,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
	}
}

// readPump drains inbound frames so pings and close frames are handled.
// The protocol is push-only; any payload the client sends is discarded.
func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read ended", "userId", c.UserID, "error", err)
			}
			return
		}
	}
}

// writePump flushes queued events and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
