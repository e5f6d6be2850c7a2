package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/myproparti-blip/My-pro-backend/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from app origins we don't enumerate; auth happens
	// before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an authenticated request to a websocket connection
// and attaches it to the manager. The auth middleware must have stored
// the user id in the gin context.
func (m *Manager) ServeWS(c *gin.Context) {
	userID := c.GetString("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(m, conn, userID)
	m.register <- client

	go client.writePump()
	go client.readPump()
}
