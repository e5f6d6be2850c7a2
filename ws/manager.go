package ws

import (
	"encoding/json"

	"github.com/myproparti-blip/My-pro-backend/internal/logger"
)

type envelope struct {
	userID  string // empty means broadcast
	payload []byte
}

// Manager owns the connection set and serializes all membership changes
// and fanout through its run loop. It satisfies the services' Notifier
// contract, so mutations push events without knowing about sockets.
type Manager struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	events     chan envelope
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan envelope, 64),
	}
}

// Run processes registrations and events until the process exits. Start
// it once, in its own goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.clients[client] = struct{}{}
			logger.Debug("websocket client connected", "userId", client.UserID, "total", len(m.clients))

		case client := <-m.unregister:
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
				logger.Debug("websocket client disconnected", "userId", client.UserID, "total", len(m.clients))
			}

		case event := <-m.events:
			for client := range m.clients {
				if event.userID != "" && client.UserID != event.userID {
					continue
				}
				select {
				case client.send <- event.payload:
				default:
					// Slow consumer: drop the connection, not the event.
					delete(m.clients, client)
					close(client.send)
					logger.Warn("websocket client dropped, send buffer full", "userId", client.UserID)
				}
			}
		}
	}
}

// NotifyDataUpdate announces fresh data for a cache key, optionally to a
// single user.
func (m *Manager) NotifyDataUpdate(key string, payload interface{}, userID string) {
	m.publish(userID, newMessage(TypeDataUpdate, key, payload))
}

// NotifyCacheInvalidate tells clients to drop a cache key and refetch.
func (m *Manager) NotifyCacheInvalidate(key string, userID string) {
	m.publish(userID, newMessage(TypeCacheInvalidate, key, nil))
}

// NotifyFullRefresh tells clients to reload all cached state.
func (m *Manager) NotifyFullRefresh(userID string) {
	m.publish(userID, newMessage(TypeFullRefresh, "", nil))
}

func (m *Manager) publish(userID string, msg *Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("websocket event marshal failed", "type", msg.Type, "error", err)
		return
	}
	// Delivery is best-effort: a full queue drops the event rather than
	// stalling the caller's request.
	select {
	case m.events <- envelope{userID: userID, payload: payload}:
	default:
		logger.Warn("websocket event dropped, queue full", "type", msg.Type, "key", msg.Key)
	}
}
