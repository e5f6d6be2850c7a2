package ws

import "time"

// Event types understood by the clients.
const (
	TypeDataUpdate      = "DATA_UPDATE"
	TypeCacheInvalidate = "CACHE_INVALIDATE"
	TypeFullRefresh     = "FULL_REFRESH"
)

// Message is the wire format of one fanout event. Key names the client
// cache entry the event refers to; Payload optionally carries the fresh
// data so clients can skip the refetch.
type Message struct {
	Type      string      `json:"type"`
	Key       string      `json:"key,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func newMessage(eventType, key string, payload interface{}) *Message {
	return &Message{
		Type:      eventType,
		Key:       key,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}
