package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageWireFormat(t *testing.T) {
	msg := newMessage(TypeDataUpdate, "properties", map[string]string{"id": "p-1"})

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "DATA_UPDATE", decoded["type"])
	assert.Equal(t, "properties", decoded["key"])
	assert.NotEmpty(t, decoded["timestamp"])
	assert.Equal(t, map[string]interface{}{"id": "p-1"}, decoded["payload"])
}

func TestMessageOmitsEmptyFields(t *testing.T) {
	msg := newMessage(TypeFullRefresh, "", nil)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "FULL_REFRESH", decoded["type"])
	assert.NotContains(t, decoded, "key")
	assert.NotContains(t, decoded, "payload")
}

func TestNotifyFansOutToAllClients(t *testing.T) {
	m := NewManager()
	go m.Run()

	a := newClient(m, nil, "user-a")
	b := newClient(m, nil, "user-b")
	m.register <- a
	m.register <- b

	m.NotifyCacheInvalidate("agents", "")

	for _, client := range []*Client{a, b} {
		raw := <-client.send
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, TypeCacheInvalidate, msg.Type)
		assert.Equal(t, "agents", msg.Key)
	}
}

func TestNotifyTargetsSingleUser(t *testing.T) {
	m := NewManager()
	go m.Run()

	a := newClient(m, nil, "user-a")
	b := newClient(m, nil, "user-b")
	m.register <- a
	m.register <- b

	m.NotifyFullRefresh("user-b")

	raw := <-b.send
	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, TypeFullRefresh, msg.Type)

	select {
	case unexpected := <-a.send:
		t.Fatalf("user-a should not receive a targeted event, got %s", unexpected)
	default:
	}
}

func TestNotifyNeverBlocksWithoutRunLoop(t *testing.T) {
	manager := NewManager() // Run is deliberately not started.

	done := make(chan struct{})
	go func() {
		// Well past the event queue capacity; overflow must be dropped,
		// not block the caller.
		for i := 0; i < 200; i++ {
			manager.NotifyDataUpdate("properties", nil, "")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notify blocked on a full event queue")
	}
}
