package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"insight-center-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(nil, "test", logger.NewNopLogger())
	go hub.Run(ctx)
	return hub
}

func registerClient(t *testing.T, hub *Hub, sessionID string) *Client {
	t.Helper()
	client := &Client{Hub: hub, SessionID: sessionID, Send: make(chan []byte, 4)}
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		for _, c := range hub.clients[sessionID] {
			if c == client {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
	return client
}

func readFrame(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case frame := <-c.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(frame, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return Message{}
	}
}

func TestHubSendToSession(t *testing.T) {
	hub := startHub(t)
	tabA1 := registerClient(t, hub, "a")
	tabA2 := registerClient(t, hub, "a")
	tabB := registerClient(t, hub, "b")

	hub.SendToSession("a", "state", map[string]string{"view": "action"})

	assert.Equal(t, "state", readFrame(t, tabA1).Type)
	assert.Equal(t, "state", readFrame(t, tabA2).Type)
	assert.Len(t, tabB.Send, 0)
}

func TestHubBroadcast(t *testing.T) {
	hub := startHub(t)
	tabA := registerClient(t, hub, "a")
	tabB := registerClient(t, hub, "b")

	hub.Broadcast("health", map[string]bool{"healthy": true})

	assert.Equal(t, "health", readFrame(t, tabA).Type)
	assert.Equal(t, "health", readFrame(t, tabB).Type)
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := startHub(t)
	slow := &Client{Hub: hub, SessionID: "slow", Send: make(chan []byte)}
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.SendToSession("slow", "state", nil)

	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestHubUnregister(t *testing.T) {
	hub := startHub(t)
	client := registerClient(t, hub, "a")

	hub.unregister <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	// A second unregister (readPump exiting after a drop) is harmless.
	hub.unregister <- client
}

func TestHubCallsReturnAfterRunExits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, "test", logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := registerClient(t, hub, "a")
	cancel()
	<-stopped

	returned := make(chan bool)
	go func() {
		hub.Unregister(client)
		returned <- hub.Register(&Client{Hub: hub, SessionID: "b", Send: make(chan []byte, 1)})
	}()

	select {
	case ok := <-returned:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("hub calls blocked after Run exited")
	}
}
