package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"insight-center-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ClusterChannel is the redis channel instances use to reach each other's clients.
const ClusterChannel = "insight_cluster_events"

const broadcastTarget = "*"

// Message is the frame written to every websocket client.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clusterPayload struct {
	Origin          string          `json:"origin"`
	TargetSessionID string          `json:"target_session_id"`
	Message         json.RawMessage `json:"message"`
}

type Hub struct {
	// Registered clients: session id -> open tabs of that session
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	// Optional; nil keeps delivery local to this instance
	rdb        *redis.Client
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, instanceID string, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		instanceID: instanceID,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register hands a client to the hub; it reports false once Run has returned.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister never blocks past the hub's lifetime.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.SessionID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
			client.close()
			break
		}
	}
	if len(h.clients[client.SessionID]) == 0 {
		delete(h.clients, client.SessionID)
		h.logger.Info("Hub", "Session has no open connections", map[string]interface{}{"session_id": client.SessionID})
	}
}

// SendToSession delivers a message to every open tab of one session, here
// and on other instances.
func (h *Hub) SendToSession(sessionID, msgType string, data interface{}) {
	frame, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode message", map[string]interface{}{"type": msgType, "error": err})
		return
	}
	h.deliver(sessionID, frame)
	h.publish(sessionID, frame)
}

// Broadcast delivers a message to every connected client.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	frame, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode message", map[string]interface{}{"type": msgType, "error": err})
		return
	}
	h.deliver(broadcastTarget, frame)
	h.publish(broadcastTarget, frame)
}

// ClientCount returns the number of open connections on this instance.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

func (h *Hub) deliver(target string, frame []byte) {
	var slow []*Client

	h.mu.RLock()
	if target == broadcastTarget {
		for _, clients := range h.clients {
			slow = append(slow, enqueue(clients, frame)...)
		}
	} else {
		slow = enqueue(h.clients[target], frame)
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"session_id": client.SessionID})
		h.remove(client)
	}
}

func enqueue(clients []*Client, frame []byte) (slow []*Client) {
	for _, client := range clients {
		select {
		case client.Send <- frame:
		default:
			slow = append(slow, client)
		}
	}
	return slow
}

func (h *Hub) publish(target string, frame []byte) {
	if h.rdb == nil {
		return
	}
	payload, err := json.Marshal(clusterPayload{
		Origin:          h.instanceID,
		TargetSessionID: target,
		Message:         frame,
	})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish to cluster", map[string]interface{}{"error": err.Error()})
	}
}

// subscribeToRedis delivers messages published by other instances to the
// clients held here. Each instance ignores its own messages.
func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliver(payload.TargetSessionID, payload.Message)
	}
}
