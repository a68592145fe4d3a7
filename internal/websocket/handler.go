package websocket

import (
	"encoding/json"

	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection with the hub and blocks until it closes.
// Greeting messages are queued before any hub traffic.
func ServeWs(hub *Hub, conn *websocket.Conn, sessionID string, greeting ...Message) {
	client := NewClient(hub, conn, sessionID)
	for _, msg := range greeting {
		if frame, err := json.Marshal(msg); err == nil {
			select {
			case client.Send <- frame:
			default:
			}
		}
	}
	if !hub.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
