package events

import "time"

// Event is a navigation fact published to the event stream.
type Event interface {
	// EventType is the dotted code, e.g. "navigation.view_changed".
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

// BaseEvent is the only Event implementation; constructors in this package
// fill it in.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string { return e.Type }

func (e BaseEvent) Payload() map[string]interface{} { return e.Data }

func (e BaseEvent) Timestamp() time.Time { return e.OccurredAt }

// SessionID returns the session the event belongs to, or "".
func (e BaseEvent) SessionID() string {
	sid, _ := e.Data["session_id"].(string)
	return sid
}
