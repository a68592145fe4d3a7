package events

import "time"

// Navigation event types. NATS subjects are "events.<type>".
const (
	TypeSessionHydrated   = "navigation.session_hydrated"
	TypeViewChanged       = "navigation.view_changed"
	TypePincodeSelected   = "navigation.pincode_selected"
	TypeSelectionCleared  = "navigation.selection_cleared"
	TypeSearchNotResolved = "navigation.search_not_resolved"
)

func newNavigationEvent(eventType, sessionID string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["session_id"] = sessionID
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

func SessionHydrated(sessionID, view, pincode string) BaseEvent {
	return newNavigationEvent(TypeSessionHydrated, sessionID, map[string]interface{}{
		"view":    view,
		"pincode": pincode,
	})
}

func ViewChanged(sessionID, from, to string) BaseEvent {
	return newNavigationEvent(TypeViewChanged, sessionID, map[string]interface{}{
		"from": from,
		"to":   to,
	})
}

func PincodeSelected(sessionID, pincode string) BaseEvent {
	return newNavigationEvent(TypePincodeSelected, sessionID, map[string]interface{}{
		"pincode": pincode,
	})
}

func SelectionCleared(sessionID, pincode string) BaseEvent {
	return newNavigationEvent(TypeSelectionCleared, sessionID, map[string]interface{}{
		"pincode": pincode,
	})
}

func SearchNotResolved(sessionID, query, outcome string) BaseEvent {
	return newNavigationEvent(TypeSearchNotResolved, sessionID, map[string]interface{}{
		"query":   query,
		"outcome": outcome,
	})
}
