package dto

import "time"

// SearchAuditMessage is published on the search audit topic for every search.
type SearchAuditMessage struct {
	SessionID  string    `json:"session_id"`
	Query      string    `json:"query"`
	Pincode    string    `json:"pincode,omitempty"`
	Outcome    string    `json:"outcome"`
	OccurredAt time.Time `json:"occurred_at"`
}
