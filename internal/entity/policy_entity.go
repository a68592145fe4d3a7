package entity

import (
	"time"

	"github.com/google/uuid"
)

type PolicyRecommendation struct {
	Id            uuid.UUID
	Pincode       string
	State         string
	District      string
	PriorityScore float64
	Category      string
	Action        string
	Rationale     string
	Details       map[string]interface{}
	CreatedAt     time.Time
}
