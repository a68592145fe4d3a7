package entity

import (
	"time"

	"github.com/google/uuid"
)

type SearchEvent struct {
	Id        uuid.UUID
	SessionId string
	Query     string
	Pincode   string // empty unless the query was a well-formed pincode
	Outcome   string
	CreatedAt time.Time
}

type PincodeSearchCount struct {
	Pincode  string
	Searches int64
}
