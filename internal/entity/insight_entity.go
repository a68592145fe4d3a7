package entity

import (
	"time"

	"github.com/google/uuid"
)

type Insight struct {
	Id        uuid.UUID
	Title     string
	Body      string // markdown
	Category  string
	SortOrder int
	CreatedAt time.Time
}
