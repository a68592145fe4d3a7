package model

import (
	"time"

	"github.com/google/uuid"
)

type SearchEvent struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId string    `gorm:"type:varchar(64);not null;index"`
	Query     string    `gorm:"type:varchar(64);not null"`
	Pincode   string    `gorm:"type:varchar(6);index"`
	Outcome   string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (SearchEvent) TableName() string {
	return "search_events"
}
