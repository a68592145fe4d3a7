package model

import (
	"time"

	"github.com/google/uuid"
)

type Insight struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:text;not null"`
	Category  string    `gorm:"type:varchar(50)"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Insight) TableName() string {
	return "insights"
}
