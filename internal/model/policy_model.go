package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PolicyRecommendation struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Pincode       string         `gorm:"type:varchar(6);not null;index"`
	State         string         `gorm:"type:varchar(100);not null"`
	District      string         `gorm:"type:varchar(100);not null"`
	PriorityScore float64        `gorm:"not null;default:0;index"`
	Category      string         `gorm:"type:varchar(50);not null"`
	Action        string         `gorm:"type:text;not null"`
	Rationale     string         `gorm:"type:text"`
	Details       datatypes.JSON
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (PolicyRecommendation) TableName() string {
	return "policy_recommendations"
}
