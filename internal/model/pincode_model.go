package model

import (
	"time"

	"gorm.io/datatypes"
)

type PincodeMetric struct {
	Pincode            string         `gorm:"type:varchar(6);primaryKey"`
	State              string         `gorm:"type:varchar(100);not null;index"`
	District           string         `gorm:"type:varchar(100);not null;index"`
	TotalEnrolments    int64          `gorm:"not null;default:0"`
	ChildEnrolments    int64          `gorm:"not null;default:0"`
	AdultEnrolments    int64          `gorm:"not null;default:0"`
	DemographicUpdates int64          `gorm:"not null;default:0"`
	BiometricUpdates   int64          `gorm:"not null;default:0"`
	UpdateIntensity    float64        `gorm:"not null;default:0"`
	RiskCategory       string         `gorm:"type:varchar(20);not null;default:'stable';index"`
	Details            datatypes.JSON
	RefreshedAt        time.Time      `gorm:"autoUpdateTime"`
}

func (PincodeMetric) TableName() string {
	return "pincode_metrics"
}
