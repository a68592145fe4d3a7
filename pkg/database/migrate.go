package database

import (
	"insight-center-be/internal/model"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in creation order.
func Models() []interface{} {
	return []interface{}{
		&model.PincodeMetric{},
		&model.PolicyRecommendation{},
		&model.Insight{},
		&model.SearchEvent{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
