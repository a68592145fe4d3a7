package specification

import "gorm.io/gorm"

type ByPincode struct {
	Pincode string
}

func (s ByPincode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("pincode = ?", s.Pincode)
}

type ByState struct {
	State string
}

func (s ByState) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("state = ?", s.State)
}

// ByPriority orders recommendations most urgent first, pincode breaking ties.
type ByPriority struct{}

func (s ByPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("priority_score DESC").Order("pincode ASC")
}
