package entity

import "time"

type RiskCategory string

const (
	RiskCritical RiskCategory = "critical"
	RiskWatch    RiskCategory = "watch"
	RiskStable   RiskCategory = "stable"
)

// PincodeRecord is the precomputed enrolment/update profile of one pincode.
type PincodeRecord struct {
	Pincode            string
	State              string
	District           string
	TotalEnrolments    int64
	ChildEnrolments    int64
	AdultEnrolments    int64
	DemographicUpdates int64
	BiometricUpdates   int64
	UpdateIntensity    float64
	RiskCategory       RiskCategory
	Details            map[string]interface{}
	RefreshedAt        time.Time
}

type OverviewMetrics struct {
	TotalPincodes      int64
	TotalDistricts     int64
	TotalStates        int64
	TotalEnrolments    int64
	TotalUpdates       int64
	CriticalPincodes   int64
	AvgUpdateIntensity float64
}

type StateSummary struct {
	State            string
	Pincodes         int64
	Districts        int64
	Enrolments       int64
	Updates          int64
	CriticalPincodes int64
}
