package dto

import (
	"insight-center-be/pkg/navigation"
	"insight-center-be/pkg/store"
)

// Request DTOs

type NavigateRequest struct {
	View string `json:"view" validate:"required,oneof=overview analysis action insights"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"max=64"`
}

// Response DTOs

type ViewLink struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type SidebarResponse struct {
	Views           []ViewLink            `json:"views"`
	SearchQuery     string                `json:"search_query"`
	SearchStatus    string                `json:"search_status,omitempty"`
	SelectedPincode string                `json:"selected_pincode,omitempty"`
	ShowClear       bool                  `json:"show_clear"`
	Health          navigation.DataHealth `json:"health"`
}

// DashboardResponse is one full render of the dashboard for a session.
type DashboardResponse struct {
	SessionID   string            `json:"session_id"`
	View        string            `json:"view"`
	ViewLabel   string            `json:"view_label"`
	Query       store.QueryParams `json:"query"`
	QueryString string            `json:"query_string"`
	Sidebar     SidebarResponse   `json:"sidebar"`
	Content     interface{}       `json:"content"`
}

type TrustResponse struct {
	Healthy bool            `json:"healthy"`
	Sources map[string]bool `json:"sources"`
	Footer  string          `json:"footer"`
}

type OverviewMetricsResponse struct {
	TotalPincodes      int64   `json:"total_pincodes"`
	TotalDistricts     int64   `json:"total_districts"`
	TotalStates        int64   `json:"total_states"`
	TotalEnrolments    int64   `json:"total_enrolments"`
	TotalUpdates       int64   `json:"total_updates"`
	CriticalPincodes   int64   `json:"critical_pincodes"`
	AvgUpdateIntensity float64 `json:"avg_update_intensity"`
}

type StateSummaryResponse struct {
	State            string `json:"state"`
	Pincodes         int64  `json:"pincodes"`
	Districts        int64  `json:"districts"`
	Enrolments       int64  `json:"enrolments"`
	Updates          int64  `json:"updates"`
	CriticalPincodes int64  `json:"critical_pincodes"`
}

type PolicyResponse struct {
	Pincode       string                 `json:"pincode"`
	State         string                 `json:"state"`
	District      string                 `json:"district"`
	PriorityScore float64                `json:"priority_score"`
	Category      string                 `json:"category"`
	Action        string                 `json:"action"`
	Rationale     string                 `json:"rationale,omitempty"`
	Details       map[string]interface{} `json:"details,omitempty"`
}

type OverviewContent struct {
	Headline      string                  `json:"headline"`
	Metrics       OverviewMetricsResponse `json:"metrics"`
	States        []StateSummaryResponse  `json:"states"`
	DistrictCount int64                   `json:"district_count"`
	Footer        string                  `json:"footer"`
}

type AnalysisContent struct {
	Pincode string          `json:"pincode,omitempty"`
	Record  store.Record    `json:"record,omitempty"`
	Policy  *PolicyResponse `json:"policy,omitempty"`
	Prompt  string          `json:"prompt,omitempty"`
	Trust   TrustResponse   `json:"trust"`
}

type ActionContent struct {
	Metrics  OverviewMetricsResponse `json:"metrics"`
	Policies []PolicyResponse        `json:"policies"`
	Trust    TrustResponse           `json:"trust"`
}

type InsightResponse struct {
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	HTML     string `json:"html"`
}

type PincodeSearchResponse struct {
	Pincode  string `json:"pincode"`
	Searches int64  `json:"searches"`
}

type InsightsContent struct {
	Insights    []InsightResponse       `json:"insights"`
	TopSearched []PincodeSearchResponse `json:"top_searched"`
	Footer      string                  `json:"footer"`
}
