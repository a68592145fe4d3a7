package navigation

import "sort"

const (
	LabelHealthy   = "Systems operational"
	LabelUnhealthy = "Data incomplete"
)

// DataHealth is the sidebar status indicator.
type DataHealth struct {
	Healthy bool            `json:"healthy"`
	Label   string          `json:"label"`
	Sources map[string]bool `json:"sources"`
	// Failing lists unhealthy sources in name order.
	Failing []string `json:"failing,omitempty"`
}

// NewDataHealth ANDs every source; an empty status map is healthy.
func NewDataHealth(status map[string]bool) DataHealth {
	h := DataHealth{Healthy: true, Sources: make(map[string]bool, len(status))}
	for name, ok := range status {
		h.Sources[name] = ok
		if !ok {
			h.Healthy = false
			h.Failing = append(h.Failing, name)
		}
	}
	sort.Strings(h.Failing)

	if h.Healthy {
		h.Label = LabelHealthy
	} else {
		h.Label = LabelUnhealthy
	}
	return h
}
