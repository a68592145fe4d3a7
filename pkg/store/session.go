package store

import (
	"net/url"
	"time"
)

// View is one of the four mutually exclusive dashboard display modes
type View string

const (
	ViewOverview View = "overview"
	ViewAnalysis View = "analysis"
	ViewAction   View = "action"
	ViewInsights View = "insights"

	DefaultView = ViewOverview
)

// Views lists the navigation targets in sidebar order.
var Views = []View{ViewOverview, ViewAnalysis, ViewAction, ViewInsights}

var viewLabels = map[View]string{
	ViewOverview: "Overview",
	ViewAnalysis: "Analysis",
	ViewAction:   "Action Plan",
	ViewInsights: "Insights",
}

func (v View) Valid() bool {
	_, ok := viewLabels[v]
	return ok
}

func (v View) Label() string {
	return viewLabels[v]
}

// ParseView returns the view named by s and whether s is one of the four known views.
func ParseView(s string) (View, bool) {
	v := View(s)
	return v, v.Valid()
}

// Record is the opaque row returned by a pincode lookup. The navigation
// layer stores and forwards it without interpreting its fields.
type Record map[string]interface{}

// Query parameter keys mirrored into the browser URL
const (
	ParamView    = "view"
	ParamPincode = "pincode"
)

// QueryParams holds the outbound URL query parameters for a session.
type QueryParams map[string]string

func (q QueryParams) Set(key, value string) {
	q[key] = value
}

func (q QueryParams) Del(key string) {
	delete(q, key)
}

func (q QueryParams) Get(key string) (string, bool) {
	v, ok := q[key]
	return v, ok
}

// Encode renders the parameters as a URL query string ("view=action&pincode=560001").
func (q QueryParams) Encode() string {
	values := url.Values{}
	for k, v := range q {
		values.Set(k, v)
	}
	return values.Encode()
}

// SessionState is the per-session navigation and selection state.
type SessionState struct {
	ID string `json:"id"`

	DataLoaded      bool        `json:"data_loaded"`
	SearchQuery     string      `json:"search_query"`
	SelectedPincode string      `json:"selected_pincode,omitempty"`
	SelectedRecord  Record      `json:"selected_record,omitempty"`
	CurrentView     View        `json:"current_view"`
	URLInitialized  bool        `json:"url_initialized"`
	Query           QueryParams `json:"query"`

	UpdatedAt time.Time `json:"updated_at"`
}

// HasSelection reports whether a pincode (and therefore its record) is selected.
func (s *SessionState) HasSelection() bool {
	return s.SelectedPincode != "" && s.SelectedRecord != nil
}

// Clone returns a copy whose Query can be mutated independently. The
// record is shared; transitions replace it rather than edit it.
func (s *SessionState) Clone() *SessionState {
	c := *s
	if s.Query != nil {
		c.Query = make(QueryParams, len(s.Query))
		for k, v := range s.Query {
			c.Query[k] = v
		}
	}
	return &c
}
