package navigation

import (
	"context"
	"errors"
	"fmt"

	"insight-center-be/internal/pkg/logger"
	"insight-center-be/pkg/store"
)

var (
	// ErrInvalidInput marks user input the controller refused to act on.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDataUnavailable wraps loader failures; no view can be rendered without data.
	ErrDataUnavailable = errors.New("data unavailable")
)

// LoaderFunc preloads every dataset the views depend on. It may be slow.
type LoaderFunc func(ctx context.Context) error

// LookupFunc resolves a 6-digit pincode to its record. ok is false when absent.
type LookupFunc func(ctx context.Context, pincode string) (record store.Record, ok bool)

// StatusFunc reports, per data source, whether it is healthy.
type StatusFunc func(ctx context.Context) map[string]bool

type Options struct {
	// DeepLinkForcesAnalysis lands a URL-hydrated pincode on the analysis view
	// regardless of any view parameter that came with it.
	DeepLinkForcesAnalysis bool
}

func DefaultOptions() Options {
	return Options{DeepLinkForcesAnalysis: true}
}

// Controller owns every transition of a store.SessionState. It holds no
// per-session data itself; callers pass the state they loaded for the session.
type Controller struct {
	loader LoaderFunc
	lookup LookupFunc
	status StatusFunc
	opts   Options
	logger logger.ILogger
}

func NewController(loader LoaderFunc, lookup LookupFunc, status StatusFunc, opts Options, log logger.ILogger) *Controller {
	return &Controller{
		loader: loader,
		lookup: lookup,
		status: status,
		opts:   opts,
		logger: log,
	}
}

// InitializeDefaults fills in unset fields. Calling it any number of times
// yields the same state as calling it once.
func (c *Controller) InitializeDefaults(s *store.SessionState) {
	if !s.CurrentView.Valid() {
		s.CurrentView = store.DefaultView
	}
	if s.Query == nil {
		s.Query = store.QueryParams{}
	}
	// A record without its pincode (or the reverse) can only come from a
	// corrupted store entry; drop both rather than render half a selection.
	if (s.SelectedPincode == "") != (s.SelectedRecord == nil) {
		s.SelectedPincode = ""
		s.SelectedRecord = nil
	}
}

// EnsureDataLoaded runs the loader once per session. rerun is true when the
// loader just ran and the caller must restart its render pass.
func (c *Controller) EnsureDataLoaded(ctx context.Context, s *store.SessionState) (rerun bool, err error) {
	if s.DataLoaded {
		return false, nil
	}

	if err := c.loader(ctx); err != nil {
		return false, fmt.Errorf("%w: preload datasets: %w", ErrDataUnavailable, err)
	}

	s.DataLoaded = true
	c.logger.Info("Navigation", "Datasets loaded for session", map[string]interface{}{"session_id": s.ID})
	return true, nil
}

// HydrateFromURL applies inbound URL parameters exactly once per session.
// It reports whether hydration ran on this call.
func (c *Controller) HydrateFromURL(ctx context.Context, s *store.SessionState, params map[string]string) bool {
	if s.URLInitialized {
		return false
	}

	if raw, ok := params[store.ParamView]; ok {
		if view, valid := store.ParseView(raw); valid {
			s.CurrentView = view
		}
	}

	if pincode, ok := params[store.ParamPincode]; ok && IsWellFormedPincode(pincode) {
		if record, found := c.lookup(ctx, pincode); found {
			s.SelectedPincode = pincode
			s.SearchQuery = pincode
			s.SelectedRecord = record
			if c.opts.DeepLinkForcesAnalysis {
				s.CurrentView = store.ViewAnalysis
			}
		}
	}

	s.URLInitialized = true
	c.syncQuery(s)

	c.logger.Debug("Navigation", "Hydrated from URL", map[string]interface{}{
		"session_id": s.ID,
		"view":       s.CurrentView,
		"pincode":    s.SelectedPincode,
	})
	return true
}

// OnViewButtonClicked switches the current view and rewrites the outbound URL.
func (c *Controller) OnViewButtonClicked(s *store.SessionState, view store.View) error {
	if !view.Valid() {
		return fmt.Errorf("%w: unknown view %q", ErrInvalidInput, view)
	}

	s.CurrentView = view
	c.syncQuery(s)
	return nil
}

// OnSearchTextChanged handles a new value from the search box. A failed or
// partial search never clears an existing selection; only Clear does.
func (c *Controller) OnSearchTextChanged(ctx context.Context, s *store.SessionState, text string) SearchOutcome {
	if text == s.SearchQuery {
		return SearchUnchanged
	}
	s.SearchQuery = text

	if !IsWellFormedPincode(text) {
		return SearchInvalidInput
	}

	record, found := c.lookup(ctx, text)
	if !found {
		return SearchNotFound
	}

	s.SelectedPincode = text
	s.SelectedRecord = record
	c.syncQuery(s)
	return SearchSelected
}

// OnClearClicked drops the selection. It is a no-op returning false when
// nothing is selected, since the Clear button is not offered then.
func (c *Controller) OnClearClicked(s *store.SessionState) bool {
	if s.SelectedRecord == nil {
		return false
	}

	s.SearchQuery = ""
	s.SelectedPincode = ""
	s.SelectedRecord = nil
	c.syncQuery(s)
	return true
}

// ComputeDataHealth is recomputed on every call; sources can change between renders.
func (c *Controller) ComputeDataHealth(ctx context.Context) DataHealth {
	return NewDataHealth(c.status(ctx))
}

// ShowClear reports whether the sidebar should offer the Clear button.
func ShowClear(s *store.SessionState) bool {
	return s.SelectedRecord != nil
}

// syncQuery mirrors the state into the outbound URL: view always, pincode iff selected.
func (c *Controller) syncQuery(s *store.SessionState) {
	if s.Query == nil {
		s.Query = store.QueryParams{}
	}
	s.Query.Set(store.ParamView, string(s.CurrentView))
	if s.SelectedPincode != "" {
		s.Query.Set(store.ParamPincode, s.SelectedPincode)
	} else {
		s.Query.Del(store.ParamPincode)
	}
}
