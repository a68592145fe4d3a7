package navigation

import (
	"context"
	"errors"
	"testing"

	"insight-center-be/internal/pkg/logger"
	"insight-center-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	records map[string]store.Record
	calls   []string
}

func (f *fakeLookup) Lookup(_ context.Context, pincode string) (store.Record, bool) {
	f.calls = append(f.calls, pincode)
	r, ok := f.records[pincode]
	return r, ok
}

func newTestController(t *testing.T, opts Options) (*Controller, *fakeLookup) {
	t.Helper()
	lookup := &fakeLookup{records: map[string]store.Record{
		"560001": {"name": "X"},
		"110001": {"name": "Connaught Place"},
	}}
	c := NewController(
		func(context.Context) error { return nil },
		lookup.Lookup,
		func(context.Context) map[string]bool { return map[string]bool{} },
		opts,
		logger.NewNopLogger(),
	)
	return c, lookup
}

func freshState(c *Controller) *store.SessionState {
	s := &store.SessionState{ID: "test-session"}
	c.InitializeDefaults(s)
	return s
}

func assertPaired(t *testing.T, s *store.SessionState) {
	t.Helper()
	assert.Equal(t, s.SelectedPincode == "", s.SelectedRecord == nil,
		"pincode %q and record %v must be set and cleared together", s.SelectedPincode, s.SelectedRecord)
}

func TestInitializeDefaults(t *testing.T) {
	c, _ := newTestController(t, DefaultOptions())

	t.Run("fresh state gets defaults", func(t *testing.T) {
		s := &store.SessionState{}
		c.InitializeDefaults(s)

		assert.False(t, s.DataLoaded)
		assert.Equal(t, "", s.SearchQuery)
		assert.Equal(t, "", s.SelectedPincode)
		assert.Nil(t, s.SelectedRecord)
		assert.Equal(t, store.ViewOverview, s.CurrentView)
		assert.False(t, s.URLInitialized)
		assert.NotNil(t, s.Query)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := &store.SessionState{}
		c.InitializeDefaults(once)

		twice := &store.SessionState{}
		c.InitializeDefaults(twice)
		c.InitializeDefaults(twice)

		assert.Equal(t, once, twice)
	})

	t.Run("set fields are kept", func(t *testing.T) {
		s := &store.SessionState{
			DataLoaded:      true,
			SearchQuery:     "5600",
			SelectedPincode: "560001",
			SelectedRecord:  store.Record{"name": "X"},
			CurrentView:     store.ViewAction,
			URLInitialized:  true,
			Query:           store.QueryParams{"view": "action"},
		}
		c.InitializeDefaults(s)

		assert.True(t, s.DataLoaded)
		assert.Equal(t, "5600", s.SearchQuery)
		assert.Equal(t, "560001", s.SelectedPincode)
		assert.Equal(t, store.ViewAction, s.CurrentView)
		assert.True(t, s.URLInitialized)
		assert.Equal(t, "action", s.Query["view"])
	})

	t.Run("half selection is dropped", func(t *testing.T) {
		s := &store.SessionState{SelectedPincode: "560001"}
		c.InitializeDefaults(s)
		assertPaired(t, s)
		assert.Equal(t, "", s.SelectedPincode)
	})
}

func TestEnsureDataLoaded(t *testing.T) {
	t.Run("runs loader once and asks for rerun", func(t *testing.T) {
		calls := 0
		c := NewController(
			func(context.Context) error { calls++; return nil },
			func(context.Context, string) (store.Record, bool) { return nil, false },
			func(context.Context) map[string]bool { return nil },
			DefaultOptions(),
			logger.NewNopLogger(),
		)
		s := freshState(c)

		rerun, err := c.EnsureDataLoaded(context.Background(), s)
		require.NoError(t, err)
		assert.True(t, rerun)
		assert.True(t, s.DataLoaded)

		rerun, err = c.EnsureDataLoaded(context.Background(), s)
		require.NoError(t, err)
		assert.False(t, rerun)
		assert.Equal(t, 1, calls)
	})

	t.Run("loader failure propagates", func(t *testing.T) {
		boom := errors.New("disk gone")
		c := NewController(
			func(context.Context) error { return boom },
			func(context.Context, string) (store.Record, bool) { return nil, false },
			func(context.Context) map[string]bool { return nil },
			DefaultOptions(),
			logger.NewNopLogger(),
		)
		s := freshState(c)

		rerun, err := c.EnsureDataLoaded(context.Background(), s)
		require.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, ErrDataUnavailable)
		assert.False(t, rerun)
		assert.False(t, s.DataLoaded)
	})
}

func TestHydrateFromURL(t *testing.T) {
	ctx := context.Background()

	t.Run("deep link lands on analysis", func(t *testing.T) {
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)

		ran := c.HydrateFromURL(ctx, s, map[string]string{"view": "action", "pincode": "560001"})

		assert.True(t, ran)
		assert.Equal(t, store.ViewAnalysis, s.CurrentView)
		assert.Equal(t, "560001", s.SelectedPincode)
		assert.Equal(t, "560001", s.SearchQuery)
		assert.Equal(t, store.Record{"name": "X"}, s.SelectedRecord)
		assert.True(t, s.URLInitialized)
		assert.Equal(t, store.QueryParams{"view": "analysis", "pincode": "560001"}, s.Query)
	})

	t.Run("deep link override can be disabled", func(t *testing.T) {
		c, _ := newTestController(t, Options{DeepLinkForcesAnalysis: false})
		s := freshState(c)

		c.HydrateFromURL(ctx, s, map[string]string{"view": "action", "pincode": "560001"})

		assert.Equal(t, store.ViewAction, s.CurrentView)
		assert.Equal(t, "560001", s.SelectedPincode)
	})

	t.Run("malformed pincode is ignored", func(t *testing.T) {
		c, lookup := newTestController(t, DefaultOptions())
		s := freshState(c)

		c.HydrateFromURL(ctx, s, map[string]string{"pincode": "12AB56"})

		assert.Equal(t, "", s.SelectedPincode)
		assert.Nil(t, s.SelectedRecord)
		assert.True(t, s.URLInitialized)
		assert.Empty(t, lookup.calls)
		_, hasPincode := s.Query.Get("pincode")
		assert.False(t, hasPincode)
	})

	t.Run("unknown pincode is ignored", func(t *testing.T) {
		c, lookup := newTestController(t, DefaultOptions())
		s := freshState(c)

		c.HydrateFromURL(ctx, s, map[string]string{"view": "insights", "pincode": "999999"})

		assert.Equal(t, []string{"999999"}, lookup.calls)
		assert.Equal(t, store.ViewInsights, s.CurrentView)
		assert.Equal(t, "", s.SelectedPincode)
		assert.Equal(t, "", s.SearchQuery)
		assert.Equal(t, store.QueryParams{"view": "insights"}, s.Query)
	})

	t.Run("invalid view keeps current", func(t *testing.T) {
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)

		c.HydrateFromURL(ctx, s, map[string]string{"view": "admin"})

		assert.Equal(t, store.ViewOverview, s.CurrentView)
		assert.Equal(t, store.QueryParams{"view": "overview"}, s.Query)
	})

	t.Run("no params still marks initialized", func(t *testing.T) {
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)

		assert.True(t, c.HydrateFromURL(ctx, s, nil))
		assert.True(t, s.URLInitialized)
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		c, lookup := newTestController(t, DefaultOptions())
		s := freshState(c)
		c.HydrateFromURL(ctx, s, map[string]string{})
		require.NoError(t, c.OnViewButtonClicked(s, store.ViewInsights))

		before := *s
		beforeQuery := store.QueryParams{}
		for k, v := range s.Query {
			beforeQuery[k] = v
		}

		ran := c.HydrateFromURL(ctx, s, map[string]string{"view": "action", "pincode": "560001"})

		assert.False(t, ran)
		assert.Empty(t, lookup.calls)
		assert.Equal(t, before.CurrentView, s.CurrentView)
		assert.Equal(t, before.SelectedPincode, s.SelectedPincode)
		assert.Equal(t, before.SearchQuery, s.SearchQuery)
		assert.Nil(t, s.SelectedRecord)
		assert.Equal(t, beforeQuery, s.Query)
	})
}

func TestOnViewButtonClicked(t *testing.T) {
	ctx := context.Background()

	t.Run("writes view and drops pincode without selection", func(t *testing.T) {
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)
		s.Query.Set("pincode", "stale")

		require.NoError(t, c.OnViewButtonClicked(s, store.ViewAction))

		assert.Equal(t, store.ViewAction, s.CurrentView)
		assert.Equal(t, store.QueryParams{"view": "action"}, s.Query)
	})

	t.Run("keeps selected pincode in URL", func(t *testing.T) {
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)
		require.Equal(t, SearchSelected, c.OnSearchTextChanged(ctx, s, "560001"))

		require.NoError(t, c.OnViewButtonClicked(s, store.ViewAction))

		assert.Equal(t, store.QueryParams{"view": "action", "pincode": "560001"}, s.Query)
		assert.Equal(t, "pincode=560001&view=action", s.Query.Encode())
	})

	t.Run("rejects unknown view", func(t *testing.T) {
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)

		err := c.OnViewButtonClicked(s, store.View("settings"))

		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, store.ViewOverview, s.CurrentView)
		assert.Empty(t, s.Query)
	})
}

func TestOnSearchTextChanged(t *testing.T) {
	ctx := context.Background()

	t.Run("only a complete pincode triggers lookup", func(t *testing.T) {
		c, lookup := newTestController(t, DefaultOptions())
		s := freshState(c)

		assert.Equal(t, SearchInvalidInput, c.OnSearchTextChanged(ctx, s, "56000"))
		assert.Empty(t, lookup.calls)

		assert.Equal(t, SearchSelected, c.OnSearchTextChanged(ctx, s, "560001"))
		assert.Equal(t, []string{"560001"}, lookup.calls)
		assert.Equal(t, "560001", s.SelectedPincode)
		assert.Equal(t, store.Record{"name": "X"}, s.SelectedRecord)
		assert.Equal(t, "560001", s.Query["pincode"])
		assert.Equal(t, "overview", s.Query["view"])
	})

	t.Run("same text does not look up again", func(t *testing.T) {
		c, lookup := newTestController(t, DefaultOptions())
		s := freshState(c)
		c.OnSearchTextChanged(ctx, s, "560001")

		assert.Equal(t, SearchUnchanged, c.OnSearchTextChanged(ctx, s, "560001"))
		assert.Len(t, lookup.calls, 1)
	})

	t.Run("failed searches keep the last selection", func(t *testing.T) {
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)
		c.OnSearchTextChanged(ctx, s, "560001")

		assert.Equal(t, SearchInvalidInput, c.OnSearchTextChanged(ctx, s, "1100"))
		assert.Equal(t, SearchNotFound, c.OnSearchTextChanged(ctx, s, "000000"))

		assert.Equal(t, "000000", s.SearchQuery)
		assert.Equal(t, "560001", s.SelectedPincode)
		assert.Equal(t, store.Record{"name": "X"}, s.SelectedRecord)
		assertPaired(t, s)
	})

	t.Run("selection changes only for six digits with a hit", func(t *testing.T) {
		inputs := []string{
			"", "5", "56000", "5600011", "56O001", " 560001", "560001 ",
			"१२३४५६", "-56001", "+56001", "56.001", "999999", "110001", "560001",
		}
		known := map[string]bool{"560001": true, "110001": true}
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)

		for _, in := range inputs {
			prevPincode, prevRecord := s.SelectedPincode, s.SelectedRecord

			outcome := c.OnSearchTextChanged(ctx, s, in)

			if IsWellFormedPincode(in) && known[in] {
				assert.Equal(t, SearchSelected, outcome, in)
				assert.Equal(t, in, s.SelectedPincode, in)
			} else {
				assert.NotEqual(t, SearchSelected, outcome, in)
				assert.Equal(t, prevPincode, s.SelectedPincode, in)
				assert.Equal(t, prevRecord, s.SelectedRecord, in)
			}
			assertPaired(t, s)
		}
	})
}

func TestOnClearClicked(t *testing.T) {
	ctx := context.Background()

	t.Run("resets exactly three fields", func(t *testing.T) {
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)
		s.DataLoaded = true
		c.HydrateFromURL(ctx, s, map[string]string{"pincode": "560001"})
		require.True(t, ShowClear(s))

		assert.True(t, c.OnClearClicked(s))

		assert.Equal(t, "", s.SearchQuery)
		assert.Equal(t, "", s.SelectedPincode)
		assert.Nil(t, s.SelectedRecord)
		assert.Equal(t, store.ViewAnalysis, s.CurrentView)
		assert.True(t, s.DataLoaded)
		assert.True(t, s.URLInitialized)
		assert.Equal(t, store.QueryParams{"view": "analysis"}, s.Query)
		assert.False(t, ShowClear(s), "clear button is hidden after clearing")
	})

	t.Run("no-op without selection", func(t *testing.T) {
		c, _ := newTestController(t, DefaultOptions())
		s := freshState(c)
		s.SearchQuery = "5600"

		assert.False(t, c.OnClearClicked(s))
		assert.Equal(t, "5600", s.SearchQuery)
	})
}

func TestPairingInvariantAcrossOperations(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, DefaultOptions())
	s := freshState(c)

	steps := []func(){
		func() { c.HydrateFromURL(ctx, s, map[string]string{"pincode": "560001", "view": "action"}) },
		func() { c.OnSearchTextChanged(ctx, s, "11000") },
		func() { c.OnSearchTextChanged(ctx, s, "110001") },
		func() { _ = c.OnViewButtonClicked(s, store.ViewInsights) },
		func() { c.OnSearchTextChanged(ctx, s, "123456") },
		func() { c.OnClearClicked(s) },
		func() { c.OnClearClicked(s) },
		func() { _ = c.OnViewButtonClicked(s, store.ViewOverview) },
		func() { c.InitializeDefaults(s) },
	}
	for _, step := range steps {
		step()
		assertPaired(t, s)
		assert.True(t, s.CurrentView.Valid())
	}
}

func TestComputeDataHealth(t *testing.T) {
	calls := 0
	healthy := true
	c := NewController(
		func(context.Context) error { return nil },
		func(context.Context, string) (store.Record, bool) { return nil, false },
		func(context.Context) map[string]bool {
			calls++
			return map[string]bool{"pincode_metrics": true, "policy_recommendations": healthy}
		},
		DefaultOptions(),
		logger.NewNopLogger(),
	)

	h := c.ComputeDataHealth(context.Background())
	assert.True(t, h.Healthy)
	assert.Equal(t, LabelHealthy, h.Label)

	healthy = false
	h = c.ComputeDataHealth(context.Background())
	assert.False(t, h.Healthy)
	assert.Equal(t, LabelUnhealthy, h.Label)
	assert.Equal(t, []string{"policy_recommendations"}, h.Failing)
	assert.Equal(t, 2, calls, "health is never cached")
}
