package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"insight-center-be/internal/dto"
	"insight-center-be/internal/pkg/logger"
	"insight-center-be/internal/repository/contract"
	"insight-center-be/pkg/events"
	"insight-center-be/pkg/navigation"
	"insight-center-be/pkg/store"
)

// A pass that just loaded the datasets is restarted once; the second pass
// always finds them loaded.
const maxRenderPasses = 2

const (
	MessageTypeState  = "state"
	MessageTypeHealth = "health"
)

type EventKind string

const (
	EventNavigate EventKind = "navigate"
	EventSearch   EventKind = "search"
	EventClear    EventKind = "clear"
)

// RenderEvent is the single sidebar interaction applied during a render.
type RenderEvent struct {
	Kind  EventKind
	View  string
	Query string
}

type RenderRequest struct {
	// URLParams are the inbound query parameters. Only the first render of a
	// session reads them.
	URLParams map[string]string
	Event     *RenderEvent
}

// ISessionNotifier pushes messages to the live connections of a session.
type ISessionNotifier interface {
	SendToSession(sessionID, msgType string, data interface{})
	Broadcast(msgType string, data interface{})
}

type INavigationService interface {
	Render(ctx context.Context, sessionID string, req RenderRequest) (*dto.DashboardResponse, error)
	Health(ctx context.Context) navigation.DataHealth
	BroadcastHealth(ctx context.Context, period time.Duration)
}

type NavigationConfig struct {
	PolicyTopN       int
	TopSearchedLimit int
	Options          navigation.Options
}

type navigationService struct {
	controller *navigation.Controller
	datasets   IDatasetService
	sessions   contract.SessionRepository
	audit      IPublisherService
	events     INavigationEventPublisher
	notifier   ISessionNotifier
	cfg        NavigationConfig
	locks      *sessionLocks
	logger     logger.ILogger
}

func NewNavigationService(
	datasets IDatasetService,
	sessions contract.SessionRepository,
	audit IPublisherService,
	eventPublisher INavigationEventPublisher,
	notifier ISessionNotifier,
	cfg NavigationConfig,
	log logger.ILogger,
) INavigationService {
	controller := navigation.NewController(
		datasets.PreloadAll,
		datasets.LookupPincode,
		datasets.ValidateDataSources,
		cfg.Options,
		log,
	)

	return &navigationService{
		controller: controller,
		datasets:   datasets,
		sessions:   sessions,
		audit:      audit,
		events:     eventPublisher,
		notifier:   notifier,
		cfg:        cfg,
		locks:      newSessionLocks(),
		logger:     log,
	}
}

// Render runs one full pass for a session: defaults, data loading, URL
// hydration, at most one sidebar event, then the current view. Renders of
// the same session are serialized.
func (s *navigationService) Render(ctx context.Context, sessionID string, req RenderRequest) (*dto.DashboardResponse, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for pass := 1; ; pass++ {
		s.controller.InitializeDefaults(state)
		rerun, err := s.controller.EnsureDataLoaded(ctx, state)
		if err != nil {
			return nil, err
		}
		if !rerun || pass == maxRenderPasses {
			break
		}
	}

	before := *state
	hydrated := s.controller.HydrateFromURL(ctx, state, req.URLParams)

	var (
		outcome navigation.SearchOutcome
		cleared bool
	)
	if req.Event != nil {
		switch req.Event.Kind {
		case EventNavigate:
			if err := s.controller.OnViewButtonClicked(state, store.View(req.Event.View)); err != nil {
				return nil, err
			}
		case EventSearch:
			outcome = s.controller.OnSearchTextChanged(ctx, state, req.Event.Query)
		case EventClear:
			cleared = s.controller.OnClearClicked(state)
		default:
			return nil, fmt.Errorf("%w: unknown event %q", navigation.ErrInvalidInput, req.Event.Kind)
		}
	}

	health := s.controller.ComputeDataHealth(ctx)
	content, err := s.buildContent(ctx, state, health)
	if err != nil {
		return nil, err
	}

	state.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		SessionID:   state.ID,
		View:        string(state.CurrentView),
		ViewLabel:   state.CurrentView.Label(),
		Query:       state.Query,
		QueryString: state.Query.Encode(),
		Sidebar: dto.SidebarResponse{
			Views:           viewLinks(state.CurrentView),
			SearchQuery:     state.SearchQuery,
			SearchStatus:    string(outcome),
			SelectedPincode: state.SelectedPincode,
			ShowClear:       navigation.ShowClear(state),
			Health:          health,
		},
		Content: content,
	}

	if outcome != "" && outcome != navigation.SearchUnchanged {
		s.publishSearchAudit(ctx, state, req.Event.Query, outcome)
	}
	changed := s.publishTransitions(ctx, &before, state, hydrated, outcome, cleared)
	// Goes to every connection of the session, the requesting tab included.
	if changed && s.notifier != nil {
		s.notifier.SendToSession(state.ID, MessageTypeState, resp)
	}

	return resp, nil
}

func (s *navigationService) Health(ctx context.Context) navigation.DataHealth {
	return s.controller.ComputeDataHealth(ctx)
}

// BroadcastHealth pushes the data health indicator to every live connection
// each period until ctx is done.
func (s *navigationService) BroadcastHealth(ctx context.Context, period time.Duration) {
	if s.notifier == nil || period <= 0 {
		return
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.notifier.Broadcast(MessageTypeHealth, s.controller.ComputeDataHealth(ctx))
		}
	}
}

// loadState returns a private copy of the stored state, or a fresh one.
func (s *navigationService) loadState(ctx context.Context, sessionID string) (*store.SessionState, error) {
	stored, found, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return &store.SessionState{ID: sessionID}, nil
	}

	state := stored.Clone()
	state.ID = sessionID
	return state, nil
}

func (s *navigationService) publishSearchAudit(ctx context.Context, state *store.SessionState, query string, outcome navigation.SearchOutcome) {
	if s.audit == nil {
		return
	}

	msg := dto.SearchAuditMessage{
		SessionID:  state.ID,
		Query:      query,
		Outcome:    string(outcome),
		OccurredAt: time.Now(),
	}
	if navigation.IsWellFormedPincode(query) {
		msg.Pincode = query
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.audit.Publish(ctx, payload); err != nil {
		s.logger.Warn("Navigation", "Failed to publish search audit", map[string]interface{}{
			"session_id": state.ID,
			"error":      err.Error(),
		})
	}
}

// publishTransitions emits one event per state transition of this render and
// reports whether anything visible changed.
func (s *navigationService) publishTransitions(
	ctx context.Context,
	before, after *store.SessionState,
	hydrated bool,
	outcome navigation.SearchOutcome,
	cleared bool,
) bool {
	changed := false

	if hydrated {
		s.events.Publish(ctx, events.SessionHydrated(after.ID, string(after.CurrentView), after.SelectedPincode))
	}
	if before.CurrentView != after.CurrentView {
		changed = true
		s.events.Publish(ctx, events.ViewChanged(after.ID, string(before.CurrentView), string(after.CurrentView)))
	}
	if after.SelectedPincode != "" && before.SelectedPincode != after.SelectedPincode {
		changed = true
		s.events.Publish(ctx, events.PincodeSelected(after.ID, after.SelectedPincode))
	}
	if cleared {
		changed = true
		s.events.Publish(ctx, events.SelectionCleared(after.ID, before.SelectedPincode))
	}
	if outcome == navigation.SearchInvalidInput || outcome == navigation.SearchNotFound {
		s.events.Publish(ctx, events.SearchNotResolved(after.ID, after.SearchQuery, string(outcome)))
	}

	return changed
}

func viewLinks(current store.View) []dto.ViewLink {
	links := make([]dto.ViewLink, len(store.Views))
	for i, v := range store.Views {
		links[i] = dto.ViewLink{
			Key:    string(v),
			Label:  v.Label(),
			Active: v == current,
		}
	}
	return links
}
