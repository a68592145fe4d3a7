package service

import (
	"context"
	"fmt"

	"insight-center-be/internal/dto"
	"insight-center-be/internal/entity"
	"insight-center-be/pkg/navigation"
	"insight-center-be/pkg/store"
)

const (
	trustFooter    = "Source: UIDAI enrolment and update aggregates at pincode level. Figures are indicative."
	analysisPrompt = "Search a 6-digit pincode to open its case file."
)

func (s *navigationService) buildContent(ctx context.Context, state *store.SessionState, health navigation.DataHealth) (interface{}, error) {
	switch state.CurrentView {
	case store.ViewAnalysis:
		return s.buildAnalysis(ctx, state, health)
	case store.ViewAction:
		return s.buildAction(ctx, health)
	case store.ViewInsights:
		return s.buildInsights(ctx)
	default:
		return s.buildOverview(ctx)
	}
}

func (s *navigationService) buildOverview(ctx context.Context) (*dto.OverviewContent, error) {
	metrics, err := s.datasets.GetOverviewMetrics(ctx)
	if err != nil {
		return nil, err
	}
	states, err := s.datasets.GetStateSummary(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.StateSummaryResponse, len(states))
	for i, st := range states {
		rows[i] = dto.StateSummaryResponse{
			State:            st.State,
			Pincodes:         st.Pincodes,
			Districts:        st.Districts,
			Enrolments:       st.Enrolments,
			Updates:          st.Updates,
			CriticalPincodes: st.CriticalPincodes,
		}
	}

	return &dto.OverviewContent{
		Headline:      fmt.Sprintf("%d pincodes under watch", metrics.TotalPincodes),
		Metrics:       toMetricsResponse(metrics),
		States:        rows,
		DistrictCount: metrics.TotalDistricts,
		Footer:        trustFooter,
	}, nil
}

func (s *navigationService) buildAnalysis(ctx context.Context, state *store.SessionState, health navigation.DataHealth) (*dto.AnalysisContent, error) {
	content := &dto.AnalysisContent{Trust: toTrustResponse(health)}
	if !state.HasSelection() {
		content.Prompt = analysisPrompt
		return content, nil
	}

	content.Pincode = state.SelectedPincode
	content.Record = state.SelectedRecord

	policy, err := s.datasets.PolicyForPincode(ctx, state.SelectedPincode, s.cfg.PolicyTopN)
	if err != nil {
		return nil, err
	}
	if policy != nil {
		p := toPolicyResponse(policy)
		content.Policy = &p
	}
	return content, nil
}

func (s *navigationService) buildAction(ctx context.Context, health navigation.DataHealth) (*dto.ActionContent, error) {
	metrics, err := s.datasets.GetOverviewMetrics(ctx)
	if err != nil {
		return nil, err
	}
	policies, err := s.datasets.LoadPolicyRecommendations(ctx, s.cfg.PolicyTopN)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.PolicyResponse, len(policies))
	for i, p := range policies {
		rows[i] = toPolicyResponse(p)
	}

	return &dto.ActionContent{
		Metrics:  toMetricsResponse(metrics),
		Policies: rows,
		Trust:    toTrustResponse(health),
	}, nil
}

func (s *navigationService) buildInsights(ctx context.Context) (*dto.InsightsContent, error) {
	items, err := s.datasets.Insights(ctx)
	if err != nil {
		return nil, err
	}

	top, err := s.datasets.TopSearchedPincodes(ctx, s.cfg.TopSearchedLimit)
	if err != nil {
		// The audit trail is secondary to the insights themselves.
		s.logger.Warn("Navigation", "Top searched pincodes unavailable", map[string]interface{}{"error": err.Error()})
		top = nil
	}

	searched := make([]dto.PincodeSearchResponse, len(top))
	for i, t := range top {
		searched[i] = dto.PincodeSearchResponse{Pincode: t.Pincode, Searches: t.Searches}
	}

	return &dto.InsightsContent{
		Insights:    items,
		TopSearched: searched,
		Footer:      trustFooter,
	}, nil
}

func toMetricsResponse(m *entity.OverviewMetrics) dto.OverviewMetricsResponse {
	return dto.OverviewMetricsResponse{
		TotalPincodes:      m.TotalPincodes,
		TotalDistricts:     m.TotalDistricts,
		TotalStates:        m.TotalStates,
		TotalEnrolments:    m.TotalEnrolments,
		TotalUpdates:       m.TotalUpdates,
		CriticalPincodes:   m.CriticalPincodes,
		AvgUpdateIntensity: m.AvgUpdateIntensity,
	}
}

func toPolicyResponse(p *entity.PolicyRecommendation) dto.PolicyResponse {
	return dto.PolicyResponse{
		Pincode:       p.Pincode,
		State:         p.State,
		District:      p.District,
		PriorityScore: p.PriorityScore,
		Category:      p.Category,
		Action:        p.Action,
		Rationale:     p.Rationale,
		Details:       p.Details,
	}
}

func toTrustResponse(h navigation.DataHealth) dto.TrustResponse {
	return dto.TrustResponse{
		Healthy: h.Healthy,
		Sources: h.Sources,
		Footer:  trustFooter,
	}
}
