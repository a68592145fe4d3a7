package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"insight-center-be/internal/dto"
	"insight-center-be/internal/entity"
	"insight-center-be/internal/mapper"
	"insight-center-be/internal/pkg/logger"
	"insight-center-be/internal/repository/specification"
	"insight-center-be/internal/repository/unitofwork"
	"insight-center-be/pkg/insights"
	"insight-center-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// Data source names reported by ValidateDataSources.
const (
	SourcePincodeMetrics = "pincode_metrics"
	SourcePolicies       = "policy_recommendations"
	SourceInsights       = "insights"
)

const (
	cacheKeyPreloaded = "preloaded"
	cacheKeyMetrics   = "overview_metrics"
	cacheKeyStates    = "state_summary"
	cacheKeyInsights  = "insights"
	cacheKeyPincode   = "pincode:"
	cacheKeyPolicies  = "policies:"
)

type IDatasetService interface {
	PreloadAll(ctx context.Context) error
	GetOverviewMetrics(ctx context.Context) (*entity.OverviewMetrics, error)
	GetStateSummary(ctx context.Context) ([]*entity.StateSummary, error)
	LookupPincode(ctx context.Context, pincode string) (store.Record, bool)
	LoadPolicyRecommendations(ctx context.Context, topN int) ([]*entity.PolicyRecommendation, error)
	PolicyForPincode(ctx context.Context, pincode string, topN int) (*entity.PolicyRecommendation, error)
	ValidateDataSources(ctx context.Context) map[string]bool
	Insights(ctx context.Context) ([]dto.InsightResponse, error)
	TopSearchedPincodes(ctx context.Context, limit int) ([]*entity.PincodeSearchCount, error)
	Invalidate()
}

type datasetService struct {
	uowFactory    unitofwork.RepositoryFactory
	cache         *cache.Cache
	pincodeMapper *mapper.PincodeMapper
	policyTopN    int
	logger        logger.ILogger

	preloadMu sync.Mutex
}

func NewDatasetService(
	uowFactory unitofwork.RepositoryFactory,
	ttl, cleanupInterval time.Duration,
	policyTopN int,
	log logger.ILogger,
) IDatasetService {
	return &datasetService{
		uowFactory:    uowFactory,
		cache:         cache.New(ttl, cleanupInterval),
		pincodeMapper: mapper.NewPincodeMapper(),
		policyTopN:    policyTopN,
		logger:        log,
	}
}

// PreloadAll warms the cache with every dataset the views read. Concurrent
// callers wait for the first one; a warm cache returns immediately.
func (s *datasetService) PreloadAll(ctx context.Context) error {
	if _, ok := s.cache.Get(cacheKeyPreloaded); ok {
		return nil
	}

	s.preloadMu.Lock()
	defer s.preloadMu.Unlock()
	if _, ok := s.cache.Get(cacheKeyPreloaded); ok {
		return nil
	}

	start := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.PincodeRepository().FindAll(ctx)
	if err != nil {
		return fmt.Errorf("load pincode metrics: %w", err)
	}
	for _, rec := range records {
		s.cache.Set(cacheKeyPincode+rec.Pincode, rec, cache.DefaultExpiration)
	}

	if _, err := s.GetOverviewMetrics(ctx); err != nil {
		return err
	}
	if _, err := s.GetStateSummary(ctx); err != nil {
		return err
	}
	if _, err := s.LoadPolicyRecommendations(ctx, s.policyTopN); err != nil {
		return err
	}
	if _, err := s.Insights(ctx); err != nil {
		return err
	}

	s.cache.Set(cacheKeyPreloaded, true, cache.DefaultExpiration)
	s.logger.Info("Dataset", "Datasets preloaded", map[string]interface{}{
		"pincodes":    len(records),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (s *datasetService) GetOverviewMetrics(ctx context.Context) (*entity.OverviewMetrics, error) {
	if x, ok := s.cache.Get(cacheKeyMetrics); ok {
		return x.(*entity.OverviewMetrics), nil
	}

	metrics, err := s.uowFactory.NewUnitOfWork(ctx).PincodeRepository().Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load overview metrics: %w", err)
	}
	s.cache.Set(cacheKeyMetrics, metrics, cache.DefaultExpiration)
	return metrics, nil
}

func (s *datasetService) GetStateSummary(ctx context.Context) ([]*entity.StateSummary, error) {
	if x, ok := s.cache.Get(cacheKeyStates); ok {
		return x.([]*entity.StateSummary), nil
	}

	rows, err := s.uowFactory.NewUnitOfWork(ctx).PincodeRepository().SummarizeByState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state summary: %w", err)
	}
	s.cache.Set(cacheKeyStates, rows, cache.DefaultExpiration)
	return rows, nil
}

// LookupPincode never fails: a store error is logged and reported as absent,
// which leaves the caller's selection untouched.
func (s *datasetService) LookupPincode(ctx context.Context, pincode string) (store.Record, bool) {
	if x, ok := s.cache.Get(cacheKeyPincode + pincode); ok {
		return s.pincodeMapper.ToRecord(x.(*entity.PincodeRecord)), true
	}

	rec, err := s.uowFactory.NewUnitOfWork(ctx).PincodeRepository().FindOne(ctx, specification.ByPincode{Pincode: pincode})
	if err != nil {
		s.logger.Error("Dataset", "Pincode lookup failed", map[string]interface{}{
			"pincode": pincode,
			"error":   err,
		})
		return nil, false
	}
	if rec == nil {
		return nil, false
	}

	s.cache.Set(cacheKeyPincode+pincode, rec, cache.DefaultExpiration)
	return s.pincodeMapper.ToRecord(rec), true
}

func (s *datasetService) LoadPolicyRecommendations(ctx context.Context, topN int) ([]*entity.PolicyRecommendation, error) {
	key := fmt.Sprintf("%s%d", cacheKeyPolicies, topN)
	if x, ok := s.cache.Get(key); ok {
		return x.([]*entity.PolicyRecommendation), nil
	}

	specs := []specification.Specification{specification.ByPriority{}}
	if topN > 0 {
		specs = append(specs, specification.Pagination{Limit: topN})
	}

	items, err := s.uowFactory.NewUnitOfWork(ctx).PolicyRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("load policy recommendations: %w", err)
	}
	s.cache.Set(key, items, cache.DefaultExpiration)
	return items, nil
}

// PolicyForPincode returns the first recommendation for pincode among the top
// topN, or nil when it is not ranked that high.
func (s *datasetService) PolicyForPincode(ctx context.Context, pincode string, topN int) (*entity.PolicyRecommendation, error) {
	items, err := s.LoadPolicyRecommendations(ctx, topN)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Pincode == pincode {
			return item, nil
		}
	}
	return nil, nil
}

// ValidateDataSources reports whether each source table is reachable and
// non-empty. It always hits the store.
func (s *datasetService) ValidateDataSources(ctx context.Context) map[string]bool {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	counters := map[string]func(context.Context, ...specification.Specification) (int64, error){
		SourcePincodeMetrics: uow.PincodeRepository().Count,
		SourcePolicies:       uow.PolicyRepository().Count,
		SourceInsights:       uow.InsightRepository().Count,
	}

	status := make(map[string]bool, len(counters))
	for name, count := range counters {
		n, err := count(ctx)
		if err != nil {
			s.logger.Warn("Dataset", "Data source check failed", map[string]interface{}{
				"source": name,
				"error":  err.Error(),
			})
		}
		status[name] = err == nil && n > 0
	}
	return status
}

func (s *datasetService) Insights(ctx context.Context) ([]dto.InsightResponse, error) {
	if x, ok := s.cache.Get(cacheKeyInsights); ok {
		return x.([]dto.InsightResponse), nil
	}

	rows, err := s.uowFactory.NewUnitOfWork(ctx).InsightRepository().FindAll(ctx,
		specification.OrderBy{Field: "sort_order"},
		specification.OrderBy{Field: "title"},
	)
	if err != nil {
		return nil, fmt.Errorf("load insights: %w", err)
	}

	out := make([]dto.InsightResponse, 0, len(rows))
	for _, row := range rows {
		html, err := insights.RenderHTML(row.Body)
		if err != nil {
			return nil, fmt.Errorf("render insight %q: %w", row.Title, err)
		}
		out = append(out, dto.InsightResponse{
			Title:    row.Title,
			Category: row.Category,
			HTML:     html,
		})
	}

	s.cache.Set(cacheKeyInsights, out, cache.DefaultExpiration)
	return out, nil
}

// TopSearchedPincodes is read live; the audit trail changes with every search.
func (s *datasetService) TopSearchedPincodes(ctx context.Context, limit int) ([]*entity.PincodeSearchCount, error) {
	rows, err := s.uowFactory.NewUnitOfWork(ctx).SearchEventRepository().TopPincodes(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load top searched pincodes: %w", err)
	}
	return rows, nil
}

func (s *datasetService) Invalidate() {
	s.cache.Flush()
}
