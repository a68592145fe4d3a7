package implementation

import (
	"context"
	"errors"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/mapper"
	"insight-center-be/internal/model"
	"insight-center-be/internal/repository/contract"
	"insight-center-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 500

type PincodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PincodeMapper
}

func NewPincodeRepository(db *gorm.DB) contract.PincodeRepository {
	return &PincodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewPincodeMapper(),
	}
}

func (r *PincodeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PincodeRepositoryImpl) UpsertMany(ctx context.Context, records []*entity.PincodeRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := r.mapper.ToModels(records)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pincode"}},
			UpdateAll: true,
		}).
		CreateInBatches(models, upsertBatchSize).Error
}

func (r *PincodeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PincodeRecord, error) {
	var m model.PincodeMetric
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PincodeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PincodeRecord, error) {
	var models []*model.PincodeMetric
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PincodeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PincodeMetric{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PincodeRepositoryImpl) Totals(ctx context.Context) (*entity.OverviewMetrics, error) {
	var row struct {
		TotalPincodes      int64
		TotalDistricts     int64
		TotalStates        int64
		TotalEnrolments    int64
		TotalUpdates       int64
		CriticalPincodes   int64
		AvgUpdateIntensity float64
	}

	// District names repeat across states, so districts are counted per state.
	err := r.db.WithContext(ctx).Model(&model.PincodeMetric{}).
		Select(`COUNT(*) AS total_pincodes,
			COUNT(DISTINCT state || '/' || district) AS total_districts,
			COUNT(DISTINCT state) AS total_states,
			COALESCE(SUM(total_enrolments), 0) AS total_enrolments,
			COALESCE(SUM(demographic_updates + biometric_updates), 0) AS total_updates,
			COALESCE(SUM(CASE WHEN risk_category = ? THEN 1 ELSE 0 END), 0) AS critical_pincodes,
			COALESCE(AVG(update_intensity), 0) AS avg_update_intensity`, string(entity.RiskCritical)).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &entity.OverviewMetrics{
		TotalPincodes:      row.TotalPincodes,
		TotalDistricts:     row.TotalDistricts,
		TotalStates:        row.TotalStates,
		TotalEnrolments:    row.TotalEnrolments,
		TotalUpdates:       row.TotalUpdates,
		CriticalPincodes:   row.CriticalPincodes,
		AvgUpdateIntensity: row.AvgUpdateIntensity,
	}, nil
}

func (r *PincodeRepositoryImpl) SummarizeByState(ctx context.Context) ([]*entity.StateSummary, error) {
	var rows []*entity.StateSummary
	err := r.db.WithContext(ctx).Model(&model.PincodeMetric{}).
		Select(`state,
			COUNT(*) AS pincodes,
			COUNT(DISTINCT district) AS districts,
			COALESCE(SUM(total_enrolments), 0) AS enrolments,
			COALESCE(SUM(demographic_updates + biometric_updates), 0) AS updates,
			COALESCE(SUM(CASE WHEN risk_category = ? THEN 1 ELSE 0 END), 0) AS critical_pincodes`, string(entity.RiskCritical)).
		Group("state").
		Order("enrolments DESC").
		Order("state ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
