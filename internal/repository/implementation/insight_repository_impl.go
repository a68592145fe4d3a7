package implementation

import (
	"context"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/mapper"
	"insight-center-be/internal/model"
	"insight-center-be/internal/repository/contract"
	"insight-center-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InsightRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InsightMapper
}

func NewInsightRepository(db *gorm.DB) contract.InsightRepository {
	return &InsightRepositoryImpl{
		db:     db,
		mapper: mapper.NewInsightMapper(),
	}
}

func (r *InsightRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InsightRepositoryImpl) CreateMany(ctx context.Context, items []*entity.Insight) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*model.Insight, len(items))
	for i, item := range items {
		if item.Id == uuid.Nil {
			item.Id = uuid.New()
		}
		models[i] = r.mapper.ToModel(item)
	}
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *InsightRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Insight, error) {
	var models []*model.Insight
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InsightRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Insight{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *InsightRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Insight{}).Error
}
