package implementation

import (
	"context"
	"errors"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/mapper"
	"insight-center-be/internal/model"
	"insight-center-be/internal/repository/contract"
	"insight-center-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PolicyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PolicyMapper
}

func NewPolicyRepository(db *gorm.DB) contract.PolicyRepository {
	return &PolicyRepositoryImpl{
		db:     db,
		mapper: mapper.NewPolicyMapper(),
	}
}

func (r *PolicyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PolicyRepositoryImpl) CreateMany(ctx context.Context, items []*entity.PolicyRecommendation) error {
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		if item.Id == uuid.Nil {
			item.Id = uuid.New()
		}
	}
	return r.db.WithContext(ctx).CreateInBatches(r.mapper.ToModels(items), upsertBatchSize).Error
}

func (r *PolicyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PolicyRecommendation, error) {
	var m model.PolicyRecommendation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PolicyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PolicyRecommendation, error) {
	var models []*model.PolicyRecommendation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PolicyRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PolicyRecommendation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteAll empties the table ahead of a full reload.
func (r *PolicyRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.PolicyRecommendation{}).Error
}
