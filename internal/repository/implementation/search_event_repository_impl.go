package implementation

import (
	"context"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/mapper"
	"insight-center-be/internal/model"
	"insight-center-be/internal/repository/contract"
	"insight-center-be/internal/repository/scope"
	"insight-center-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SearchEventMapper
}

func NewSearchEventRepository(db *gorm.DB) contract.SearchEventRepository {
	return &SearchEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewSearchEventMapper(),
	}
}

func (r *SearchEventRepositoryImpl) Create(ctx context.Context, event *entity.SearchEvent) error {
	if event.Id == uuid.Nil {
		event.Id = uuid.New()
	}
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *SearchEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.SearchEvent{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SearchEventRepositoryImpl) TopPincodes(ctx context.Context, limit int) ([]*entity.PincodeSearchCount, error) {
	var rows []*entity.PincodeSearchCount
	err := r.db.WithContext(ctx).Model(&model.SearchEvent{}).
		Select("pincode, COUNT(*) AS searches").
		Where("pincode <> ''").
		Group("pincode").
		Order("searches DESC").
		Order("pincode ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SearchEventRepositoryImpl) Recent(ctx context.Context, limit int) ([]*entity.SearchEvent, error) {
	var models []*model.SearchEvent
	err := r.db.WithContext(ctx).
		Scopes(scope.OrderByCreatedDesc).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	events := make([]*entity.SearchEvent, len(models))
	for i, m := range models {
		events[i] = r.mapper.ToEntity(m)
	}
	return events, nil
}
