package contract

import (
	"context"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/repository/specification"
)

type PolicyRepository interface {
	CreateMany(ctx context.Context, items []*entity.PolicyRecommendation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PolicyRecommendation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PolicyRecommendation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAll(ctx context.Context) error
}
