package contract

import (
	"context"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/repository/specification"
)

type InsightRepository interface {
	CreateMany(ctx context.Context, items []*entity.Insight) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Insight, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAll(ctx context.Context) error
}
