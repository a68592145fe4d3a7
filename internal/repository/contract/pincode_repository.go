package contract

import (
	"context"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/repository/specification"
)

type PincodeRepository interface {
	UpsertMany(ctx context.Context, records []*entity.PincodeRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PincodeRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PincodeRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Totals(ctx context.Context) (*entity.OverviewMetrics, error)
	SummarizeByState(ctx context.Context) ([]*entity.StateSummary, error)
}
