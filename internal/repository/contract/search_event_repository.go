package contract

import (
	"context"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/repository/specification"
)

type SearchEventRepository interface {
	Create(ctx context.Context, event *entity.SearchEvent) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	TopPincodes(ctx context.Context, limit int) ([]*entity.PincodeSearchCount, error)
	Recent(ctx context.Context, limit int) ([]*entity.SearchEvent, error)
}
