package unitofwork

import (
	"context"

	"insight-center-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	// Do runs fn inside a transaction, committing when fn returns nil.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	PincodeRepository() contract.PincodeRepository
	PolicyRepository() contract.PolicyRepository
	InsightRepository() contract.InsightRepository
	SearchEventRepository() contract.SearchEventRepository
}
