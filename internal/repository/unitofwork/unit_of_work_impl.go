package unitofwork

import (
	"context"
	"errors"
	"fmt"

	"insight-center-be/internal/repository/contract"
	"insight-center-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTxActive   = errors.New("transaction already active")
	ErrTxInactive = errors.New("no active transaction")
)

// UnitOfWorkImpl hands out repositories bound either to the plain
// connection or, between Begin and Commit/Rollback, to one transaction.
type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

func (u *UnitOfWorkImpl) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTxActive
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin: %w", tx.Error)
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	return u.finish((*gorm.DB).Commit)
}

func (u *UnitOfWorkImpl) Rollback() error {
	return u.finish((*gorm.DB).Rollback)
}

func (u *UnitOfWorkImpl) finish(end func(*gorm.DB) *gorm.DB) error {
	if u.tx == nil {
		return ErrTxInactive
	}
	tx := u.tx
	u.tx = nil
	return end(tx).Error
}

func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(uow UnitOfWork) error) error {
	if err := u.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback()
			panic(p)
		}
	}()

	if err := fn(u); err != nil {
		if rbErr := u.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	return u.Commit()
}

func (u *UnitOfWorkImpl) PincodeRepository() contract.PincodeRepository {
	return implementation.NewPincodeRepository(u.conn())
}

func (u *UnitOfWorkImpl) PolicyRepository() contract.PolicyRepository {
	return implementation.NewPolicyRepository(u.conn())
}

func (u *UnitOfWorkImpl) InsightRepository() contract.InsightRepository {
	return implementation.NewInsightRepository(u.conn())
}

func (u *UnitOfWorkImpl) SearchEventRepository() contract.SearchEventRepository {
	return implementation.NewSearchEventRepository(u.conn())
}
