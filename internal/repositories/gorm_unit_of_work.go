package repositories

import (
	"context"

	"storeapi/internal/apperror"

	"gorm.io/gorm"
)

type pendingOp func(tx *gorm.DB) error

// GORMUnitOfWork is a GORM implementation of UnitOfWork. Reads go straight to
// the database; writes are queued and replayed inside one transaction on
// Commit. It is not safe for concurrent use.
type GORMUnitOfWork struct {
	db        *gorm.DB
	pending   []pendingOp
	companies *GORMCompanyRepository
	stores    *GORMStoreRepository
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	uow := &GORMUnitOfWork{db: db}
	uow.companies = &GORMCompanyRepository{db: db, uow: uow}
	uow.stores = &GORMStoreRepository{db: db, uow: uow}
	return uow
}

// NewGORMUnitOfWorkFactory returns a factory producing GORM units of work on db.
func NewGORMUnitOfWorkFactory(db *gorm.DB) UnitOfWorkFactory {
	return func() UnitOfWork {
		return NewGORMUnitOfWork(db)
	}
}

func (u *GORMUnitOfWork) Companies() CompanyRepository { return u.companies }

func (u *GORMUnitOfWork) Stores() StoreRepository { return u.stores }

// Pending returns the number of staged mutations.
func (u *GORMUnitOfWork) Pending() int { return len(u.pending) }

func (u *GORMUnitOfWork) register(op pendingOp) {
	u.pending = append(u.pending, op)
}

// Commit writes every staged mutation in a single transaction. On failure the
// transaction is rolled back and nothing is visible to later reads.
func (u *GORMUnitOfWork) Commit(ctx context.Context) error {
	ops := u.pending
	u.pending = nil
	if len(ops) == 0 {
		return nil
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if err := op(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperror.Persistence("failed to commit unit of work", err)
	}
	return nil
}
