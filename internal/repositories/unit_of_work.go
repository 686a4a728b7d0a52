package repositories

import "context"

// UnitOfWork groups the repositories of one request. Mutations registered
// through them are written atomically by Commit.
type UnitOfWork interface {
	Companies() CompanyRepository
	Stores() StoreRepository
	Commit(ctx context.Context) error
}

// UnitOfWorkFactory starts a new unit of work. Services call it once per
// operation so no state is shared between requests.
type UnitOfWorkFactory func() UnitOfWork
