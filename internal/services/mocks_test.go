package services_test

import (
	"context"

	"storeapi/internal/models"
	"storeapi/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCompanyRepository is a mock of repositories.CompanyRepository.
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetByName(ctx context.Context, name string) (*models.Company, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockCompanyRepository) GetAll(ctx context.Context) ([]models.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Company), args.Error(1)
}

func (m *MockCompanyRepository) Add(ctx context.Context, company *models.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *models.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, company *models.Company) error {
	return m.Called(ctx, company).Error(0)
}

// MockStoreRepository is a mock of repositories.StoreRepository.
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByName(ctx context.Context, name string) (*models.Store, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) GetAll(ctx context.Context) ([]models.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *MockStoreRepository) Add(ctx context.Context, store *models.Store) error {
	return m.Called(ctx, store).Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, store *models.Store) error {
	return m.Called(ctx, store).Error(0)
}

func (m *MockStoreRepository) Delete(ctx context.Context, store *models.Store) error {
	return m.Called(ctx, store).Error(0)
}

// MockUnitOfWork hands out the mock repositories and records commits.
type MockUnitOfWork struct {
	mock.Mock
	companies *MockCompanyRepository
	stores    *MockStoreRepository
}

func newMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		companies: new(MockCompanyRepository),
		stores:    new(MockStoreRepository),
	}
}

func (m *MockUnitOfWork) Companies() repositories.CompanyRepository { return m.companies }

func (m *MockUnitOfWork) Stores() repositories.StoreRepository { return m.stores }

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUnitOfWork) factory() repositories.UnitOfWorkFactory {
	return func() repositories.UnitOfWork { return m }
}

// MockPublisher is a mock of services.EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}
