package services

import (
	"context"
	"slices"
	"strings"

	"storeapi/internal/apperror"
	"storeapi/internal/dto"
	"storeapi/internal/logging"
	"storeapi/internal/models"
	"storeapi/internal/repositories"
	"storeapi/internal/validation"

	"github.com/google/uuid"
)

// StoreService handles business logic related to stores.
type StoreService struct {
	newUnitOfWork repositories.UnitOfWorkFactory
	validator     *validation.Validator
	events        EventPublisher
}

// NewStoreService creates a new StoreService. events may be nil.
func NewStoreService(newUnitOfWork repositories.UnitOfWorkFactory, validator *validation.Validator, events EventPublisher) *StoreService {
	if validator == nil {
		validator = validation.New()
	}
	return &StoreService{
		newUnitOfWork: newUnitOfWork,
		validator:     validator,
		events:        events,
	}
}

// CreateStore creates a store for an existing company. The name is checked
// before the company, so a duplicate name wins over a missing company.
func (s *StoreService) CreateStore(ctx context.Context, cmd CreateStoreCommand) (*dto.StoreDto, error) {
	if err := s.validator.Struct(cmd); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	existing, err := uow.Stores().GetByName(ctx, cmd.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict(MsgStoreNameTaken)
	}

	company, err := uow.Companies().GetByID(ctx, cmd.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound(MsgCompanyNotFound)
	}

	store := &models.Store{
		ID:        uuid.New(),
		Name:      cmd.Name,
		Address:   cmd.Address,
		City:      cmd.City,
		Country:   cmd.Country,
		CompanyID: company.ID,
	}
	if err := uow.Stores().Add(ctx, store); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).WithField("store_id", store.ID).Info("Store created")
	publishEvent(ctx, s.events, storeEvent(EventStoreCreated, store))

	result := dto.ToStoreDto(store)
	return &result, nil
}

// UpdateStore overwrites every mutable field of a store and may move it to
// another existing company. The new name is not checked for uniqueness here;
// the unique index on stores.name is the only guard.
func (s *StoreService) UpdateStore(ctx context.Context, cmd UpdateStoreCommand) (*dto.StoreDto, error) {
	if err := s.validator.Struct(cmd); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	store, err := uow.Stores().GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NotFound(MsgStoreNotFound)
	}

	company, err := uow.Companies().GetByID(ctx, cmd.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound(MsgCompanyNotFound)
	}

	store.Name = cmd.Name
	store.Address = cmd.Address
	store.City = cmd.City
	store.Country = cmd.Country
	store.CompanyID = company.ID
	store.Company = company

	if err := uow.Stores().Update(ctx, store); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).WithField("store_id", store.ID).Info("Store updated")
	publishEvent(ctx, s.events, storeEvent(EventStoreUpdated, store))

	result := dto.ToStoreDto(store)
	return &result, nil
}

// DeleteStore removes a store by its ID.
func (s *StoreService) DeleteStore(ctx context.Context, cmd DeleteStoreCommand) error {
	if err := s.validator.Struct(cmd); err != nil {
		return err
	}

	uow := s.newUnitOfWork()
	store, err := uow.Stores().GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if store == nil {
		return apperror.NotFound(MsgStoreNotFound)
	}

	if err := uow.Stores().Delete(ctx, store); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	logging.FromContext(ctx).WithField("store_id", store.ID).Info("Store deleted")
	publishEvent(ctx, s.events, storeEvent(EventStoreDeleted, store))
	return nil
}

// GetStore retrieves a store together with its owning company.
func (s *StoreService) GetStore(ctx context.Context, query GetStoreQuery) (*dto.DetailedStoreDto, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	store, err := s.newUnitOfWork().Stores().GetByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NotFound(MsgStoreNotFound)
	}

	result := dto.ToDetailedStoreDto(store)
	return &result, nil
}

// GetStores retrieves all stores ordered by name, stable for equal names.
func (s *StoreService) GetStores(ctx context.Context) ([]dto.StoreDto, error) {
	stores, err := s.newUnitOfWork().Stores().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(stores, func(a, b models.Store) int {
		return strings.Compare(a.Name, b.Name)
	})
	return dto.ToStoreDtos(stores), nil
}

func storeEvent(eventType string, store *models.Store) Event {
	companyID := store.CompanyID
	return Event{Type: eventType, ID: store.ID, Name: store.Name, CompanyID: &companyID}
}
