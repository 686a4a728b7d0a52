package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storeapi/internal/apperror"
	"storeapi/internal/models"
	"storeapi/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreateStore(companyID uuid.UUID) services.CreateStoreCommand {
	return services.CreateStoreCommand{
		Name:      "Downtown",
		Address:   "Main St 1",
		City:      "Lisbon",
		Country:   "Portugal",
		CompanyID: companyID,
	}
}

func TestCreateStore_Success(t *testing.T) {
	uow := newMockUnitOfWork()
	publisher := new(MockPublisher)
	service := services.NewStoreService(uow.factory(), nil, publisher)
	companyID := uuid.New()

	uow.stores.On("GetByName", mock.Anything, "Downtown").Return(nil, nil)
	uow.companies.On("GetByID", mock.Anything, companyID).Return(&models.Company{ID: companyID, Name: "Acme"}, nil)
	uow.stores.On("Add", mock.Anything, mock.MatchedBy(func(s *models.Store) bool {
		return s.Name == "Downtown" && s.CompanyID == companyID
	})).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	publisher.On("Publish", mock.Anything, services.EventStoreCreated, mock.MatchedBy(func(e services.Event) bool {
		return e.CompanyID != nil && *e.CompanyID == companyID
	})).Return(nil).Once()

	store, err := service.CreateStore(context.Background(), validCreateStore(companyID))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, store.ID)
	assert.Equal(t, "Downtown", store.Name)
	assert.Equal(t, "Main St 1", store.Address)
	assert.Equal(t, "Lisbon", store.City)
	assert.Equal(t, "Portugal", store.Country)
	assert.Equal(t, companyID, store.CompanyID)
	uow.AssertExpectations(t)
	uow.stores.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateStore_DuplicateNameCheckedBeforeCompany(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)

	uow.stores.On("GetByName", mock.Anything, "Downtown").Return(&models.Store{ID: uuid.New(), Name: "Downtown"}, nil)

	_, err := service.CreateStore(context.Background(), validCreateStore(uuid.New()))

	require.True(t, apperror.IsConflict(err))
	assert.Equal(t, "Store with the same name already exists.", err.Error())
	uow.companies.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreateStore_CompanyMissing(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)
	companyID := uuid.New()

	uow.stores.On("GetByName", mock.Anything, "Downtown").Return(nil, nil)
	uow.companies.On("GetByID", mock.Anything, companyID).Return(nil, nil)

	_, err := service.CreateStore(context.Background(), validCreateStore(companyID))

	require.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Company not found.", err.Error())
	uow.stores.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateStore_Validation(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)

	cmd := services.CreateStoreCommand{
		Name:    "",
		Address: strings.Repeat("a", 201),
		City:    " ",
		Country: strings.Repeat("b", 101),
	}
	_, err := service.CreateStore(context.Background(), cmd)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.ElementsMatch(t, []apperror.FieldError{
		{Field: "Name", Message: "Name is required."},
		{Field: "Address", Message: "Address must not exceed 200 characters."},
		{Field: "City", Message: "City is required."},
		{Field: "Country", Message: "Country must not exceed 100 characters."},
		{Field: "CompanyId", Message: "CompanyId is required."},
	}, appErr.Fields)
	uow.stores.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
}

func TestUpdateStore_MovesToAnotherCompany(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)
	storeID, oldCompany, newCompany := uuid.New(), uuid.New(), uuid.New()

	uow.stores.On("GetByID", mock.Anything, storeID).Return(&models.Store{
		ID: storeID, Name: "Downtown", Address: "Old", City: "Old", Country: "Old", CompanyID: oldCompany,
	}, nil)
	uow.companies.On("GetByID", mock.Anything, newCompany).Return(&models.Company{ID: newCompany, Name: "Globex"}, nil)
	uow.stores.On("Update", mock.Anything, mock.MatchedBy(func(s *models.Store) bool {
		return s.CompanyID == newCompany && s.Name == "Uptown"
	})).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	store, err := service.UpdateStore(context.Background(), services.UpdateStoreCommand{
		ID: storeID, Name: "Uptown", Address: "Main St 2", City: "Porto", Country: "Portugal", CompanyID: newCompany,
	})

	require.NoError(t, err)
	assert.Equal(t, storeID, store.ID)
	assert.Equal(t, "Uptown", store.Name)
	assert.Equal(t, "Porto", store.City)
	assert.Equal(t, newCompany, store.CompanyID)
	uow.stores.AssertExpectations(t)
	uow.stores.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
}

func TestUpdateStore_StoreMissing(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)
	storeID := uuid.New()

	uow.stores.On("GetByID", mock.Anything, storeID).Return(nil, nil)

	_, err := service.UpdateStore(context.Background(), services.UpdateStoreCommand{
		ID: storeID, Name: "Uptown", Address: "a", City: "b", Country: "c", CompanyID: uuid.New(),
	})

	require.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Store not found.", err.Error())
	uow.companies.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateStore_CompanyMissing(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)
	storeID, companyID := uuid.New(), uuid.New()

	uow.stores.On("GetByID", mock.Anything, storeID).Return(&models.Store{ID: storeID, Name: "Downtown"}, nil)
	uow.companies.On("GetByID", mock.Anything, companyID).Return(nil, nil)

	_, err := service.UpdateStore(context.Background(), services.UpdateStoreCommand{
		ID: storeID, Name: "Uptown", Address: "a", City: "b", Country: "c", CompanyID: companyID,
	})

	require.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "Company not found.", err.Error())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDeleteStore(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)
	storeID := uuid.New()
	existing := &models.Store{ID: storeID, Name: "Downtown"}

	uow.stores.On("GetByID", mock.Anything, storeID).Return(existing, nil)
	uow.stores.On("Delete", mock.Anything, existing).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	require.NoError(t, service.DeleteStore(context.Background(), services.DeleteStoreCommand{ID: storeID}))
	uow.AssertExpectations(t)

	missing := uuid.New()
	uow.stores.On("GetByID", mock.Anything, missing).Return(nil, nil)
	err := service.DeleteStore(context.Background(), services.DeleteStoreCommand{ID: missing})
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetStore_IncludesCompany(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)
	storeID, companyID := uuid.New(), uuid.New()

	uow.stores.On("GetByID", mock.Anything, storeID).Return(&models.Store{
		ID: storeID, Name: "Downtown", CompanyID: companyID,
		Company: &models.Company{ID: companyID, Name: "Acme"},
	}, nil)

	store, err := service.GetStore(context.Background(), services.GetStoreQuery{ID: storeID})

	require.NoError(t, err)
	require.NotNil(t, store.Company)
	assert.Equal(t, "Acme", store.Company.Name)
	assert.Equal(t, companyID, store.Company.ID)
}

func TestGetStore_NilID(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)

	_, err := service.GetStore(context.Background(), services.GetStoreQuery{})

	assert.True(t, apperror.IsValidation(err))
	uow.stores.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetStores_SortedByName(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)

	uow.stores.On("GetAll", mock.Anything).Return([]models.Store{
		{ID: uuid.New(), Name: "Uptown"},
		{ID: uuid.New(), Name: "Downtown"},
		{ID: uuid.New(), Name: "Airport"},
	}, nil)

	stores, err := service.GetStores(context.Background())

	require.NoError(t, err)
	require.Len(t, stores, 3)
	assert.Equal(t, "Airport", stores[0].Name)
	assert.Equal(t, "Downtown", stores[1].Name)
	assert.Equal(t, "Uptown", stores[2].Name)
}

func TestGetStores_PropagatesRepositoryError(t *testing.T) {
	uow := newMockUnitOfWork()
	service := services.NewStoreService(uow.factory(), nil, nil)

	uow.stores.On("GetAll", mock.Anything).Return(nil, apperror.Persistence("failed to get all stores", errors.New("boom")))

	_, err := service.GetStores(context.Background())

	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
}
