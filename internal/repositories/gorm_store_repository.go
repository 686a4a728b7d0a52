package repositories

import (
	"context"
	"errors"
	"fmt"

	"storeapi/internal/apperror"
	"storeapi/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db  *gorm.DB
	uow *GORMUnitOfWork
}

// GetByID retrieves a store and its owning company.
func (r *GORMStoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Preload("Company").First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Persistence(fmt.Sprintf("failed to get store by ID %s", id), err)
	}
	return &store, nil
}

// GetByName retrieves the store with exactly this name.
func (r *GORMStoreRepository) GetByName(ctx context.Context, name string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Persistence("failed to get store by name", err)
	}
	return &store, nil
}

// GetAll retrieves all stores in storage order.
func (r *GORMStoreRepository) GetAll(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).Find(&stores).Error; err != nil {
		return nil, apperror.Persistence("failed to get all stores", err)
	}
	return stores, nil
}

// Add stages the insert of store, assigning an ID when it has none.
func (r *GORMStoreRepository) Add(_ context.Context, store *models.Store) error {
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	r.uow.register(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(store).Error; err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
		return nil
	})
	return nil
}

// Update stages an overwrite of all mutable store fields, zero values included.
func (r *GORMStoreRepository) Update(_ context.Context, store *models.Store) error {
	r.uow.register(func(tx *gorm.DB) error {
		res := tx.Model(&models.Store{}).Where("id = ?", store.ID).Updates(map[string]interface{}{
			"name":       store.Name,
			"address":    store.Address,
			"city":       store.City,
			"country":    store.Country,
			"company_id": store.CompanyID,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update store: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("store with ID %s not found for update", store.ID)
		}
		return nil
	})
	return nil
}

// Delete stages the removal of store.
func (r *GORMStoreRepository) Delete(_ context.Context, store *models.Store) error {
	r.uow.register(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Store{}, "id = ?", store.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete store: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("store with ID %s not found for deletion", store.ID)
		}
		return nil
	})
	return nil
}
