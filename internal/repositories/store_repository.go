package repositories

import (
	"context"

	"storeapi/internal/models"

	"github.com/google/uuid"
)

// StoreRepository defines the interface for store data access. GetByID loads
// the owning company as well.
type StoreRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	GetByName(ctx context.Context, name string) (*models.Store, error)
	GetAll(ctx context.Context) ([]models.Store, error)
	Add(ctx context.Context, store *models.Store) error
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, store *models.Store) error
}
