package repositories

import (
	"context"

	"storeapi/internal/models"

	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company data access.
// Lookups return (nil, nil) when nothing matches. Add, Update and Delete are
// staged on the owning UnitOfWork and only reach the database on Commit.
type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetByName(ctx context.Context, name string) (*models.Company, error)
	GetAll(ctx context.Context) ([]models.Company, error)
	Add(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, company *models.Company) error
}
