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

// GORMCompanyRepository is a GORM implementation of CompanyRepository.
type GORMCompanyRepository struct {
	db  *gorm.DB
	uow *GORMUnitOfWork
}

// GetByID retrieves a single company by its ID.
func (r *GORMCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Persistence(fmt.Sprintf("failed to get company by ID %s", id), err)
	}
	return &company, nil
}

// GetByName retrieves the company with exactly this name.
func (r *GORMCompanyRepository) GetByName(ctx context.Context, name string) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Persistence("failed to get company by name", err)
	}
	return &company, nil
}

// GetAll retrieves all companies in storage order.
func (r *GORMCompanyRepository) GetAll(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.WithContext(ctx).Find(&companies).Error; err != nil {
		return nil, apperror.Persistence("failed to get all companies", err)
	}
	return companies, nil
}

// Add stages the insert of company, assigning an ID when it has none.
func (r *GORMCompanyRepository) Add(_ context.Context, company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	r.uow.register(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(company).Error; err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		return nil
	})
	return nil
}

// Update stages an overwrite of the company's mutable fields.
func (r *GORMCompanyRepository) Update(_ context.Context, company *models.Company) error {
	r.uow.register(func(tx *gorm.DB) error {
		res := tx.Model(&models.Company{}).Where("id = ?", company.ID).Update("name", company.Name)
		if res.Error != nil {
			return fmt.Errorf("failed to update company: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("company with ID %s not found for update", company.ID)
		}
		return nil
	})
	return nil
}

// Delete stages the removal of company. Its stores go with it through the
// foreign key's cascade.
func (r *GORMCompanyRepository) Delete(_ context.Context, company *models.Company) error {
	r.uow.register(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Company{}, "id = ?", company.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete company: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("company with ID %s not found for deletion", company.ID)
		}
		return nil
	})
	return nil
}
