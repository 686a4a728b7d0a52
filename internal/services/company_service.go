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

// CompanyService handles business logic related to companies.
type CompanyService struct {
	newUnitOfWork repositories.UnitOfWorkFactory
	validator     *validation.Validator
	events        EventPublisher
}

// NewCompanyService creates a new CompanyService. events may be nil.
func NewCompanyService(newUnitOfWork repositories.UnitOfWorkFactory, validator *validation.Validator, events EventPublisher) *CompanyService {
	if validator == nil {
		validator = validation.New()
	}
	return &CompanyService{
		newUnitOfWork: newUnitOfWork,
		validator:     validator,
		events:        events,
	}
}

// CreateCompany creates a company with a unique name.
//
// The name check and the insert are not serialised: two concurrent creates
// can both pass the check, and the unique index on companies.name rejects
// the second at commit.
func (s *CompanyService) CreateCompany(ctx context.Context, cmd CreateCompanyCommand) (*dto.CompanyDto, error) {
	if err := s.validator.Struct(cmd); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	existing, err := uow.Companies().GetByName(ctx, cmd.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict(MsgCompanyNameTaken)
	}

	company := &models.Company{ID: uuid.New(), Name: cmd.Name}
	if err := uow.Companies().Add(ctx, company); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).WithField("company_id", company.ID).Info("Company created")
	publishEvent(ctx, s.events, Event{Type: EventCompanyCreated, ID: company.ID, Name: company.Name})

	result := dto.ToCompanyDto(company)
	return &result, nil
}

// UpdateCompany renames a company. Keeping its current name is allowed.
func (s *CompanyService) UpdateCompany(ctx context.Context, cmd UpdateCompanyCommand) (*dto.CompanyDto, error) {
	if err := s.validator.Struct(cmd); err != nil {
		return nil, err
	}

	uow := s.newUnitOfWork()
	company, err := uow.Companies().GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound(MsgCompanyNotFound)
	}

	sameName, err := uow.Companies().GetByName(ctx, cmd.Name)
	if err != nil {
		return nil, err
	}
	if sameName != nil && sameName.ID != cmd.ID {
		return nil, apperror.Conflict(MsgCompanyNameTakenByID)
	}

	company.Name = cmd.Name
	if err := uow.Companies().Update(ctx, company); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).WithField("company_id", company.ID).Info("Company updated")
	publishEvent(ctx, s.events, Event{Type: EventCompanyUpdated, ID: company.ID, Name: company.Name})

	result := dto.ToCompanyDto(company)
	return &result, nil
}

// DeleteCompany removes a company. Dependent stores are not checked here;
// the database cascades the delete to them.
func (s *CompanyService) DeleteCompany(ctx context.Context, cmd DeleteCompanyCommand) error {
	if err := s.validator.Struct(cmd); err != nil {
		return err
	}

	uow := s.newUnitOfWork()
	company, err := uow.Companies().GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if company == nil {
		return apperror.NotFound(MsgCompanyNotFound)
	}

	if err := uow.Companies().Delete(ctx, company); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	logging.FromContext(ctx).WithField("company_id", company.ID).Info("Company deleted")
	publishEvent(ctx, s.events, Event{Type: EventCompanyDeleted, ID: company.ID, Name: company.Name})
	return nil
}

// GetCompany retrieves a single company by its ID.
func (s *CompanyService) GetCompany(ctx context.Context, query GetCompanyQuery) (*dto.CompanyDto, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	company, err := s.newUnitOfWork().Companies().GetByID(ctx, query.ID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound(MsgCompanyNotFound)
	}

	result := dto.ToCompanyDto(company)
	return &result, nil
}

// GetCompanies retrieves all companies ordered by name. Companies sharing a
// name keep the order the repository returned them in.
func (s *CompanyService) GetCompanies(ctx context.Context) ([]dto.CompanyDto, error) {
	companies, err := s.newUnitOfWork().Companies().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(companies, func(a, b models.Company) int {
		return strings.Compare(a.Name, b.Name)
	})
	return dto.ToCompanyDtos(companies), nil
}
