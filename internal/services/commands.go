package services

import "github.com/google/uuid"

// CreateCompanyCommand registers a new company.
type CreateCompanyCommand struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

// UpdateCompanyCommand renames the company with ID.
type UpdateCompanyCommand struct {
	ID   uuid.UUID `json:"-" label:"Id" validate:"required"`
	Name string    `json:"name" validate:"notblank,max=100"`
}

// DeleteCompanyCommand removes a company and its stores.
type DeleteCompanyCommand struct {
	ID uuid.UUID `label:"Id" validate:"required"`
}

// GetCompanyQuery reads one company.
type GetCompanyQuery struct {
	ID uuid.UUID `label:"Id" validate:"required"`
}

// CreateStoreCommand opens a store for an existing company.
type CreateStoreCommand struct {
	Name      string    `json:"name" validate:"notblank,max=100"`
	Address   string    `json:"address" validate:"notblank,max=200"`
	City      string    `json:"city" validate:"notblank,max=100"`
	Country   string    `json:"country" validate:"notblank,max=100"`
	CompanyID uuid.UUID `json:"companyId" label:"CompanyId" validate:"required"`
}

// UpdateStoreCommand overwrites every field of the store with ID.
type UpdateStoreCommand struct {
	ID        uuid.UUID `json:"-" label:"Id" validate:"required"`
	Name      string    `json:"name" validate:"notblank,max=100"`
	Address   string    `json:"address" validate:"notblank,max=200"`
	City      string    `json:"city" validate:"notblank,max=100"`
	Country   string    `json:"country" validate:"notblank,max=100"`
	CompanyID uuid.UUID `json:"companyId" label:"CompanyId" validate:"required"`
}

// DeleteStoreCommand removes a store.
type DeleteStoreCommand struct {
	ID uuid.UUID `label:"Id" validate:"required"`
}

// GetStoreQuery reads one store with its company.
type GetStoreQuery struct {
	ID uuid.UUID `label:"Id" validate:"required"`
}
