// Package dto holds the read-only projections returned to API callers and the
// functions that build them from models.
package dto

import (
	"storeapi/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CompanyDto struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type StoreDto struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CompanyID uuid.UUID `json:"companyId"`
}

// DetailedStoreDto is a store together with its owning company.
type DetailedStoreDto struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	Country   string      `json:"country"`
	CompanyID uuid.UUID   `json:"companyId"`
	Company   *CompanyDto `json:"company"`
}

type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StoreID     uuid.UUID       `json:"storeId"`
}

func ToCompanyDto(c *models.Company) CompanyDto {
	return CompanyDto{ID: c.ID, Name: c.Name}
}

// ToCompanyDtos never returns nil.
func ToCompanyDtos(companies []models.Company) []CompanyDto {
	out := make([]CompanyDto, 0, len(companies))
	for i := range companies {
		out = append(out, ToCompanyDto(&companies[i]))
	}
	return out
}

func ToStoreDto(s *models.Store) StoreDto {
	return StoreDto{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		City:      s.City,
		Country:   s.Country,
		CompanyID: s.CompanyID,
	}
}

// ToStoreDtos never returns nil.
func ToStoreDtos(stores []models.Store) []StoreDto {
	out := make([]StoreDto, 0, len(stores))
	for i := range stores {
		out = append(out, ToStoreDto(&stores[i]))
	}
	return out
}

// ToDetailedStoreDto embeds the company projection when the store was loaded
// with its company.
func ToDetailedStoreDto(s *models.Store) DetailedStoreDto {
	d := DetailedStoreDto{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		City:      s.City,
		Country:   s.Country,
		CompanyID: s.CompanyID,
	}
	if s.Company != nil {
		c := ToCompanyDto(s.Company)
		d.Company = &c
	}
	return d
}

func ToProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		StoreID:     p.StoreID,
	}
}
