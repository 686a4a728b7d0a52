package models

import "github.com/google/uuid"

// Store is a physical store belonging to a company.
type Store struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Address   string    `json:"address" gorm:"type:varchar(200);not null"`
	City      string    `json:"city" gorm:"type:varchar(100);not null"`
	Country   string    `json:"country" gorm:"type:varchar(100);not null"`
	CompanyID uuid.UUID `json:"companyId" gorm:"type:uuid;not null;index"`
	Company   *Company  `json:"company,omitempty"`
	Products  []Product `json:"products,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

func (Store) TableName() string { return "stores" }
