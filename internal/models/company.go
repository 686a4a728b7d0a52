package models

import "github.com/google/uuid"

// Company owns a set of stores.
type Company struct {
	ID     uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name   string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Stores []Store   `json:"stores,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName pins the table name used by migrations and raw SQL.
func (Company) TableName() string { return "companies" }
