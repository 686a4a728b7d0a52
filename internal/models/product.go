package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is sold in a store. Products are written with hand-written SQL by
// the products app; the gorm tags only drive the schema.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	Name        string          `json:"name" db:"name" gorm:"type:varchar(100);not null;index"`
	Description string          `json:"description" db:"description" gorm:"type:varchar(500)"`
	Price       decimal.Decimal `json:"price" db:"price" gorm:"type:decimal(18,2);not null"`
	StoreID     uuid.UUID       `json:"storeId" db:"store_id" gorm:"type:uuid;not null;index"`
}

func (Product) TableName() string { return "products" }
