package products

import (
	"strings"

	"storeapi/internal/models"
	"storeapi/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prices go out as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductRequest is the body accepted by create and update.
type ProductRequest struct {
	Name        string          `json:"name" validate:"notblank,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price" validate:"gte=0.01"`
	StoreID     uuid.UUID       `json:"storeId" label:"StoreId" validate:"required"`
}

var productMessages = map[string]string{
	"Name.notblank":    "Product name is required",
	"Name.max":         "Product name must be between 1 and 100 characters",
	"Description.max":  "Description cannot exceed 500 characters",
	"Price.gte":        "Price must be greater than 0",
	"StoreID.required": "Store ID is required",
}

// NewValidator returns a validator reporting product rule violations with
// the product messages.
func NewValidator() *validation.Validator {
	return validation.New(validation.WithMessages(productMessages))
}

// ToProduct builds the product with the given id, trimming the text fields.
func (r ProductRequest) ToProduct(id uuid.UUID) *models.Product {
	return &models.Product{
		ID:          id,
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Price:       r.Price,
		StoreID:     r.StoreID,
	}
}
