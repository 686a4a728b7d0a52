// Package products serves the product catalogue through direct SQL against
// the server-side product functions, outside the company/store unit of work.
package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storeapi/internal/apperror"
	"storeapi/internal/config"
	"storeapi/internal/database"
	"storeapi/internal/logging"
	"storeapi/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for sqlx
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Service is the product data access used by the HTTP functions.
type Service interface {
	// GetProducts returns the products of a store as a JSON array.
	GetProducts(ctx context.Context, storeID uuid.UUID) (string, error)
	// InsertProduct stores product and returns the inserted row as JSON.
	InsertProduct(ctx context.Context, product *models.Product) (string, error)
	// GetByID returns nil when no product has id.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

const (
	getProductsQuery   = `SELECT fn_get_products_json($1)`
	insertProductQuery = `SELECT insert_product($1, $2, $3, $4)`
	getByIDQuery       = `SELECT id, name, description, price, store_id FROM products WHERE id = $1`
	updateQuery        = `UPDATE products SET name = $1, description = $2, price = $3, store_id = $4 WHERE id = $5`
	deleteQuery        = `DELETE FROM products WHERE id = $1`
)

// SQLService implements Service on sqlx.
type SQLService struct {
	db *sqlx.DB
}

// NewSQLService creates a new SQLService.
func NewSQLService(db *sqlx.DB) *SQLService {
	return &SQLService{db: db}
}

// Connect opens a postgres pool for the product service, retrying transient
// failures the same way the store API does.
func Connect(ctx context.Context, opts database.Options, log *logrus.Logger) (*sqlx.DB, error) {
	if opts.Driver != config.DriverPostgres {
		return nil, fmt.Errorf("products require the %s driver, got %q", config.DriverPostgres, opts.Driver)
	}

	var db *sqlx.DB
	err := database.Retry(ctx, opts, log, func() error {
		var connErr error
		db, connErr = sqlx.ConnectContext(ctx, "postgres", opts.DSN)
		return connErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to product database: %w", err)
	}
	return db, nil
}

func (s *SQLService) GetProducts(ctx context.Context, storeID uuid.UUID) (string, error) {
	log := logging.FromContext(ctx).WithField("store_id", storeID)
	log.Info("Getting products for store")

	var out sql.NullString
	if err := s.db.GetContext(ctx, &out, getProductsQuery, storeID); err != nil {
		log.WithError(err).Error("Database error getting products for store")
		return "", apperror.Persistence("Database error occurred while retrieving products", err)
	}
	if !out.Valid {
		return "[]", nil
	}
	return out.String, nil
}

func (s *SQLService) InsertProduct(ctx context.Context, product *models.Product) (string, error) {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"product_name": product.Name,
		"store_id":     product.StoreID,
	})
	log.Info("Inserting new product")

	var out sql.NullString
	err := s.db.GetContext(ctx, &out, insertProductQuery,
		product.StoreID, product.Name, product.Description, product.Price)
	if err != nil {
		log.WithError(err).Error("Database error inserting product")
		return "", apperror.Persistence("Database error occurred while inserting product", err)
	}

	log.Info("Successfully inserted product")
	if !out.Valid {
		return "{}", nil
	}
	return out.String, nil
}

func (s *SQLService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	log := logging.FromContext(ctx).WithField("product_id", id)

	var row productRow
	if err := s.db.GetContext(ctx, &row, getByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("Product not found")
			return nil, nil
		}
		log.WithError(err).Error("Database error getting product by ID")
		return nil, apperror.Persistence("Database error occurred while retrieving product", err)
	}
	return row.toProduct(), nil
}

// productRow mirrors a products row; description is nullable.
type productRow struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Description sql.NullString  `db:"description"`
	Price       decimal.Decimal `db:"price"`
	StoreID     uuid.UUID       `db:"store_id"`
}

func (r productRow) toProduct() *models.Product {
	return &models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		Price:       r.Price,
		StoreID:     r.StoreID,
	}
}

// Update overwrites every column of the product. A missing product is an
// error, not a no-op.
func (s *SQLService) Update(ctx context.Context, product *models.Product) error {
	log := logging.FromContext(ctx).WithField("product_id", product.ID)

	res, err := s.db.ExecContext(ctx, updateQuery,
		product.Name, product.Description, product.Price, product.StoreID, product.ID)
	if err != nil {
		log.WithError(err).Error("Database error updating product")
		return apperror.Persistence("Database error occurred while updating product", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		log.Warn("No rows affected when updating product")
		return apperror.Persistence(fmt.Sprintf("Product with ID %s not found or could not be updated", product.ID), err)
	}

	log.Info("Successfully updated product")
	return nil
}

// DeleteByID removes the product. A missing product is an error.
func (s *SQLService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logging.FromContext(ctx).WithField("product_id", id)

	res, err := s.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		log.WithError(err).Error("Database error deleting product")
		return apperror.Persistence("Database error occurred while deleting product", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		log.Warn("No rows affected when deleting product")
		return apperror.Persistence(fmt.Sprintf("Product with ID %s not found or could not be deleted", id), err)
	}

	log.Info("Successfully deleted product")
	return nil
}
