package products

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"storeapi/internal/apperror"
	"storeapi/internal/config"
	"storeapi/internal/database"
	"storeapi/internal/logging"
	"storeapi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockService(t *testing.T) (*SQLService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLService(sqlx.NewDb(db, "sqlmock")), mock
}

func TestGetProducts_ReturnsFunctionJSON(t *testing.T) {
	svc, mock := newMockService(t)
	storeID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(getProductsQuery)).
		WithArgs(storeID).
		WillReturnRows(sqlmock.NewRows([]string{"fn_get_products_json"}).AddRow(`[{"name":"Laptop"}]`))

	out, err := svc.GetProducts(context.Background(), storeID)

	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Laptop"}]`, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProducts_NullIsEmptyArray(t *testing.T) {
	svc, mock := newMockService(t)
	storeID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(getProductsQuery)).
		WithArgs(storeID).
		WillReturnRows(sqlmock.NewRows([]string{"fn_get_products_json"}).AddRow(nil))

	out, err := svc.GetProducts(context.Background(), storeID)

	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestGetProducts_WrapsDriverError(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(getProductsQuery)).WillReturnError(errors.New("connection reset"))

	_, err := svc.GetProducts(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
	assert.Equal(t, "Database error occurred while retrieving products: connection reset", err.Error())
}

func TestInsertProduct(t *testing.T) {
	svc, mock := newMockService(t)
	product := &models.Product{
		ID:          uuid.New(),
		Name:        "Laptop",
		Description: "Fast",
		Price:       decimal.RequireFromString("999.99"),
		StoreID:     uuid.New(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(insertProductQuery)).
		WithArgs(product.StoreID, "Laptop", "Fast", product.Price).
		WillReturnRows(sqlmock.NewRows([]string{"insert_product"}).AddRow(`{"name":"Laptop"}`))

	out, err := svc.InsertProduct(context.Background(), product)

	require.NoError(t, err)
	assert.Equal(t, `{"name":"Laptop"}`, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertProduct_NullIsEmptyObject(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertProductQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"insert_product"}).AddRow(nil))

	out, err := svc.InsertProduct(context.Background(), &models.Product{Name: "Laptop", Price: decimal.NewFromInt(1)})

	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

func TestGetByID(t *testing.T) {
	svc, mock := newMockService(t)
	id, storeID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(getByIDQuery)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "store_id"}).
			AddRow(id.String(), "Laptop", "Fast", "1200.50", storeID.String()))

	product, err := svc.GetByID(context.Background(), id)

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, id, product.ID)
	assert.Equal(t, "Laptop", product.Name)
	assert.True(t, decimal.RequireFromString("1200.5").Equal(product.Price))
	assert.Equal(t, storeID, product.StoreID)
}

func TestGetByID_NullDescription(t *testing.T) {
	svc, mock := newMockService(t)
	id, storeID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(getByIDQuery)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "store_id"}).
			AddRow(id.String(), "Pen", nil, "1.50", storeID.String()))

	product, err := svc.GetByID(context.Background(), id)

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Pen", product.Name)
	assert.Empty(t, product.Description)
	assert.True(t, decimal.RequireFromString("1.5").Equal(product.Price))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NoRows(t *testing.T) {
	svc, mock := newMockService(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(getByIDQuery)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "store_id"}))

	product, err := svc.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestUpdate(t *testing.T) {
	svc, mock := newMockService(t)
	product := &models.Product{ID: uuid.New(), Name: "Laptop", Price: decimal.NewFromInt(10), StoreID: uuid.New()}

	mock.ExpectExec(regexp.QuoteMeta(updateQuery)).
		WithArgs("Laptop", "", product.Price, product.StoreID, product.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Update(context.Background(), product))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NoRowsAffected(t *testing.T) {
	svc, mock := newMockService(t)
	product := &models.Product{ID: uuid.New(), Name: "Laptop", Price: decimal.NewFromInt(10), StoreID: uuid.New()}

	mock.ExpectExec(regexp.QuoteMeta(updateQuery)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Update(context.Background(), product)

	require.Error(t, err)
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "not found or could not be updated")
}

func TestDeleteByID(t *testing.T) {
	svc, mock := newMockService(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, svc.DeleteByID(context.Background(), id))

	mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	err := svc.DeleteByID(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found or could not be deleted")

	mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).WithArgs(id).WillReturnError(errors.New("deadlock"))
	err = svc.DeleteByID(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, "Database error occurred while deleting product: deadlock", err.Error())
}

func TestConnect_RejectsSQLite(t *testing.T) {
	_, err := Connect(context.Background(), database.Options{Driver: config.DriverSQLite}, logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "products require the postgres driver")
}
