package products

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"storeapi/internal/apperror"
	"storeapi/internal/dto"
	"storeapi/internal/logging"
	"storeapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrBadRequest       = "BadRequest"
	ErrInternal         = "InternalError"
	ErrInvalidJSON      = "InvalidJson"
	ErrInvalidProductID = "InvalidProductId"
	ErrInvalidStoreID   = "InvalidStoreId"
	ErrProductNotFound  = "ProductNotFound"
	ErrValidation       = "ValidationError"
)

// ErrorResponse is the body of every failed product request.
type ErrorResponse struct {
	Error   string  `json:"error"`
	Message string  `json:"message"`
	Details *string `json:"details"`
}

// Functions exposes a product Service over HTTP.
type Functions struct {
	service   Service
	validator *validation.Validator
}

// NewFunctions creates the product HTTP functions.
func NewFunctions(service Service) *Functions {
	return &Functions{service: service, validator: NewValidator()}
}

// RegisterRoutes registers the product routes under /products.
func (f *Functions) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", f.CreateProduct)
	productRoutes.Get("/", f.GetProducts)
	productRoutes.Get("/:id", f.GetProduct)
	productRoutes.Put("/:id", f.UpdateProduct)
	productRoutes.Delete("/:id", f.DeleteProduct)
}

// CreateProduct inserts a product and answers 201 with the row the database
// returned.
func (f *Functions) CreateProduct(c *fiber.Ctx) error {
	log := logging.FromContext(c.UserContext())
	log.Info("Creating new product")

	req, ok, err := f.decodeProduct(c, log)
	if !ok {
		return err
	}

	product := req.ToProduct(uuid.New())
	created, err := f.service.InsertProduct(c.UserContext(), product)
	if err != nil {
		log.WithError(err).Error("Error creating product")
		return internalError(c, "creating the product", err)
	}

	log.WithField("product_name", product.Name).Info("Product created successfully")
	return sendRawJSON(c, fiber.StatusCreated, created)
}

// GetProducts lists the products of the store named by the storeId query
// parameter.
func (f *Functions) GetProducts(c *fiber.Ctx) error {
	log := logging.FromContext(c.UserContext())

	storeID, ok := validID(c.Query("storeId"))
	if !ok {
		log.WithField("store_id", c.Query("storeId")).Warn("Get products request with invalid storeId")
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidStoreID, "Invalid or missing storeId parameter", nil)
	}

	products, err := f.service.GetProducts(c.UserContext(), storeID)
	if err != nil {
		log.WithError(err).Error("Error getting products for store")
		return internalError(c, "retrieving products for the store", err)
	}
	return sendRawJSON(c, fiber.StatusOK, products)
}

func (f *Functions) GetProduct(c *fiber.Ctx) error {
	log := logging.FromContext(c.UserContext())

	id, ok := validID(c.Params("id"))
	if !ok {
		log.WithField("product_id", c.Params("id")).Warn("Get product request with invalid ID")
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidProductID, "Invalid product ID format", nil)
	}

	product, err := f.service.GetByID(c.UserContext(), id)
	if err != nil {
		log.WithError(err).Error("Error getting product")
		return internalError(c, "retrieving the product", err)
	}
	if product == nil {
		return errorResponse(c, fiber.StatusNotFound, ErrProductNotFound, "Product not found", nil)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// UpdateProduct overwrites the product and echoes it back.
func (f *Functions) UpdateProduct(c *fiber.Ctx) error {
	log := logging.FromContext(c.UserContext())

	id, ok := validID(c.Params("id"))
	if !ok {
		log.WithField("product_id", c.Params("id")).Warn("Update product request with invalid ID")
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidProductID, "Invalid product ID format", nil)
	}
	log = log.WithField("product_id", id)

	req, ok, err := f.decodeProduct(c, log)
	if !ok {
		return err
	}

	product := req.ToProduct(id)
	if err := f.service.Update(c.UserContext(), product); err != nil {
		log.WithError(err).Error("Error updating product")
		return internalError(c, "updating the product", err)
	}

	log.Info("Product updated successfully")
	return c.JSON(dto.ToProductResponse(product))
}

func (f *Functions) DeleteProduct(c *fiber.Ctx) error {
	log := logging.FromContext(c.UserContext())

	id, ok := validID(c.Params("id"))
	if !ok {
		log.WithField("product_id", c.Params("id")).Warn("Delete product request with invalid ID")
		return errorResponse(c, fiber.StatusBadRequest, ErrInvalidProductID, "Invalid product ID format", nil)
	}

	if err := f.service.DeleteByID(c.UserContext(), id); err != nil {
		log.WithError(err).Error("Error deleting product")
		return internalError(c, "deleting the product", err)
	}

	log.WithField("product_id", id).Info("Product deleted successfully")
	return c.SendStatus(fiber.StatusNoContent)
}

// decodeProduct reads and validates the body. When ok is false the error
// response has been written and err is the result of writing it.
func (f *Functions) decodeProduct(c *fiber.Ctx, log *logrus.Entry) (req *ProductRequest, ok bool, err error) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		log.Warn("Product request received with empty body")
		return nil, false, errorResponse(c, fiber.StatusBadRequest, ErrBadRequest, "Request body is required", nil)
	}
	if bytes.Equal(body, []byte("null")) {
		return nil, false, errorResponse(c, fiber.StatusBadRequest, ErrBadRequest, "Invalid product data", nil)
	}

	var decoded ProductRequest
	if err := json.Unmarshal(body, &decoded); err != nil {
		log.WithError(err).Warn("Invalid JSON format in product request")
		return nil, false, errorResponse(c, fiber.StatusBadRequest, ErrInvalidJSON, "Invalid JSON format", nil)
	}

	if err := f.validator.Struct(decoded); err != nil {
		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			return nil, false, internalError(c, "validating the product", err)
		}
		messages := make([]string, 0, len(appErr.Fields))
		for _, fe := range appErr.Fields {
			messages = append(messages, fe.Message)
		}
		details := strings.Join(messages, "; ")
		log.WithField("errors", details).Warn("Product validation failed")
		return nil, false, errorResponse(c, fiber.StatusBadRequest, ErrValidation, "One or more validation errors occurred", &details)
	}
	return &decoded, true, nil
}

// validID accepts only well-formed, non-nil uuids.
func validID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func sendRawJSON(c *fiber.Ctx, status int, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(status).SendString(body)
}

func internalError(c *fiber.Ctx, action string, err error) error {
	return errorResponse(c, fiber.StatusInternalServerError, ErrInternal,
		"An error occurred while "+action+": "+err.Error(), nil)
}

func errorResponse(c *fiber.Ctx, status int, code, message string, details *string) error {
	return c.Status(status).JSON(ErrorResponse{Error: code, Message: message, Details: details})
}

// ErrorHandler renders errors that escape the functions, including panics
// recovered by the recover middleware, in the product error shape.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}

		code := ErrInternal
		if status < fiber.StatusInternalServerError {
			code = strings.ReplaceAll(http.StatusText(status), " ", "")
		} else {
			logging.FromContextOr(c.UserContext(), log).WithError(err).Error("Unhandled error in product function")
		}
		return c.Status(status).JSON(ErrorResponse{Error: code, Message: err.Error()})
	}
}
