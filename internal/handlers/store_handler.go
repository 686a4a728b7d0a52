package handlers

import (
	"storeapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for stores.
type StoreHandler struct {
	service *services.StoreService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(service *services.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

// RegisterRoutes registers the store routes under /store.
func (h *StoreHandler) RegisterRoutes(router fiber.Router) {
	storeRoutes := router.Group("/store")
	storeRoutes.Post("/", h.HandleCreateStore)
	storeRoutes.Put("/:id", h.HandleUpdateStore)
	storeRoutes.Get("/:id", h.HandleGetStore)
	storeRoutes.Get("/", h.HandleGetStores)
	storeRoutes.Delete("/:id", h.HandleDeleteStore)
}

func (h *StoreHandler) HandleCreateStore(c *fiber.Ctx) error {
	var cmd services.CreateStoreCommand
	if err := parseBody(c, &cmd); err != nil {
		return err
	}

	store, err := h.service.CreateStore(c.UserContext(), cmd)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// HandleUpdateStore overwrites the store identified by the path.
func (h *StoreHandler) HandleUpdateStore(c *fiber.Ctx) error {
	var cmd services.UpdateStoreCommand
	if err := parseBody(c, &cmd); err != nil {
		return err
	}
	cmd.ID = pathID(c)

	store, err := h.service.UpdateStore(c.UserContext(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(store)
}

// HandleGetStore returns the store with its company embedded.
func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	store, err := h.service.GetStore(c.UserContext(), services.GetStoreQuery{ID: pathID(c)})
	if err != nil {
		return err
	}
	return c.JSON(store)
}

func (h *StoreHandler) HandleGetStores(c *fiber.Ctx) error {
	stores, err := h.service.GetStores(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stores)
}

func (h *StoreHandler) HandleDeleteStore(c *fiber.Ctx) error {
	if err := h.service.DeleteStore(c.UserContext(), services.DeleteStoreCommand{ID: pathID(c)}); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
