package handlers

import (
	"storeapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CompanyHandler handles HTTP requests for companies.
type CompanyHandler struct {
	service *services.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(service *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// RegisterRoutes registers the company routes under /company.
func (h *CompanyHandler) RegisterRoutes(router fiber.Router) {
	companyRoutes := router.Group("/company")
	companyRoutes.Post("/", h.HandleCreateCompany)
	companyRoutes.Put("/:id", h.HandleUpdateCompany)
	companyRoutes.Get("/:id", h.HandleGetCompany)
	companyRoutes.Get("/", h.HandleGetCompanies)
	companyRoutes.Delete("/:id", h.HandleDeleteCompany)
}

// HandleCreateCompany creates a company and answers 201 with it.
func (h *CompanyHandler) HandleCreateCompany(c *fiber.Ctx) error {
	var cmd services.CreateCompanyCommand
	if err := parseBody(c, &cmd); err != nil {
		return err
	}

	company, err := h.service.CreateCompany(c.UserContext(), cmd)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// HandleUpdateCompany renames the company identified by the path.
func (h *CompanyHandler) HandleUpdateCompany(c *fiber.Ctx) error {
	var cmd services.UpdateCompanyCommand
	if err := parseBody(c, &cmd); err != nil {
		return err
	}
	cmd.ID = pathID(c)

	company, err := h.service.UpdateCompany(c.UserContext(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(company)
}

func (h *CompanyHandler) HandleGetCompany(c *fiber.Ctx) error {
	company, err := h.service.GetCompany(c.UserContext(), services.GetCompanyQuery{ID: pathID(c)})
	if err != nil {
		return err
	}
	return c.JSON(company)
}

func (h *CompanyHandler) HandleGetCompanies(c *fiber.Ctx) error {
	companies, err := h.service.GetCompanies(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(companies)
}

// HandleDeleteCompany deletes a company and, through the cascade, its stores.
func (h *CompanyHandler) HandleDeleteCompany(c *fiber.Ctx) error {
	if err := h.service.DeleteCompany(c.UserContext(), services.DeleteCompanyCommand{ID: pathID(c)}); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
