package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/application/projects"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

// ProjectHandler maneja la conversión de cotizaciones y la consulta de
// proyectos (protegido).
type ProjectHandler struct {
	create      *projects.CreateProjectUseCase
	projects    repository.ProjectRepository
	receivables repository.AccountsReceivableRepository
}

// NewProjectHandler construye el handler.
func NewProjectHandler(create *projects.CreateProjectUseCase, projectRepo repository.ProjectRepository, receivableRepo repository.AccountsReceivableRepository) *ProjectHandler {
	return &ProjectHandler{create: create, projects: projectRepo, receivables: receivableRepo}
}

// Create convierte una cotización autorizada en proyecto.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.QuotationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quotationId es requerido"})
	}
	project, err := h.create.Execute(c.UserContext(), in.QuotationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProjectResponse(project))
}

// GetByID devuelve un proyecto.
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	project, err := h.projects.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if project == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
	}
	return c.JSON(dto.ToProjectResponse(project))
}

// ListReceivables devuelve las cuentas por cobrar del proyecto (una por
// moneda cuando la venta es fraccionada).
func (h *ProjectHandler) ListReceivables(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	accounts, err := h.receivables.ListByProject(id)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReceivableResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.ToReceivableResponse(a))
	}
	return c.JSON(out)
}

// parseID extrae un parámetro de ruta numérico.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s debe ser un id numérico", domain.ErrValidation, name)
	}
	return id, nil
}
