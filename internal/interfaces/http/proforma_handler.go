package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/application/proformas"
)

// ProformaHandler maneja el alta y la edición de proformas (protegido).
type ProformaHandler struct {
	uc *proformas.ReconcilerUseCase
}

// NewProformaHandler construye el handler.
func NewProformaHandler(uc *proformas.ReconcilerUseCase) *ProformaHandler {
	return &ProformaHandler{uc: uc}
}

// Create registra una proforma y materializa su cuenta por pagar.
func (h *ProformaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProformaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	proforma, linked, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProformaResponse(proforma, linked))
}

// Update ajusta monto, moneda o documento de una proforma existente.
func (h *ProformaHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProformaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	proforma, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProformaResponse(proforma, 0))
}
