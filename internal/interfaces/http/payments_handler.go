package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/application/payments"
)

// PaymentsHandler maneja pagos de anticipo y abonos a cuentas por pagar
// (protegido).
type PaymentsHandler struct {
	createAdvance *payments.CreateAdvancePaymentUseCase
	markPaid      *payments.MarkAdvancePaymentPaidUseCase
	payableHist   *payments.PayableHistoryUseCase
}

// NewPaymentsHandler construye el handler.
func NewPaymentsHandler(
	createAdvance *payments.CreateAdvancePaymentUseCase,
	markPaid *payments.MarkAdvancePaymentPaidUseCase,
	payableHist *payments.PayableHistoryUseCase,
) *PaymentsHandler {
	return &PaymentsHandler{createAdvance: createAdvance, markPaid: markPaid, payableHist: payableHist}
}

// CreateAdvance registra un pago de anticipo en estado PENDIENTE.
func (h *PaymentsHandler) CreateAdvance(c *fiber.Ctx) error {
	var in dto.CreateAdvancePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.createAdvance.Execute(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAdvancePaymentResponse(record))
}

// MarkAdvancePaid marca un pago como PAGADO y evalúa el umbral de anticipo
// del proyecto.
func (h *PaymentsHandler) MarkAdvancePaid(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.MarkAdvancePaymentPaidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.markPaid.Execute(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAdvancePaymentResponse(record))
}

// CreatePayableHistory registra un abono PENDIENTE hacia una cuenta por pagar.
func (h *PaymentsHandler) CreatePayableHistory(c *fiber.Ctx) error {
	var in dto.CreatePayableHistoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	hist, err := h.payableHist.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToPayableHistoryResponse(hist))
}

// MarkPayablePaid marca un abono como PAGADO y, si se cubre la condición del
// proveedor, dispara el inicio de producción de las órdenes de la proforma.
func (h *PaymentsHandler) MarkPayablePaid(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	hist, err := h.payableHist.MarkPaid(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPayableHistoryResponse(hist))
}
