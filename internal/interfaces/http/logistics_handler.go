package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/application/logistics"
)

// LogisticsHandler maneja contenedores, órdenes de compra y los barridos
// programados de logística (protegido).
type LogisticsHandler struct {
	containers *logistics.ContainerUseCase
	orders     *logistics.PurchaseOrderUseCase
	jobs       *logistics.JobsUseCase
}

// NewLogisticsHandler construye el handler.
func NewLogisticsHandler(containers *logistics.ContainerUseCase, orders *logistics.PurchaseOrderUseCase, jobs *logistics.JobsUseCase) *LogisticsHandler {
	return &LogisticsHandler{containers: containers, orders: orders, jobs: jobs}
}

// UpdateContainer aplica estado o fechas estimadas y cascada las fechas hacia
// todas las órdenes alcanzables por sus colecciones.
func (h *LogisticsHandler) UpdateContainer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateContainerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	container, err := h.containers.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToContainerResponse(container))
}

// UpdateOrderStatus avanza manualmente el estado de una orden de compra.
func (h *LogisticsHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orders.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPurchaseOrderResponse(order))
}

// SetProductionRealEnd captura el fin real de producción confirmado por el
// proveedor y rederiva la fecha de llegada.
func (h *LogisticsHandler) SetProductionRealEnd(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SetProductionRealEndRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Date.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date es requerido"})
	}
	order, err := h.orders.SetProductionRealEnd(c.UserContext(), id, in.Date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPurchaseOrderResponse(order))
}

// AssignCollection asocia una orden en recolección a una colección.
func (h *LogisticsHandler) AssignCollection(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AssignCollectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CollectionID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "collectionId es requerido"})
	}
	order, err := h.orders.AssignCollection(c.UserContext(), id, in.CollectionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPurchaseOrderResponse(order))
}

// PendingCollection lista las órdenes en recolección sin colección asignada.
func (h *LogisticsHandler) PendingCollection(c *fiber.Ctx) error {
	orders, err := h.orders.PendingCollection()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, po := range orders {
		out = append(out, dto.ToPurchaseOrderResponse(po))
	}
	return c.JSON(out)
}

// SweepProductionDone mueve a recolección las órdenes con producción vencida
// y proforma pagada. Pensado para invocarse desde el programador diario.
func (h *LogisticsHandler) SweepProductionDone(c *fiber.Ctx) error {
	moved, err := h.jobs.SweepProductionDone(c.UserContext(), time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"moved": moved})
}

// NotifyDeliveries envía los avisos de entrega del día siguiente.
func (h *LogisticsHandler) NotifyDeliveries(c *fiber.Ctx) error {
	notified, err := h.jobs.NotifyDeliveries(c.UserContext(), time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"notified": notified})
}
