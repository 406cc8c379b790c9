package logistics

import (
	"context"
	"time"

	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
	"github.com/benettihome/operaciones-api/internal/domain/schedule"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

// orderTransitions transiciones manuales permitidas. Las automáticas (umbral
// de anticipo, condición del proveedor, cascada de contenedor) viven en sus
// propios casos de uso.
var orderTransitions = map[string][]string{
	entity.OrderStatusPendiente:     {entity.OrderStatusNueva},
	entity.OrderStatusNueva:         {entity.OrderStatusEnProduccion},
	entity.OrderStatusEnProduccion:  {entity.OrderStatusEnRecoleccion},
	entity.OrderStatusEnRecoleccion: {entity.OrderStatusEnTransito},
	entity.OrderStatusEnTransito:    {entity.OrderStatusEntregado},
}

// PurchaseOrderUseCase transiciones de estado, captura del fin real de
// producción y asignación a colecciones.
type PurchaseOrderUseCase struct {
	txRunner       TxRunner
	orderRepo      repository.PurchaseOrderRepository
	collectionRepo repository.CollectionRepository
	containerRepo  repository.ContainerRepository
	log            *logger.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	collectionRepo repository.CollectionRepository,
	containerRepo repository.ContainerRepository,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:       txRunner,
		orderRepo:      orderRepo,
		collectionRepo: collectionRepo,
		containerRepo:  containerRepo,
		log:            log.Component("logistics"),
	}
}

// UpdateStatus avanza la orden un paso en la cadena. Estados desconocidos son
// de validación; saltos no permitidos, de conflicto.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, orderID int64, newStatus string) (*entity.PurchaseOrder, error) {
	if _, known := orderTransitions[newStatus]; !known && newStatus != entity.OrderStatusEntregado {
		return nil, domain.ErrValidation
	}

	po, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}

	if !transitionAllowed(po.Status, newStatus) {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	po.Status = newStatus
	if newStatus == entity.OrderStatusEnTransito && po.ShippingDate == nil {
		shipped := now
		po.ShippingDate = &shipped
	}
	po.UpdatedAt = now
	if err := uc.orderRepo.Update(po); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("purchaseOrderId", po.ID).Str("status", newStatus).Msg("orden de compra actualizada")
	return po, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SetProductionRealEnd captura el fin real de producción y rederiva la fecha
// de llegada con el contexto del contenedor si la orden ya tiene colección.
func (uc *PurchaseOrderUseCase) SetProductionRealEnd(ctx context.Context, orderID int64, date time.Time) (*entity.PurchaseOrder, error) {
	po, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}

	po.ProductionRealEndDate = &date

	container, err := uc.containerFor(po)
	if err != nil {
		return nil, err
	}
	if arrival, rule, ok := schedule.ArrivalDate(container, po); ok {
		po.ArrivalDate = &arrival
		uc.log.Debug().Int64("purchaseOrderId", po.ID).Str("rule", string(rule)).
			Msg("fecha de llegada rederivada por fin real")
	}

	po.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(po); err != nil {
		return nil, err
	}
	return po, nil
}

// containerFor resuelve orden -> colección -> contenedor; nil en cualquier
// eslabón ausente.
func (uc *PurchaseOrderUseCase) containerFor(po *entity.PurchaseOrder) (*entity.Container, error) {
	if po.CollectionID == nil {
		return nil, nil
	}
	collection, err := uc.collectionRepo.GetByID(*po.CollectionID)
	if err != nil {
		return nil, err
	}
	if collection == nil || collection.ContainerID == nil {
		return nil, nil
	}
	return uc.containerRepo.GetByID(*collection.ContainerID)
}

// AssignCollection agrupa una orden EN_RECOLECCION en una colección.
func (uc *PurchaseOrderUseCase) AssignCollection(ctx context.Context, orderID, collectionID int64) (*entity.PurchaseOrder, error) {
	po, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.Status != entity.OrderStatusEnRecoleccion {
		return nil, domain.ErrConflict
	}

	collection, err := uc.collectionRepo.GetByID(collectionID)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, domain.ErrNotFound
	}

	po.CollectionID = &collection.ID
	po.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(po); err != nil {
		return nil, err
	}
	return po, nil
}

// PendingCollection órdenes EN_RECOLECCION sin colección asignada.
func (uc *PurchaseOrderUseCase) PendingCollection() ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.ListPendingCollection()
}
