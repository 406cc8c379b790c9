// Package logistics mueve las órdenes de compra a lo largo de la cadena de
// entrega: estados del contenedor, cascada de fechas de llegada, transiciones
// de orden y los barridos periódicos (fin de producción, aviso de entregas).
package logistics

import (
	"context"
	"time"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
	"github.com/benettihome/operaciones-api/internal/domain/schedule"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

var containerStatuses = map[string]bool{
	entity.ContainerStatusEnPuerto:   true,
	entity.ContainerStatusEnTransito: true,
	entity.ContainerStatusEntregado:  true,
}

// ContainerUseCase muta contenedores y propaga fechas y estados a las
// órdenes alcanzables vía sus colecciones.
type ContainerUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewContainerUseCase construye el caso de uso.
func NewContainerUseCase(txRunner TxRunner, log *logger.Logger) *ContainerUseCase {
	return &ContainerUseCase{txRunner: txRunner, log: log.Component("logistics")}
}

// Update aplica el cambio de estado o de fechas estimadas y recalcula, en la
// misma transacción, la fecha de llegada de cada orden del contenedor.
// EN_TRANSITO mueve las órdenes a EN_TRANSITO con fecha de embarque; ENTREGADO
// las cierra en ENTREGADO.
func (uc *ContainerUseCase) Update(ctx context.Context, containerID int64, in dto.UpdateContainerRequest) (*entity.Container, error) {
	if in.Status != nil && !containerStatuses[*in.Status] {
		return nil, domain.ErrValidation
	}

	var container *entity.Container
	err := uc.txRunner.Run(ctx, func(
		containerRepo repository.ContainerRepository,
		_ repository.CollectionRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.AccountPayableRepository,
	) error {
		var err error
		container, err = containerRepo.GetByID(containerID)
		if err != nil {
			return err
		}
		if container == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		if in.ETDDate != nil {
			container.ETDDate = in.ETDDate
		}
		if in.ETADate != nil {
			container.ETADate = in.ETADate
		}
		if in.Status != nil {
			container.Status = *in.Status
			schedule.ApplyContainerStatus(container, now)
		}
		container.UpdatedAt = now
		if err := containerRepo.Update(container); err != nil {
			return err
		}

		return uc.cascade(container, orderRepo, now)
	})
	if err != nil {
		return nil, err
	}
	return container, nil
}

// cascade recalcula la fecha de llegada de toda orden del contenedor y, según
// el estado del contenedor, la avanza de estado.
func (uc *ContainerUseCase) cascade(container *entity.Container, orderRepo repository.PurchaseOrderRepository, now time.Time) error {
	orders, err := orderRepo.ListByContainer(container.ID)
	if err != nil {
		return err
	}
	for _, po := range orders {
		if arrival, rule, ok := schedule.ArrivalDate(container, po); ok {
			po.ArrivalDate = &arrival
			uc.log.Debug().Int64("purchaseOrderId", po.ID).Str("rule", string(rule)).
				Time("arrival", arrival).Msg("fecha de llegada recalculada")
		}

		switch container.Status {
		case entity.ContainerStatusEnTransito:
			if po.Status != entity.OrderStatusEntregado {
				po.Status = entity.OrderStatusEnTransito
				if po.ShippingDate == nil {
					shipped := now
					po.ShippingDate = &shipped
				}
			}
		case entity.ContainerStatusEntregado:
			po.Status = entity.OrderStatusEntregado
		}

		po.UpdatedAt = now
		if err := orderRepo.Update(po); err != nil {
			return err
		}
	}
	return nil
}
