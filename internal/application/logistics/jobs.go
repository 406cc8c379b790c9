package logistics

import (
	"context"
	"time"

	"github.com/benettihome/operaciones-api/internal/application/ports"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

// JobTemplates plantillas de SendGrid de los avisos periódicos.
type JobTemplates struct {
	DeliveryDay         string
	DeliveryDayCustomer string
}

// JobsUseCase barridos periódicos: cierre de producción vencida y aviso de
// entregas del día siguiente. Pensados para correr desde un scheduler externo
// (cron) una vez al día.
type JobsUseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	notifier     ports.NotificationService
	templates    JobTemplates
	log          *logger.Logger
}

// NewJobsUseCase construye el caso de uso.
func NewJobsUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	notifier ports.NotificationService,
	templates JobTemplates,
	log *logger.Logger,
) *JobsUseCase {
	return &JobsUseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		templates:    templates,
		log:          log.Component("logistics"),
	}
}

// SweepProductionDone mueve a EN_RECOLECCION toda orden EN_PRODUCCION cuya
// fecha de fin (real o estimada) ya pasó y cuya cuenta por pagar está
// liquidada. Devuelve cuántas órdenes avanzaron.
func (uc *JobsUseCase) SweepProductionDone(ctx context.Context, now time.Time) (int, error) {
	moved := 0
	err := uc.txRunner.Run(ctx, func(
		_ repository.ContainerRepository,
		_ repository.CollectionRepository,
		orderRepo repository.PurchaseOrderRepository,
		payableRepo repository.AccountPayableRepository,
	) error {
		orders, err := orderRepo.ListProductionDue(now)
		if err != nil {
			return err
		}
		for _, po := range orders {
			payable, err := payableRepo.GetByID(po.AccountPayableID)
			if err != nil {
				return err
			}
			if payable == nil || !payable.IsPaid {
				continue
			}
			po.Status = entity.OrderStatusEnRecoleccion
			po.UpdatedAt = now
			if err := orderRepo.Update(po); err != nil {
				return err
			}
			moved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int("moved", moved).Msg("barrido de fin de producción")
	return moved, nil
}

// NotifyDeliveries avisa las entregas programadas para mañana: un correo al
// equipo de logística nacional y otro al cliente de cada entrega. Las fallas
// de envío solo se registran.
func (uc *JobsUseCase) NotifyDeliveries(ctx context.Context, now time.Time) (int, error) {
	tomorrow := now.AddDate(0, 0, 1)
	deliveries, err := uc.deliveryRepo.ListForDate(tomorrow)
	if err != nil {
		return 0, err
	}
	if len(deliveries) == 0 {
		return 0, nil
	}

	logistics, err := uc.userRepo.ListNationalLogistics()
	if err != nil {
		return 0, err
	}
	var team []string
	for _, u := range logistics {
		team = append(team, u.Email)
	}

	for _, d := range deliveries {
		data := map[string]any{
			"projectId":    d.ProjectID,
			"deliveryDate": d.DeliveryDate.Format("2006-01-02"),
			"address":      d.Address,
		}
		if len(team) > 0 {
			if err := uc.notifier.Send(ctx, ports.Notification{
				To:          team,
				TemplateID:  uc.templates.DeliveryDay,
				DynamicData: data,
			}); err != nil {
				uc.log.Warn().Err(err).Int64("deliveryId", d.ID).Msg("falló el aviso de entrega al equipo")
			}
		}

		customer, err := uc.customerRepo.GetByID(d.CustomerID)
		if err != nil || customer == nil || customer.Email == "" {
			continue
		}
		if err := uc.notifier.Send(ctx, ports.Notification{
			To:          []string{customer.Email},
			TemplateID:  uc.templates.DeliveryDayCustomer,
			DynamicData: data,
		}); err != nil {
			uc.log.Warn().Err(err).Int64("deliveryId", d.ID).Msg("falló el aviso de entrega al cliente")
		}
	}
	return len(deliveries), nil
}
