package payments

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/currency"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
	"github.com/benettihome/operaciones-api/internal/domain/schedule"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

// PayableHistoryUseCase abonos hacia cuentas por pagar: alta PENDIENTE y
// transición a PAGADO con conversión de moneda, recomputación de saldo y el
// disparo de la fecha de fin de producción cuando el porcentaje pagado
// alcanza la condición de anticipo del proveedor.
type PayableHistoryUseCase struct {
	txRunner     TxRunner
	payableRepo  repository.AccountPayableRepository
	historyRepo  repository.PayableHistoryRepository
	proformaRepo repository.ProformaRepository
	providerRepo repository.ProviderRepository
	brandRepo    repository.BrandRepository
	matrix       currency.Matrix
	log          *logger.Logger
}

// NewPayableHistoryUseCase construye el caso de uso.
func NewPayableHistoryUseCase(
	txRunner TxRunner,
	payableRepo repository.AccountPayableRepository,
	historyRepo repository.PayableHistoryRepository,
	proformaRepo repository.ProformaRepository,
	providerRepo repository.ProviderRepository,
	brandRepo repository.BrandRepository,
	matrix currency.Matrix,
	log *logger.Logger,
) *PayableHistoryUseCase {
	return &PayableHistoryUseCase{
		txRunner:     txRunner,
		payableRepo:  payableRepo,
		historyRepo:  historyRepo,
		proformaRepo: proformaRepo,
		providerRepo: providerRepo,
		brandRepo:    brandRepo,
		matrix:       matrix,
		log:          log,
	}
}

// Create registra el abono PENDIENTE contra una cuenta por pagar existente.
func (uc *PayableHistoryUseCase) Create(in dto.CreatePayableHistoryRequest) (*entity.AccountPayableHistory, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrValidation
	}
	payable, err := uc.payableRepo.GetByID(in.AccountPayableID)
	if err != nil {
		return nil, err
	}
	if payable == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	history := &entity.AccountPayableHistory{
		AccountPayableID: payable.ID,
		Amount:           in.Amount,
		Currency:         entity.Currency(in.Currency),
		Status:           entity.PaymentStatusPendiente,
		DocumentID:       in.DocumentID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.historyRepo.Create(history); err != nil {
		return nil, err
	}
	return history, nil
}

// MarkPaid transición PENDIENTE -> PAGADO del abono. Una vez PAGADO el abono
// es inmutable. Convierte el importe a la moneda de la cuenta, recomputa el
// saldo y, si el porcentaje pagado alcanza la condición de anticipo del
// proveedor (100 por omisión), fija la fecha estimada de fin de producción de
// la orden del par y la pasa a EN_PRODUCCION.
func (uc *PayableHistoryUseCase) MarkPaid(ctx context.Context, historyID int64) (*entity.AccountPayableHistory, error) {
	var result *entity.AccountPayableHistory
	err := uc.txRunner.RunPayables(ctx, func(
		historyRepo repository.PayableHistoryRepository,
		payableRepo repository.AccountPayableRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		history, err := historyRepo.GetByID(historyID)
		if err != nil {
			return err
		}
		if history == nil {
			return domain.ErrNotFound
		}
		if history.Status == entity.PaymentStatusPagado {
			return domain.ErrAlreadyPaid
		}

		payable, err := payableRepo.GetByID(history.AccountPayableID)
		if err != nil {
			return err
		}
		if payable == nil {
			return domain.ErrNotFound
		}

		converted, err := uc.matrix.Convert(history.Amount, history.Currency, payable.Currency)
		if err != nil {
			return err
		}
		payable.TotalPaid = payable.TotalPaid.Add(converted)
		payable.Balance = payable.Total.Sub(payable.TotalPaid)
		if payable.TotalPaid.GreaterThanOrEqual(payable.Total) {
			payable.IsPaid = true
		}

		now := time.Now()
		history.Status = entity.PaymentStatusPagado
		history.PaymentDate = &now
		history.UpdatedAt = now

		if err := uc.triggerProductionStart(payable, orderRepo, now); err != nil {
			return err
		}

		if err := payableRepo.Update(payable); err != nil {
			return err
		}
		result = history
		return historyRepo.Update(history)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *PayableHistoryUseCase) triggerProductionStart(payable *entity.AccountPayable, orderRepo repository.PurchaseOrderRepository, now time.Time) error {
	if payable.ProformaID == nil {
		return nil
	}
	proforma, err := uc.proformaRepo.GetByID(*payable.ProformaID)
	if err != nil || proforma == nil {
		return err
	}
	provider, err := uc.providerRepo.GetByID(proforma.ProviderID)
	if err != nil || provider == nil {
		return err
	}
	if !schedule.MeetsAdvanceCondition(payable.TotalPaid, payable.Total, provider.AdvanceConditionPercentage) {
		return nil
	}

	order, err := orderRepo.GetForPayableAndProforma(payable.ID, proforma.ID)
	if err != nil || order == nil {
		return err
	}
	if order.ProductionEndDate != nil {
		return nil // ya arrancó producción
	}
	brand, err := uc.brandRepo.GetByID(proforma.BrandID)
	if err != nil || brand == nil {
		return err
	}

	end := schedule.ProductionEnd(now, brand.ProductionTime)
	order.ProductionEndDate = &end
	if order.Status == entity.OrderStatusNueva || order.Status == entity.OrderStatusPendiente {
		order.Status = entity.OrderStatusEnProduccion
	}
	order.UpdatedAt = now

	uc.log.Info().
		Int64("purchaseOrderId", order.ID).
		Str("productionEndDate", end.Format("2006-01-02")).
		Msg("condición de anticipo del proveedor cubierta: producción programada")
	return orderRepo.Update(order)
}
