package payments

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/application/ports"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/currency"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

// Reintentos acotados alrededor de la transacción del umbral.
const (
	maxTxAttempts  = 3
	retryBaseDelay = 50 * time.Millisecond
)

// NotificationTemplates ids de plantilla SendGrid usados al cruzar el umbral.
type NotificationTemplates struct {
	ProductStock  string
	ProductPedido string
}

// MarkAdvancePaymentPaidUseCase transición PENDIENTE -> PAGADO de un pago de
// anticipo: convierte el importe a la moneda de la cuenta, actualiza saldos y
// evalúa el umbral de anticipo. Si el umbral se cruza, crea a lo más una
// orden de compra por par (cuenta por pagar, proforma) y re-liga las líneas
// de producto, todo dentro de UNA transacción.
type MarkAdvancePaymentPaidUseCase struct {
	txRunner      TxRunner
	projectRepo   repository.ProjectRepository
	quotationRepo repository.QuotationRepository
	productRepo   repository.QuotationProductRepository
	catalogRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	matrix        currency.Matrix
	notifier      ports.NotificationService
	templates     NotificationTemplates
	log           *logger.Logger
}

// NewMarkAdvancePaymentPaidUseCase construye el caso de uso.
func NewMarkAdvancePaymentPaidUseCase(
	txRunner TxRunner,
	projectRepo repository.ProjectRepository,
	quotationRepo repository.QuotationRepository,
	productRepo repository.QuotationProductRepository,
	catalogRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	matrix currency.Matrix,
	notifier ports.NotificationService,
	templates NotificationTemplates,
	log *logger.Logger,
) *MarkAdvancePaymentPaidUseCase {
	return &MarkAdvancePaymentPaidUseCase{
		txRunner:      txRunner,
		projectRepo:   projectRepo,
		quotationRepo: quotationRepo,
		productRepo:   productRepo,
		catalogRepo:   catalogRepo,
		userRepo:      userRepo,
		matrix:        matrix,
		notifier:      notifier,
		templates:     templates,
		log:           log,
	}
}

// Execute marca el pago como PAGADO. Reintenta la transacción hasta tres
// veces ante conflictos de serialización; los errores de dominio no se
// reintentan.
func (uc *MarkAdvancePaymentPaidUseCase) Execute(ctx context.Context, paymentID int64, in dto.MarkAdvancePaymentPaidRequest) (*entity.AdvancePaymentRecord, error) {
	var (
		record        *entity.AdvancePaymentRecord
		createdOrders []*entity.PurchaseOrder
		err           error
	)
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		record, createdOrders, err = uc.runOnce(ctx, paymentID, in)
		if err == nil || !errors.Is(err, domain.ErrSerialization) {
			break
		}
		uc.log.Warn().Int64("paymentId", paymentID).Int("attempt", attempt).
			Msg("conflicto de serialización en el umbral; reintentando")
		time.Sleep(retryBaseDelay * time.Duration(attempt))
	}
	if err != nil {
		return nil, err
	}

	if len(createdOrders) > 0 {
		uc.notifyOrders(ctx, createdOrders)
	}
	return record, nil
}

func (uc *MarkAdvancePaymentPaidUseCase) runOnce(ctx context.Context, paymentID int64, in dto.MarkAdvancePaymentPaidRequest) (*entity.AdvancePaymentRecord, []*entity.PurchaseOrder, error) {
	var (
		record  *entity.AdvancePaymentRecord
		created []*entity.PurchaseOrder
	)
	err := uc.txRunner.Run(ctx, func(
		advanceRepo repository.AdvancePaymentRepository,
		receivableRepo repository.AccountsReceivableRepository,
		proformaRepo repository.ProformaRepository,
		payableRepo repository.AccountPayableRepository,
		orderRepo repository.PurchaseOrderRepository,
		productRepo repository.QuotationProductRepository,
	) error {
		var err error
		record, err = advanceRepo.GetByID(paymentID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		// Un pago PAGADO es terminal.
		if record.Status == entity.PaymentStatusPagado {
			return domain.ErrAlreadyPaid
		}

		receivable, err := receivableRepo.GetByID(record.AccountsReceivableID)
		if err != nil {
			return err
		}
		if receivable == nil {
			return domain.ErrNotFound
		}

		if in.SalesDeviation != nil {
			updated := receivable.TotalSale.Add(*in.SalesDeviation)
			receivable.UpdatedTotal = &updated
			record.SalesDeviation = in.SalesDeviation
		}

		converted, err := uc.matrix.Convert(record.Amount, record.Currency, receivable.Currency)
		if err != nil {
			return err
		}

		receivable.TotalPaid = receivable.TotalPaid.Add(converted)
		receivable.Balance = receivable.EffectiveTotal().Sub(receivable.TotalPaid)
		if receivable.TotalPaid.GreaterThanOrEqual(receivable.EffectiveTotal()) {
			receivable.IsPaid = true
		}

		now := time.Now()
		record.Status = entity.PaymentStatusPagado
		record.PaymentDate = &now
		record.UpdatedAt = now

		if thresholdMet(receivable) {
			created, err = uc.materializeOrders(receivable, proformaRepo, payableRepo, orderRepo, productRepo)
			if err != nil {
				return err
			}
		}

		if err := receivableRepo.Update(receivable); err != nil {
			return err
		}
		return advanceRepo.Update(record)
	})
	if err != nil {
		return nil, nil, err
	}
	return record, created, nil
}

func thresholdMet(r *entity.AccountsReceivable) bool {
	return r.AdvanceThreshold.GreaterThan(decimal.Zero) &&
		r.TotalPaid.GreaterThanOrEqual(r.AdvanceThreshold)
}

// materializeOrders decide las proformas elegibles (solo la de la moneda de
// la cuenta en cotizaciones fraccionadas; todas las del proyecto si no) y
// crea a lo más una orden por par (cuenta por pagar, proforma). El índice
// único de la tabla respalda la verificación contra pagos concurrentes.
func (uc *MarkAdvancePaymentPaidUseCase) materializeOrders(
	receivable *entity.AccountsReceivable,
	proformaRepo repository.ProformaRepository,
	payableRepo repository.AccountPayableRepository,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.QuotationProductRepository,
) ([]*entity.PurchaseOrder, error) {
	project, err := uc.projectRepo.GetByID(receivable.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	quotation, err := uc.quotationRepo.GetByID(project.QuotationID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}

	var proformas []*entity.Proforma
	if quotation.IsFractionate {
		proformas, err = proformaRepo.ListByProjectAndCurrency(project.ID, receivable.Currency)
	} else {
		proformas, err = proformaRepo.ListByProject(project.ID)
	}
	if err != nil {
		return nil, err
	}

	var created []*entity.PurchaseOrder
	for _, p := range proformas {
		payable, err := payableRepo.GetByProforma(p.ID)
		if err != nil {
			return nil, err
		}
		if payable == nil {
			continue // proforma sin cuenta por pagar: nada que fondear
		}
		exists, err := orderRepo.ExistsForPayableAndProforma(payable.ID, p.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		now := time.Now()
		order := &entity.PurchaseOrder{
			ProjectID:        project.ID,
			AccountPayableID: payable.ID,
			ProformaID:       p.ID,
			Status:           entity.OrderStatusNueva,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := orderRepo.Create(order); err != nil {
			return nil, err
		}
		linked, err := productRepo.LinkToPurchaseOrder(order.ID, p.ID, p.ProviderID, p.BrandID)
		if err != nil {
			return nil, err
		}
		uc.log.Info().
			Int64("projectId", project.ID).
			Int64("proformaId", p.ID).
			Int64("purchaseOrderId", order.ID).
			Int64("linkedProducts", linked).
			Msg("umbral de anticipo cruzado: orden de compra creada")
		created = append(created, order)
	}
	return created, nil
}

// notifyOrders avisa a administración por cada orden creada; la plantilla
// depende de si la proforma incluye producto de línea o solo pedido especial.
// Mejor esfuerzo: las fallas se registran y no afectan la operación.
func (uc *MarkAdvancePaymentPaidUseCase) notifyOrders(ctx context.Context, orders []*entity.PurchaseOrder) {
	admins, err := uc.userRepo.ListAdmins()
	if err != nil || len(admins) == 0 {
		if err != nil {
			uc.log.Warn().Err(err).Msg("no se pudieron cargar administradores para notificar")
		}
		return
	}
	to := make([]string, 0, len(admins))
	for _, a := range admins {
		to = append(to, a.Email)
	}

	for _, order := range orders {
		templateID := uc.templates.ProductPedido
		lines, err := uc.productRepo.ListByProforma(order.ProformaID)
		if err == nil {
			for _, line := range lines {
				product, err := uc.catalogRepo.GetByID(line.ProductID)
				if err == nil && product != nil && product.IsStock {
					templateID = uc.templates.ProductStock
					break
				}
			}
		}
		n := ports.Notification{
			To:         to,
			TemplateID: templateID,
			DynamicData: map[string]any{
				"purchaseOrderId": order.ID,
				"projectId":       order.ProjectID,
			},
		}
		if err := uc.notifier.Send(ctx, n); err != nil {
			uc.log.Warn().Err(err).Int64("purchaseOrderId", order.ID).
				Msg("falló la notificación de orden de compra")
		}
	}
}
