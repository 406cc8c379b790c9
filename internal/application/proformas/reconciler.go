// Package proformas reconcilia proformas de proveedor contra sus proyectos:
// unicidad por (proyecto, proveedor, marca), ligado de productos, alta de la
// cuenta por pagar y evaluación inmediata del umbral de anticipo.
package proformas

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/application/ports"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

// Templates ids de plantilla SendGrid para los avisos a administración.
type Templates struct {
	NewProforma    string
	UpdateProforma string
}

// ReconcilerUseCase casos de uso de proformas.
type ReconcilerUseCase struct {
	txRunner      TxRunner
	projectRepo   repository.ProjectRepository
	quotationRepo repository.QuotationRepository
	proformaRepo  repository.ProformaRepository
	userRepo      repository.UserRepository
	notifier      ports.NotificationService
	templates     Templates
	log           *logger.Logger
}

// NewReconcilerUseCase construye el caso de uso.
func NewReconcilerUseCase(
	txRunner TxRunner,
	projectRepo repository.ProjectRepository,
	quotationRepo repository.QuotationRepository,
	proformaRepo repository.ProformaRepository,
	userRepo repository.UserRepository,
	notifier ports.NotificationService,
	templates Templates,
	log *logger.Logger,
) *ReconcilerUseCase {
	return &ReconcilerUseCase{
		txRunner:      txRunner,
		projectRepo:   projectRepo,
		quotationRepo: quotationRepo,
		proformaRepo:  proformaRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		templates:     templates,
		log:           log,
	}
}

// Create da de alta una proforma. Falla con conflicto si ya existe una para
// el triple (proyecto, proveedor, marca) y con validación si falta documento
// o el monto no es positivo. En la misma transacción liga los productos del
// triple, crea la cuenta por pagar y, si la cobranza acumulada ya cubre el
// umbral, materializa la orden de compra en estado PENDIENTE (vía de captura
// tardía: la proforma llegó después de los pagos).
func (uc *ReconcilerUseCase) Create(ctx context.Context, in dto.CreateProformaRequest) (*entity.Proforma, int64, error) {
	if in.DocumentID == nil {
		return nil, 0, domain.ErrDocumentoRequerido
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, 0, domain.ErrValidation
	}

	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, 0, err
	}
	if project == nil {
		return nil, 0, domain.ErrNotFound
	}
	quotation, err := uc.quotationRepo.GetByID(project.QuotationID)
	if err != nil {
		return nil, 0, err
	}
	if quotation == nil {
		return nil, 0, domain.ErrNotFound
	}

	var (
		proforma *entity.Proforma
		linked   int64
	)
	err = uc.txRunner.Run(ctx, func(
		proformaRepo repository.ProformaRepository,
		payableRepo repository.AccountPayableRepository,
		productRepo repository.QuotationProductRepository,
		receivableRepo repository.AccountsReceivableRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		exists, err := proformaRepo.ExistsTriple(in.ProjectID, in.ProviderID, in.BrandID, 0)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrProformaDuplicada
		}

		now := time.Now()
		proforma = &entity.Proforma{
			ProjectID:  in.ProjectID,
			ProviderID: in.ProviderID,
			BrandID:    in.BrandID,
			Amount:     in.Amount,
			Currency:   entity.Currency(in.Currency),
			DocumentID: in.DocumentID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := proformaRepo.Create(proforma); err != nil {
			return err
		}

		linked, err = productRepo.LinkToProforma(proforma.ID, quotation.ID, in.ProviderID, in.BrandID)
		if err != nil {
			return err
		}

		pid := proforma.ID
		payable := &entity.AccountPayable{
			ProjectID:  in.ProjectID,
			ProformaID: &pid,
			Currency:   proforma.Currency,
			Total:      proforma.Amount,
			Balance:    proforma.Amount,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := payableRepo.Create(payable); err != nil {
			return err
		}

		return uc.evaluateCollected(quotation, proforma, payable, receivableRepo, orderRepo, productRepo)
	})
	if err != nil {
		return nil, 0, err
	}

	uc.notifyAdmins(ctx, uc.templates.NewProforma, proforma)
	return proforma, linked, nil
}

// evaluateCollected cubre las proformas agregadas cuando el proyecto ya lleva
// cobranza: si la cuenta por cobrar relevante ya cruzó su umbral, la orden se
// crea de inmediato (PENDIENTE) con el mismo resguardo de a-lo-más-una.
func (uc *ReconcilerUseCase) evaluateCollected(
	quotation *entity.Quotation,
	proforma *entity.Proforma,
	payable *entity.AccountPayable,
	receivableRepo repository.AccountsReceivableRepository,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.QuotationProductRepository,
) error {
	receivables, err := receivableRepo.ListByProject(proforma.ProjectID)
	if err != nil {
		return err
	}
	var relevant *entity.AccountsReceivable
	for _, r := range receivables {
		if !quotation.IsFractionate || r.Currency == proforma.Currency {
			relevant = r
			break
		}
	}
	if relevant == nil {
		return nil
	}
	if relevant.AdvanceThreshold.LessThanOrEqual(decimal.Zero) ||
		relevant.TotalPaid.LessThan(relevant.AdvanceThreshold) {
		return nil
	}

	exists, err := orderRepo.ExistsForPayableAndProforma(payable.ID, proforma.ID)
	if err != nil || exists {
		return err
	}
	now := time.Now()
	order := &entity.PurchaseOrder{
		ProjectID:        proforma.ProjectID,
		AccountPayableID: payable.ID,
		ProformaID:       proforma.ID,
		Status:           entity.OrderStatusPendiente,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := orderRepo.Create(order); err != nil {
		return err
	}
	if _, err := productRepo.LinkToPurchaseOrder(order.ID, proforma.ID, proforma.ProviderID, proforma.BrandID); err != nil {
		return err
	}
	uc.log.Info().
		Int64("proformaId", proforma.ID).
		Int64("purchaseOrderId", order.ID).
		Msg("cobranza previa ya cubría el umbral: orden creada al capturar la proforma")
	return nil
}

// Update modifica monto, documento o proveedor/marca. La unicidad del triple
// se verifica excluyendo la propia proforma; las cuentas por pagar ya
// liquidadas (PAGADO) no se redimensionan.
func (uc *ReconcilerUseCase) Update(ctx context.Context, proformaID int64, in dto.UpdateProformaRequest) (*entity.Proforma, error) {
	var proforma *entity.Proforma
	err := uc.txRunner.Run(ctx, func(
		proformaRepo repository.ProformaRepository,
		payableRepo repository.AccountPayableRepository,
		productRepo repository.QuotationProductRepository,
		_ repository.AccountsReceivableRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		var err error
		proforma, err = proformaRepo.GetByID(proformaID)
		if err != nil {
			return err
		}
		if proforma == nil {
			return domain.ErrNotFound
		}

		providerID := proforma.ProviderID
		brandID := proforma.BrandID
		if in.ProviderID != nil {
			providerID = *in.ProviderID
		}
		if in.BrandID != nil {
			brandID = *in.BrandID
		}
		if providerID != proforma.ProviderID || brandID != proforma.BrandID {
			exists, err := proformaRepo.ExistsTriple(proforma.ProjectID, providerID, brandID, proforma.ID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrProformaDuplicada
			}
			proforma.ProviderID = providerID
			proforma.BrandID = brandID
		}
		if in.DocumentID != nil {
			proforma.DocumentID = in.DocumentID
		}
		if in.Amount != nil {
			if in.Amount.LessThanOrEqual(decimal.Zero) {
				return domain.ErrValidation
			}
			proforma.Amount = *in.Amount

			payable, err := payableRepo.GetByProforma(proforma.ID)
			if err != nil {
				return err
			}
			if payable != nil && !payable.IsPaid {
				payable.Total = proforma.Amount
				payable.Balance = payable.Total.Sub(payable.TotalPaid)
				payable.UpdatedAt = time.Now()
				if err := payableRepo.Update(payable); err != nil {
					return err
				}
			}
		}
		proforma.UpdatedAt = time.Now()
		return proformaRepo.Update(proforma)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyAdmins(ctx, uc.templates.UpdateProforma, proforma)
	return proforma, nil
}

// notifyAdmins aviso de mejor esfuerzo a administración.
func (uc *ReconcilerUseCase) notifyAdmins(ctx context.Context, templateID string, proforma *entity.Proforma) {
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
	n := ports.Notification{
		To:         to,
		TemplateID: templateID,
		DynamicData: map[string]any{
			"proformaId": proforma.ID,
			"projectId":  proforma.ProjectID,
			"amount":     proforma.Amount.String(),
			"currency":   string(proforma.Currency),
		},
	}
	if err := uc.notifier.Send(ctx, n); err != nil {
		uc.log.Warn().Err(err).Int64("proformaId", proforma.ID).Msg("falló el aviso de proforma")
	}
}
