// Package projects convierte cotizaciones en proyectos: consecutivos
// legibles, despliegue de cuentas por cobrar (por moneda cuando la
// cotización es fraccionada), siembra de anticipos ya comprobados, comisiones
// y generación de documentos.
package projects

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/application/ports"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/commission"
	"github.com/benettihome/operaciones-api/internal/domain/currency"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
	"github.com/benettihome/operaciones-api/pkg/letras"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

// CreateProjectUseCase conversión de una cotización en proyecto.
type CreateProjectUseCase struct {
	txRunner      TxRunner
	quotationRepo repository.QuotationRepository
	projectRepo   repository.ProjectRepository
	branchRepo    repository.BranchRepository
	customerRepo  repository.CustomerRepository
	providerRepo  repository.ProviderRepository
	brandRepo     repository.BrandRepository
	documentRepo  repository.DocumentRepository
	matrix        currency.Matrix
	renderer      ports.DocumentRenderer
	outputDir     string
	log           *logger.Logger
}

// NewCreateProjectUseCase construye el caso de uso.
func NewCreateProjectUseCase(
	txRunner TxRunner,
	quotationRepo repository.QuotationRepository,
	projectRepo repository.ProjectRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
	providerRepo repository.ProviderRepository,
	brandRepo repository.BrandRepository,
	documentRepo repository.DocumentRepository,
	matrix currency.Matrix,
	renderer ports.DocumentRenderer,
	outputDir string,
	log *logger.Logger,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		txRunner:      txRunner,
		quotationRepo: quotationRepo,
		projectRepo:   projectRepo,
		branchRepo:    branchRepo,
		customerRepo:  customerRepo,
		providerRepo:  providerRepo,
		brandRepo:     brandRepo,
		documentRepo:  documentRepo,
		matrix:        matrix,
		renderer:      renderer,
		outputDir:     outputDir,
		log:           log,
	}
}

// Execute crea el proyecto de la cotización: un proyecto por cotización
// (conflicto si ya existe), productos a PEDIDO, cuentas por cobrar por moneda
// o consolidada, anticipos sembrados desde los comprobantes y comisiones por
// rol. Los PDF se generan tras el commit y sus fallas solo se registran.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, quotationID int64) (*entity.Project, error) {
	quotation, err := uc.quotationRepo.GetWithProductsAndProofs(quotationID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}

	// Rechazo temprano; la transacción vuelve a verificar antes de crear.
	if existing, err := uc.projectRepo.GetByQuotationID(quotation.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrConflict
	}

	branch, err := uc.branchRepo.GetByID(quotation.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}

	views, err := uc.resolveViews(quotation)
	if err != nil {
		return nil, err
	}

	var managers, designers []entity.CommissionAssignee
	if quotation.IsProjectManager {
		if managers, err = uc.quotationRepo.ListManagers(quotation.ID); err != nil {
			return nil, err
		}
	}
	if quotation.IsDesigner {
		if designers, err = uc.quotationRepo.ListDesigners(quotation.ID); err != nil {
			return nil, err
		}
	}

	var (
		project     *entity.Project
		receivables []*entity.AccountsReceivable
		seeded      []*entity.AdvancePaymentRecord
	)
	err = uc.txRunner.Run(ctx, func(
		projectRepo repository.ProjectRepository,
		receivableRepo repository.AccountsReceivableRepository,
		advanceRepo repository.AdvancePaymentRepository,
		commissionRepo repository.CommissionRepository,
		productRepo repository.QuotationProductRepository,
	) error {
		existing, err := projectRepo.GetByQuotationID(quotation.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}

		seq, err := projectRepo.NextSequence()
		if err != nil {
			return err
		}
		now := time.Now()
		project = &entity.Project{
			QuotationID: quotation.ID,
			ProjectKey:  fmt.Sprintf("%d%s", seq, branch.Initial),
			Reference:   fmt.Sprintf("%d%s", seq, branch.ShowroomInitial),
			Status:      entity.ProjectStatusEnProceso,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := projectRepo.Create(project); err != nil {
			return err
		}

		if err := productRepo.MarkPedido(quotation.ID); err != nil {
			return err
		}

		for _, view := range views {
			r := &entity.AccountsReceivable{
				ProjectID:        project.ID,
				Currency:         view.Currency,
				TotalSale:        view.Total,
				Balance:          view.Total,
				AdvanceThreshold: view.Advance,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := receivableRepo.Create(r); err != nil {
				return err
			}
			receivables = append(receivables, r)
		}

		seeded, err = uc.seedAdvances(quotation, receivables, advanceRepo, receivableRepo)
		if err != nil {
			return err
		}

		return uc.fanOutCommissions(quotation, project, managers, designers, commissionRepo)
	})
	if err != nil {
		return nil, err
	}

	uc.renderDocuments(quotation, project, views, seeded)
	return project, nil
}

// resolveViews una vista por moneda fraccionada, o la vista autoritativa
// única. Una cotización sin cifras resolubles no puede convertirse.
func (uc *CreateProjectUseCase) resolveViews(q *entity.Quotation) ([]currency.PriceView, error) {
	if q.IsFractionate {
		currencies := q.FractionalCurrencies()
		if len(currencies) == 0 {
			return nil, domain.ErrValidation
		}
		views := make([]currency.PriceView, 0, len(currencies))
		for _, c := range currencies {
			view, ok := currency.ResolveFor(q, c)
			if !ok {
				return nil, domain.ErrValidation
			}
			views = append(views, view)
		}
		return views, nil
	}
	view, ok := currency.Resolve(q)
	if !ok {
		return nil, domain.ErrValidation
	}
	return []currency.PriceView{view}, nil
}

// seedAdvances convierte los comprobantes de pago de la cotización en pagos
// PAGADO sobre la cuenta por cobrar de su moneda (o la primera, convirtiendo
// el importe, si ninguna coincide).
func (uc *CreateProjectUseCase) seedAdvances(
	q *entity.Quotation,
	receivables []*entity.AccountsReceivable,
	advanceRepo repository.AdvancePaymentRepository,
	receivableRepo repository.AccountsReceivableRepository,
) ([]*entity.AdvancePaymentRecord, error) {
	if len(q.PaymentProofs) == 0 || len(receivables) == 0 {
		return nil, nil
	}
	consecutive := map[int64]int{}
	var seeded []*entity.AdvancePaymentRecord
	for _, proof := range q.PaymentProofs {
		target := receivables[0]
		for _, r := range receivables {
			if r.Currency == proof.Currency {
				target = r
				break
			}
		}
		converted, err := uc.matrix.Convert(proof.Amount, proof.Currency, target.Currency)
		if err != nil {
			return nil, err
		}

		consecutive[target.ID]++
		paidAt := proof.Date
		record := &entity.AdvancePaymentRecord{
			AccountsReceivableID: target.ID,
			ConsecutiveID:        consecutive[target.ID],
			Amount:               proof.Amount,
			Currency:             proof.Currency,
			Method:               proof.Method,
			Status:               entity.PaymentStatusPagado,
			PaymentDate:          &paidAt,
			DocumentID:           proof.DocumentID,
			CreatedAt:            time.Now(),
			UpdatedAt:            time.Now(),
		}
		if err := advanceRepo.Create(record); err != nil {
			return nil, err
		}
		seeded = append(seeded, record)

		target.TotalPaid = target.TotalPaid.Add(converted)
		target.Balance = target.EffectiveTotal().Sub(target.TotalPaid)
		if target.TotalPaid.GreaterThanOrEqual(target.EffectiveTotal()) {
			target.IsPaid = true
		}
		if err := receivableRepo.Update(target); err != nil {
			return nil, err
		}
	}
	return seeded, nil
}

// fanOutCommissions un registro inmutable por entrada del plan. Sin vista
// autoritativa no hay base de cálculo y el despliegue se omite con aviso.
func (uc *CreateProjectUseCase) fanOutCommissions(
	q *entity.Quotation,
	project *entity.Project,
	managers, designers []entity.CommissionAssignee,
	commissionRepo repository.CommissionRepository,
) error {
	view, ok := currency.Resolve(q)
	if !ok {
		uc.log.Warn().Int64("quotationId", q.ID).
			Msg("cotización sin moneda autoritativa: comisiones omitidas")
		return nil
	}
	for _, e := range commission.Plan(q, view, managers, designers) {
		record := &entity.CommissionPaymentRecord{
			ProjectID:      project.ID,
			UserID:         e.UserID,
			Role:           e.Role,
			Classification: e.Classification,
			Percentage:     e.Percentage,
			Amount:         e.Amount,
			Currency:       e.Currency,
			Status:         entity.PaymentStatusPendiente,
			CreatedAt:      time.Now(),
		}
		if err := commissionRepo.Create(record); err != nil {
			return err
		}
	}
	return nil
}

// renderDocuments cotización de cliente y recibos de anticipo, tras el
// commit. Mejor esfuerzo: cualquier falla se registra y no revierte nada.
func (uc *CreateProjectUseCase) renderDocuments(
	q *entity.Quotation,
	project *entity.Project,
	views []currency.PriceView,
	seeded []*entity.AdvancePaymentRecord,
) {
	customerName := ""
	if customer, err := uc.customerRepo.GetByID(q.CustomerID); err == nil && customer != nil {
		customerName = customer.Name
	}

	view := views[0]
	lines := make([]ports.QuoteLine, 0, len(q.Products))
	for _, p := range q.Products {
		lines = append(lines, ports.QuoteLine{
			ProductName: fmt.Sprintf("Producto %d", p.ProductID),
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
			Subtotal:    p.Quantity.Mul(p.UnitPrice),
		})
	}
	quote, err := uc.renderer.RenderClientQuote(ports.ClientQuoteData{
		ProjectKey:   project.ProjectKey,
		Reference:    project.Reference,
		CustomerName: customerName,
		Currency:     view.Currency,
		Subtotal:     view.Subtotal,
		Discount:     view.Discount,
		IVA:          view.IVA,
		Total:        view.Total,
		Advance:      view.Advance,
		Lines:        lines,
		IssuedAt:     time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("projectId", project.ID).Msg("falló el PDF de cotización de cliente")
	} else {
		uc.archive(project, "cotizacion", quote)
	}

	uc.renderProviderOrders(q, project)

	for _, record := range seeded {
		paidAt := time.Now()
		if record.PaymentDate != nil {
			paidAt = *record.PaymentDate
		}
		receipt, err := uc.renderer.RenderAdvanceReceipt(ports.AdvanceReceiptData{
			ProjectKey:    project.ProjectKey,
			ConsecutiveID: record.ConsecutiveID,
			CustomerName:  customerName,
			Amount:        record.Amount,
			AmountInWords: letras.Monto(record.Amount),
			Currency:      record.Currency,
			Method:        record.Method,
			PaymentDate:   paidAt,
		})
		if err != nil {
			uc.log.Warn().Err(err).Int("consecutiveId", record.ConsecutiveID).
				Msg("falló el recibo de anticipo")
			continue
		}
		uc.archive(project, "recibo", receipt)
	}
}

// renderProviderOrders una orden de compra por par (proveedor, marca) de las
// líneas de la cotización, numerada según el orden de aparición. Mismo
// contrato de mejor esfuerzo que el resto de los documentos.
func (uc *CreateProjectUseCase) renderProviderOrders(q *entity.Quotation, project *entity.Project) {
	type tripleKey struct{ providerID, brandID int64 }
	var keys []tripleKey
	groups := map[tripleKey][]*entity.QuotationProduct{}
	for _, p := range q.Products {
		k := tripleKey{p.ProviderID, p.BrandID}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], p)
	}

	for i, k := range keys {
		group := groups[k]
		lines := make([]ports.QuoteLine, 0, len(group))
		total := decimal.Zero
		for _, p := range group {
			subtotal := p.Quantity.Mul(p.UnitPrice)
			lines = append(lines, ports.QuoteLine{
				ProductName: fmt.Sprintf("Producto %d", p.ProductID),
				Quantity:    p.Quantity,
				UnitPrice:   p.UnitPrice,
				Subtotal:    subtotal,
			})
			total = total.Add(subtotal)
		}

		providerName := ""
		if provider, err := uc.providerRepo.GetByID(k.providerID); err == nil && provider != nil {
			providerName = provider.Name
		}
		brandName := ""
		if brand, err := uc.brandRepo.GetByID(k.brandID); err == nil && brand != nil {
			brandName = brand.Name
		}

		order, err := uc.renderer.RenderPurchaseOrder(ports.PurchaseOrderData{
			ProjectKey:   project.ProjectKey,
			OrderID:      int64(i + 1),
			ProviderName: providerName,
			BrandName:    brandName,
			Currency:     group[0].Currency,
			Total:        total,
			Lines:        lines,
			IssuedAt:     time.Now(),
		})
		if err != nil {
			uc.log.Warn().Err(err).
				Int64("providerId", k.providerID).
				Int64("brandId", k.brandID).
				Msg("falló el PDF de orden de compra al proveedor")
			continue
		}
		uc.archive(project, "orden", order)
	}
}

// archive persiste el PDF en disco y registra el documento.
func (uc *CreateProjectUseCase) archive(project *entity.Project, kind string, data []byte) {
	fileName := fmt.Sprintf("%s-%s-%s.pdf", kind, project.ProjectKey, uuid.New().String())
	path := filepath.Join(uc.outputDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		uc.log.Warn().Err(err).Str("path", path).Msg("no se pudo archivar el PDF")
		return
	}
	doc := &entity.Document{
		FileName:  fileName,
		Path:      path,
		MimeType:  "application/pdf",
		CreatedAt: time.Now(),
	}
	if err := uc.documentRepo.Create(doc); err != nil {
		uc.log.Warn().Err(err).Str("path", path).Msg("no se pudo registrar el documento")
	}
}
