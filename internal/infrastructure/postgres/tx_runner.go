package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/benettihome/operaciones-api/internal/application/logistics"
	"github.com/benettihome/operaciones-api/internal/application/payments"
	"github.com/benettihome/operaciones-api/internal/application/proformas"
	"github.com/benettihome/operaciones-api/internal/application/projects"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

var _ payments.TxRunner = (*PaymentsTxRunner)(nil)
var _ proformas.TxRunner = (*ProformasTxRunner)(nil)
var _ projects.TxRunner = (*ProjectsTxRunner)(nil)
var _ logistics.TxRunner = (*LogisticsTxRunner)(nil)

// withTx inicia una transacción, ejecuta fn y hace Commit o Rollback. Las
// fallas de serialización salen traducidas al sentinela de dominio para que
// el caso de uso reintente.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return translateTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translateTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// PaymentsTxRunner transacciones del motor de umbral de pagos.
type PaymentsTxRunner struct {
	pool *pgxpool.Pool
}

// NewPaymentsTxRunner construye el runner con el pool.
func NewPaymentsTxRunner(pool *pgxpool.Pool) *PaymentsTxRunner {
	return &PaymentsTxRunner{pool: pool}
}

// Run transacción de cobranza: marca de pago, umbral y materialización de
// órdenes con repos atados a la misma tx.
func (r *PaymentsTxRunner) Run(ctx context.Context, fn func(
	advanceRepo repository.AdvancePaymentRepository,
	receivableRepo repository.AccountsReceivableRepository,
	proformaRepo repository.ProformaRepository,
	payableRepo repository.AccountPayableRepository,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.QuotationProductRepository,
) error) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(
			NewAdvancePaymentRepository(tx),
			NewAccountsReceivableRepository(tx),
			NewProformaRepository(tx),
			NewAccountPayableRepository(tx),
			NewPurchaseOrderRepository(tx),
			NewQuotationProductRepository(tx),
		)
	})
}

// RunPayables transacción de abonos a cuentas por pagar y arranque de
// producción.
func (r *PaymentsTxRunner) RunPayables(ctx context.Context, fn func(
	historyRepo repository.PayableHistoryRepository,
	payableRepo repository.AccountPayableRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(
			NewPayableHistoryRepository(tx),
			NewAccountPayableRepository(tx),
			NewPurchaseOrderRepository(tx),
		)
	})
}

// ProformasTxRunner transacción del reconciliador de proformas.
type ProformasTxRunner struct {
	pool *pgxpool.Pool
}

// NewProformasTxRunner construye el runner con el pool.
func NewProformasTxRunner(pool *pgxpool.Pool) *ProformasTxRunner {
	return &ProformasTxRunner{pool: pool}
}

func (r *ProformasTxRunner) Run(ctx context.Context, fn func(
	proformaRepo repository.ProformaRepository,
	payableRepo repository.AccountPayableRepository,
	productRepo repository.QuotationProductRepository,
	receivableRepo repository.AccountsReceivableRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(
			NewProformaRepository(tx),
			NewAccountPayableRepository(tx),
			NewQuotationProductRepository(tx),
			NewAccountsReceivableRepository(tx),
			NewPurchaseOrderRepository(tx),
		)
	})
}

// ProjectsTxRunner transacción de conversión cotización -> proyecto.
type ProjectsTxRunner struct {
	pool *pgxpool.Pool
}

// NewProjectsTxRunner construye el runner con el pool.
func NewProjectsTxRunner(pool *pgxpool.Pool) *ProjectsTxRunner {
	return &ProjectsTxRunner{pool: pool}
}

func (r *ProjectsTxRunner) Run(ctx context.Context, fn func(
	projectRepo repository.ProjectRepository,
	receivableRepo repository.AccountsReceivableRepository,
	advanceRepo repository.AdvancePaymentRepository,
	commissionRepo repository.CommissionRepository,
	productRepo repository.QuotationProductRepository,
) error) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(
			NewProjectRepository(tx),
			NewAccountsReceivableRepository(tx),
			NewAdvancePaymentRepository(tx),
			NewCommissionRepository(tx),
			NewQuotationProductRepository(tx),
		)
	})
}

// LogisticsTxRunner transacción de la cascada logística.
type LogisticsTxRunner struct {
	pool *pgxpool.Pool
}

// NewLogisticsTxRunner construye el runner con el pool.
func NewLogisticsTxRunner(pool *pgxpool.Pool) *LogisticsTxRunner {
	return &LogisticsTxRunner{pool: pool}
}

func (r *LogisticsTxRunner) Run(ctx context.Context, fn func(
	containerRepo repository.ContainerRepository,
	collectionRepo repository.CollectionRepository,
	orderRepo repository.PurchaseOrderRepository,
	payableRepo repository.AccountPayableRepository,
) error) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(
			NewContainerRepository(tx),
			NewCollectionRepository(tx),
			NewPurchaseOrderRepository(tx),
			NewAccountPayableRepository(tx),
		)
	})
}
