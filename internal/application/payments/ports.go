package payments

import (
	"context"

	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La verificación existe-entonces-crea de
// órdenes de compra es el punto de linealización del motor y DEBE correr aquí.
type TxRunner interface {
	// Run transacción del umbral de cobranza (pagos de anticipo).
	Run(ctx context.Context, fn func(
		advanceRepo repository.AdvancePaymentRepository,
		receivableRepo repository.AccountsReceivableRepository,
		proformaRepo repository.ProformaRepository,
		payableRepo repository.AccountPayableRepository,
		orderRepo repository.PurchaseOrderRepository,
		productRepo repository.QuotationProductRepository,
	) error) error

	// RunPayables transacción de abonos a cuentas por pagar.
	RunPayables(ctx context.Context, fn func(
		historyRepo repository.PayableHistoryRepository,
		payableRepo repository.AccountPayableRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
