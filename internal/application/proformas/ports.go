package proformas

import (
	"context"

	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

// TxRunner transacción del reconciliador: la verificación de unicidad del
// triple (proyecto, proveedor, marca), el alta de la cuenta por pagar y la
// evaluación inmediata del umbral deben confirmar o revertir juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		proformaRepo repository.ProformaRepository,
		payableRepo repository.AccountPayableRepository,
		productRepo repository.QuotationProductRepository,
		receivableRepo repository.AccountsReceivableRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}
