package projects

import (
	"context"

	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

// TxRunner transacción de conversión cotización -> proyecto: consecutivo,
// proyecto, cuentas por cobrar, siembra de anticipos y comisiones confirman o
// revierten juntas. Los PDF quedan fuera: son de mejor esfuerzo tras el commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		projectRepo repository.ProjectRepository,
		receivableRepo repository.AccountsReceivableRepository,
		advanceRepo repository.AdvancePaymentRepository,
		commissionRepo repository.CommissionRepository,
		productRepo repository.QuotationProductRepository,
	) error) error
}
