package logistics

import (
	"context"

	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

// TxRunner agrupa en una transacción las mutaciones de la cascada logística:
// el contenedor y toda orden alcanzable cambian juntos o no cambian.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		containerRepo repository.ContainerRepository,
		collectionRepo repository.CollectionRepository,
		orderRepo repository.PurchaseOrderRepository,
		payableRepo repository.AccountPayableRepository,
	) error) error
}
