package repository

import (
	"time"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// PurchaseOrderRepository órdenes de compra. Create debe estar respaldado por
// un índice único sobre (account_payable_id, proforma_id): la verificación
// existe-entonces-crea del motor de pagos corre dentro de una transacción y
// el índice es el tope contra dobles creaciones concurrentes.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id int64) (*entity.PurchaseOrder, error)
	// ExistsForPayableAndProforma verificación previa a la creación.
	ExistsForPayableAndProforma(accountPayableID, proformaID int64) (bool, error)
	// GetForPayableAndProforma la orden del par, nil si no existe.
	GetForPayableAndProforma(accountPayableID, proformaID int64) (*entity.PurchaseOrder, error)
	ListByProject(projectID int64) ([]*entity.PurchaseOrder, error)
	// ListByContainer toda orden alcanzable desde el contenedor vía sus
	// colecciones (para la cascada de fechas).
	ListByContainer(containerID int64) ([]*entity.PurchaseOrder, error)
	// ListPendingCollection órdenes EN_RECOLECCION sin colección asignada.
	ListPendingCollection() ([]*entity.PurchaseOrder, error)
	// ListProductionDue órdenes EN_PRODUCCION cuya fecha (real o estimada) de
	// fin de producción ya pasó a la fecha dada.
	ListProductionDue(asOf time.Time) ([]*entity.PurchaseOrder, error)
	Update(po *entity.PurchaseOrder) error
}
