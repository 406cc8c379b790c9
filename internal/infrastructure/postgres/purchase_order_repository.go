package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL (usable con pool o tx).
// El índice único sobre (account_payable_id, proforma_id) respalda la regla de
// a-lo-más-una-orden contra creaciones concurrentes: la verificación
// existe-entonces-crea corre en transacción y el índice es el tope.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `
	id, project_id, account_payable_id, proforma_id, status,
	production_end_date, production_real_end_date, arrival_date, shipping_date,
	collection_id, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(
		&po.ID, &po.ProjectID, &po.AccountPayableID, &po.ProformaID, &po.Status,
		&po.ProductionEndDate, &po.ProductionRealEndDate, &po.ArrivalDate, &po.ShippingDate,
		&po.CollectionID, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan purchase order: %w", err)
	}
	return &po, nil
}

// Create persiste la orden y asigna su ID.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (project_id, account_payable_id, proforma_id, status, production_end_date, production_real_end_date, arrival_date, shipping_date, collection_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		po.ProjectID, po.AccountPayableID, po.ProformaID, po.Status,
		po.ProductionEndDate, po.ProductionRealEndDate, po.ArrivalDate, po.ShippingDate,
		po.CollectionID, po.CreatedAt, po.UpdatedAt,
	).Scan(&po.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *PurchaseOrderRepo) GetByID(id int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	return scanOrder(r.q.QueryRow(context.Background(), query, id))
}

// ExistsForPayableAndProforma verificación previa a la creación.
func (r *PurchaseOrderRepo) ExistsForPayableAndProforma(accountPayableID, proformaID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(), `
		SELECT EXISTS (
			SELECT 1 FROM purchase_orders WHERE account_payable_id = $1 AND proforma_id = $2
		)`, accountPayableID, proformaID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists purchase order: %w", err)
	}
	return exists, nil
}

// GetForPayableAndProforma la orden del par, nil si no existe.
func (r *PurchaseOrderRepo) GetForPayableAndProforma(accountPayableID, proformaID int64) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE account_payable_id = $1 AND proforma_id = $2`
	return scanOrder(r.q.QueryRow(context.Background(), query, accountPayableID, proformaID))
}

func (r *PurchaseOrderRepo) list(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.ProjectID, &po.AccountPayableID, &po.ProformaID,
			&po.Status, &po.ProductionEndDate, &po.ProductionRealEndDate, &po.ArrivalDate,
			&po.ShippingDate, &po.CollectionID, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &po)
	}
	return out, rows.Err()
}

// ListByProject órdenes del proyecto.
func (r *PurchaseOrderRepo) ListByProject(projectID int64) ([]*entity.PurchaseOrder, error) {
	return r.list(`SELECT `+orderColumns+` FROM purchase_orders WHERE project_id = $1 ORDER BY id`, projectID)
}

// ListByContainer toda orden alcanzable desde el contenedor vía sus
// colecciones.
func (r *PurchaseOrderRepo) ListByContainer(containerID int64) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT po.id, po.project_id, po.account_payable_id, po.proforma_id, po.status,
		       po.production_end_date, po.production_real_end_date, po.arrival_date, po.shipping_date,
		       po.collection_id, po.created_at, po.updated_at
		FROM purchase_orders po
		JOIN collections c ON c.id = po.collection_id
		WHERE c.container_id = $1
		ORDER BY po.id`
	return r.list(query, containerID)
}

// ListPendingCollection órdenes EN_RECOLECCION sin colección asignada.
func (r *PurchaseOrderRepo) ListPendingCollection() ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE status = $1 AND collection_id IS NULL ORDER BY id`
	return r.list(query, entity.OrderStatusEnRecoleccion)
}

// ListProductionDue órdenes EN_PRODUCCION cuya fecha de fin (real si está
// capturada, estimada si no) ya pasó a la fecha dada.
func (r *PurchaseOrderRepo) ListProductionDue(asOf time.Time) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM purchase_orders
		WHERE status = $1 AND COALESCE(production_real_end_date, production_end_date) <= $2
		ORDER BY id`
	return r.list(query, entity.OrderStatusEnProduccion, asOf)
}

// Update persiste los campos mutables de la orden.
func (r *PurchaseOrderRepo) Update(po *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET
			status = $2, production_end_date = $3, production_real_end_date = $4,
			arrival_date = $5, shipping_date = $6, collection_id = $7, updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.Status, po.ProductionEndDate, po.ProductionRealEndDate,
		po.ArrivalDate, po.ShippingDate, po.CollectionID,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}
