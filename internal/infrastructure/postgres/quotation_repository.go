package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository sobre PostgreSQL
// (usable con pool o tx). Las cifras por moneda viven en quotation_prices,
// una fila por (cotización, moneda).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

const quotationColumns = `
	id, customer_id, branch_id, exchange_rate_quotation, is_fractionate,
	type_fractional_eur, type_fractional_usd, type_fractional_mxn,
	is_architect, architect_id, architect_percentage,
	is_referenced_customer, referenced_customer_id, referenced_percentage,
	is_project_manager, is_designer, showroom_manager_id,
	created_at, updated_at`

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var q entity.Quotation
	err := row.Scan(
		&q.ID, &q.CustomerID, &q.BranchID, &q.ExchangeRateQuotation, &q.IsFractionate,
		&q.TypeFractionalEUR, &q.TypeFractionalUSD, &q.TypeFractionalMXN,
		&q.IsArchitect, &q.ArchitectID, &q.ArchitectPercentage,
		&q.IsReferencedCustomer, &q.ReferencedCustomerID, &q.ReferencedPercentage,
		&q.IsProjectManager, &q.IsDesigner, &q.ShowroomManagerID,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan quotation: %w", err)
	}
	return &q, nil
}

// GetByID obtiene la cotización con sus cifras por moneda.
func (r *QuotationRepo) GetByID(id int64) (*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id = $1`
	q, err := scanQuotation(r.q.QueryRow(context.Background(), query, id))
	if err != nil || q == nil {
		return nil, err
	}
	if err := r.loadPrices(q); err != nil {
		return nil, err
	}
	return q, nil
}

// GetWithProductsAndProofs carga además las líneas de producto y los
// comprobantes de pago (lo que necesita la conversión a proyecto).
func (r *QuotationRepo) GetWithProductsAndProofs(id int64) (*entity.Quotation, error) {
	q, err := r.GetByID(id)
	if err != nil || q == nil {
		return nil, err
	}

	products, err := r.listProducts(q.ID)
	if err != nil {
		return nil, err
	}
	q.Products = products

	proofs, err := r.listProofs(q.ID)
	if err != nil {
		return nil, err
	}
	q.PaymentProofs = proofs
	return q, nil
}

func (r *QuotationRepo) loadPrices(q *entity.Quotation) error {
	query := `
		SELECT currency, subtotal, discount, iva, total, advance, advance_pct, balance, exchange_rate
		FROM quotation_prices WHERE quotation_id = $1`
	rows, err := r.q.Query(context.Background(), query, q.ID)
	if err != nil {
		return fmt.Errorf("list quotation prices: %w", err)
	}
	defer rows.Close()

	q.Prices = map[entity.Currency]entity.PriceSet{}
	for rows.Next() {
		var c entity.Currency
		var p entity.PriceSet
		if err := rows.Scan(&c, &p.Subtotal, &p.Discount, &p.IVA, &p.Total,
			&p.Advance, &p.AdvancePct, &p.Balance, &p.ExchangeRate); err != nil {
			return fmt.Errorf("scan quotation price: %w", err)
		}
		q.Prices[c] = p
	}
	return rows.Err()
}

func (r *QuotationRepo) listProducts(quotationID int64) ([]*entity.QuotationProduct, error) {
	query := `
		SELECT id, quotation_id, product_id, provider_id, brand_id, classification,
		       quantity, unit_price, currency, status, proforma_id, purchase_order_id,
		       created_at, updated_at
		FROM quotation_products WHERE quotation_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("list quotation products: %w", err)
	}
	defer rows.Close()

	var out []*entity.QuotationProduct
	for rows.Next() {
		qp, err := scanQuotationProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, qp)
	}
	return out, rows.Err()
}

func (r *QuotationRepo) listProofs(quotationID int64) ([]entity.PaymentProof, error) {
	query := `
		SELECT amount, currency, date, method, document_id
		FROM payment_proofs WHERE quotation_id = $1 ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("list payment proofs: %w", err)
	}
	defer rows.Close()

	var out []entity.PaymentProof
	for rows.Next() {
		var p entity.PaymentProof
		if err := rows.Scan(&p.Amount, &p.Currency, &p.Date, &p.Method, &p.DocumentID); err != nil {
			return nil, fmt.Errorf("scan payment proof: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListManagers gerentes de proyecto asignados con sus divisiones.
func (r *QuotationRepo) ListManagers(quotationID int64) ([]entity.CommissionAssignee, error) {
	return r.listAssignees(quotationID, "GERENTE_PROYECTO")
}

// ListDesigners diseñadores asignados con sus divisiones.
func (r *QuotationRepo) ListDesigners(quotationID int64) ([]entity.CommissionAssignee, error) {
	return r.listAssignees(quotationID, "DISENADOR")
}

func (r *QuotationRepo) listAssignees(quotationID int64, role string) ([]entity.CommissionAssignee, error) {
	query := `
		SELECT user_id, percentage, is_main
		FROM quotation_assignees WHERE quotation_id = $1 AND role = $2 ORDER BY user_id`
	rows, err := r.q.Query(context.Background(), query, quotationID, role)
	if err != nil {
		return nil, fmt.Errorf("list assignees: %w", err)
	}
	defer rows.Close()

	var out []entity.CommissionAssignee
	for rows.Next() {
		var a entity.CommissionAssignee
		if err := rows.Scan(&a.UserID, &a.Percentage, &a.IsMain); err != nil {
			return nil, fmt.Errorf("scan assignee: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		splits, err := r.listSplits(quotationID, out[i].UserID, role)
		if err != nil {
			return nil, err
		}
		out[i].Splits = splits
	}
	return out, nil
}

func (r *QuotationRepo) listSplits(quotationID, userID int64, role string) ([]entity.ClassificationSplit, error) {
	query := `
		SELECT classification, percentage
		FROM quotation_assignee_splits
		WHERE quotation_id = $1 AND user_id = $2 AND role = $3 ORDER BY classification`
	rows, err := r.q.Query(context.Background(), query, quotationID, userID, role)
	if err != nil {
		return nil, fmt.Errorf("list splits: %w", err)
	}
	defer rows.Close()

	var out []entity.ClassificationSplit
	for rows.Next() {
		var s entity.ClassificationSplit
		if err := rows.Scan(&s.Classification, &s.Percentage); err != nil {
			return nil, fmt.Errorf("scan split: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update persiste los campos mutables de la cotización.
func (r *QuotationRepo) Update(q *entity.Quotation) error {
	query := `
		UPDATE quotations SET
			exchange_rate_quotation = $2, is_fractionate = $3,
			type_fractional_eur = $4, type_fractional_usd = $5, type_fractional_mxn = $6,
			updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		q.ID, q.ExchangeRateQuotation, q.IsFractionate,
		q.TypeFractionalEUR, q.TypeFractionalUSD, q.TypeFractionalMXN,
	)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	return nil
}

var _ repository.QuotationProductRepository = (*QuotationProductRepo)(nil)

// QuotationProductRepo re-liga líneas de producto a proformas y órdenes.
type QuotationProductRepo struct {
	q Querier
}

// NewQuotationProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationProductRepository(q Querier) *QuotationProductRepo {
	return &QuotationProductRepo{q: q}
}

func scanQuotationProduct(row pgx.Row) (*entity.QuotationProduct, error) {
	var qp entity.QuotationProduct
	err := row.Scan(
		&qp.ID, &qp.QuotationID, &qp.ProductID, &qp.ProviderID, &qp.BrandID,
		&qp.Classification, &qp.Quantity, &qp.UnitPrice, &qp.Currency, &qp.Status,
		&qp.ProformaID, &qp.PurchaseOrderID, &qp.CreatedAt, &qp.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan quotation product: %w", err)
	}
	return &qp, nil
}

// ListByProforma líneas actualmente ligadas a la proforma.
func (r *QuotationProductRepo) ListByProforma(proformaID int64) ([]*entity.QuotationProduct, error) {
	query := `
		SELECT id, quotation_id, product_id, provider_id, brand_id, classification,
		       quantity, unit_price, currency, status, proforma_id, purchase_order_id,
		       created_at, updated_at
		FROM quotation_products WHERE proforma_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, proformaID)
	if err != nil {
		return nil, fmt.Errorf("list products by proforma: %w", err)
	}
	defer rows.Close()

	var out []*entity.QuotationProduct
	for rows.Next() {
		qp, err := scanQuotationProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, qp)
	}
	return out, rows.Err()
}

// LinkToProforma liga las líneas del triple (cotización, proveedor, marca) a
// la proforma; devuelve cuántas se ligaron.
func (r *QuotationProductRepo) LinkToProforma(proformaID, quotationID, providerID, brandID int64) (int64, error) {
	query := `
		UPDATE quotation_products SET proforma_id = $1, updated_at = NOW()
		WHERE quotation_id = $2 AND provider_id = $3 AND brand_id = $4`
	tag, err := r.q.Exec(context.Background(), query, proformaID, quotationID, providerID, brandID)
	if err != nil {
		return 0, fmt.Errorf("link products to proforma: %w", err)
	}
	return tag.RowsAffected(), nil
}

// LinkToPurchaseOrder re-liga las líneas de la proforma a la orden de compra.
func (r *QuotationProductRepo) LinkToPurchaseOrder(purchaseOrderID, proformaID, providerID, brandID int64) (int64, error) {
	query := `
		UPDATE quotation_products SET purchase_order_id = $1, updated_at = NOW()
		WHERE proforma_id = $2 AND provider_id = $3 AND brand_id = $4`
	tag, err := r.q.Exec(context.Background(), query, purchaseOrderID, proformaID, providerID, brandID)
	if err != nil {
		return 0, fmt.Errorf("link products to purchase order: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkPedido marca todas las líneas de la cotización como PEDIDO.
func (r *QuotationProductRepo) MarkPedido(quotationID int64) error {
	query := `
		UPDATE quotation_products SET status = $2, updated_at = NOW()
		WHERE quotation_id = $1`
	_, err := r.q.Exec(context.Background(), query, quotationID, entity.ProductStatusPedido)
	if err != nil {
		return fmt.Errorf("mark products pedido: %w", err)
	}
	return nil
}
