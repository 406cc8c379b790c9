package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

var _ repository.ProformaRepository = (*ProformaRepo)(nil)

// ProformaRepo proformas sobre PostgreSQL (usable con pool o tx). El índice
// único sobre (project_id, provider_id, brand_id) es el tope contra altas
// concurrentes del mismo triple.
type ProformaRepo struct {
	q Querier
}

// NewProformaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProformaRepository(q Querier) *ProformaRepo {
	return &ProformaRepo{q: q}
}

const proformaColumns = `
	id, project_id, provider_id, brand_id, amount, currency, document_id, created_at, updated_at`

func scanProforma(row pgx.Row) (*entity.Proforma, error) {
	var p entity.Proforma
	err := row.Scan(&p.ID, &p.ProjectID, &p.ProviderID, &p.BrandID, &p.Amount,
		&p.Currency, &p.DocumentID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan proforma: %w", err)
	}
	return &p, nil
}

// Create persiste la proforma y asigna su ID.
func (r *ProformaRepo) Create(p *entity.Proforma) error {
	query := `
		INSERT INTO proformas (project_id, provider_id, brand_id, amount, currency, document_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.ProjectID, p.ProviderID, p.BrandID, p.Amount, p.Currency,
		p.DocumentID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProformaDuplicada
		}
		return fmt.Errorf("insert proforma: %w", err)
	}
	return nil
}

// GetByID obtiene una proforma por ID.
func (r *ProformaRepo) GetByID(id int64) (*entity.Proforma, error) {
	query := `SELECT ` + proformaColumns + ` FROM proformas WHERE id = $1`
	return scanProforma(r.q.QueryRow(context.Background(), query, id))
}

func (r *ProformaRepo) list(query string, args ...any) ([]*entity.Proforma, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list proformas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Proforma
	for rows.Next() {
		var p entity.Proforma
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.ProviderID, &p.BrandID, &p.Amount,
			&p.Currency, &p.DocumentID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proforma: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ListByProject proformas del proyecto.
func (r *ProformaRepo) ListByProject(projectID int64) ([]*entity.Proforma, error) {
	return r.list(`SELECT `+proformaColumns+` FROM proformas WHERE project_id = $1 ORDER BY id`, projectID)
}

// ListByProjectAndCurrency proformas del proyecto en la moneda dada (flujos
// fraccionados).
func (r *ProformaRepo) ListByProjectAndCurrency(projectID int64, c entity.Currency) ([]*entity.Proforma, error) {
	return r.list(`SELECT `+proformaColumns+` FROM proformas WHERE project_id = $1 AND currency = $2 ORDER BY id`, projectID, c)
}

// ExistsTriple true si ya hay proforma para (proyecto, proveedor, marca),
// excluyendo excludeID (0 para no excluir ninguna).
func (r *ProformaRepo) ExistsTriple(projectID, providerID, brandID, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(), `
		SELECT EXISTS (
			SELECT 1 FROM proformas
			WHERE project_id = $1 AND provider_id = $2 AND brand_id = $3 AND id <> $4
		)`, projectID, providerID, brandID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists proforma triple: %w", err)
	}
	return exists, nil
}

// Update persiste los campos mutables de la proforma.
func (r *ProformaRepo) Update(p *entity.Proforma) error {
	query := `
		UPDATE proformas SET
			provider_id = $2, brand_id = $3, amount = $4, currency = $5,
			document_id = $6, updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ProviderID, p.BrandID, p.Amount, p.Currency, p.DocumentID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProformaDuplicada
		}
		return fmt.Errorf("update proforma: %w", err)
	}
	return nil
}

var _ repository.AccountPayableRepository = (*AccountPayableRepo)(nil)

// AccountPayableRepo cuentas por pagar sobre PostgreSQL (usable con pool o tx).
type AccountPayableRepo struct {
	q Querier
}

// NewAccountPayableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountPayableRepository(q Querier) *AccountPayableRepo {
	return &AccountPayableRepo{q: q}
}

const payableColumns = `
	id, project_id, proforma_id, currency, total, total_paid, balance, is_paid, created_at, updated_at`

func scanPayable(row pgx.Row) (*entity.AccountPayable, error) {
	var a entity.AccountPayable
	err := row.Scan(&a.ID, &a.ProjectID, &a.ProformaID, &a.Currency, &a.Total,
		&a.TotalPaid, &a.Balance, &a.IsPaid, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account payable: %w", err)
	}
	return &a, nil
}

// Create persiste la cuenta por pagar y asigna su ID.
func (r *AccountPayableRepo) Create(a *entity.AccountPayable) error {
	query := `
		INSERT INTO accounts_payable (project_id, proforma_id, currency, total, total_paid, balance, is_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		a.ProjectID, a.ProformaID, a.Currency, a.Total, a.TotalPaid,
		a.Balance, a.IsPaid, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert account payable: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por pagar por ID.
func (r *AccountPayableRepo) GetByID(id int64) (*entity.AccountPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM accounts_payable WHERE id = $1`
	return scanPayable(r.q.QueryRow(context.Background(), query, id))
}

// GetByProforma la cuenta por pagar de la proforma, nil si no existe.
func (r *AccountPayableRepo) GetByProforma(proformaID int64) (*entity.AccountPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM accounts_payable WHERE proforma_id = $1`
	return scanPayable(r.q.QueryRow(context.Background(), query, proformaID))
}

// ListByProject cuentas por pagar del proyecto.
func (r *AccountPayableRepo) ListByProject(projectID int64) ([]*entity.AccountPayable, error) {
	query := `SELECT ` + payableColumns + ` FROM accounts_payable WHERE project_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list accounts payable: %w", err)
	}
	defer rows.Close()

	var out []*entity.AccountPayable
	for rows.Next() {
		var a entity.AccountPayable
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.ProformaID, &a.Currency, &a.Total,
			&a.TotalPaid, &a.Balance, &a.IsPaid, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account payable: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Update persiste los acumulados de la cuenta.
func (r *AccountPayableRepo) Update(a *entity.AccountPayable) error {
	query := `
		UPDATE accounts_payable SET
			total = $2, total_paid = $3, balance = $4, is_paid = $5, updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Total, a.TotalPaid, a.Balance, a.IsPaid,
	)
	if err != nil {
		return fmt.Errorf("update account payable: %w", err)
	}
	return nil
}

var _ repository.PayableHistoryRepository = (*PayableHistoryRepo)(nil)

// PayableHistoryRepo abonos a cuentas por pagar sobre PostgreSQL.
type PayableHistoryRepo struct {
	q Querier
}

// NewPayableHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPayableHistoryRepository(q Querier) *PayableHistoryRepo {
	return &PayableHistoryRepo{q: q}
}

const historyColumns = `
	id, account_payable_id, amount, currency, status, payment_date, document_id, created_at, updated_at`

func scanHistory(row pgx.Row) (*entity.AccountPayableHistory, error) {
	var h entity.AccountPayableHistory
	err := row.Scan(&h.ID, &h.AccountPayableID, &h.Amount, &h.Currency, &h.Status,
		&h.PaymentDate, &h.DocumentID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan payable history: %w", err)
	}
	return &h, nil
}

// Create persiste el abono y asigna su ID.
func (r *PayableHistoryRepo) Create(h *entity.AccountPayableHistory) error {
	query := `
		INSERT INTO account_payable_history (account_payable_id, amount, currency, status, payment_date, document_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		h.AccountPayableID, h.Amount, h.Currency, h.Status, h.PaymentDate,
		h.DocumentID, h.CreatedAt, h.UpdatedAt,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("insert payable history: %w", err)
	}
	return nil
}

// GetByID obtiene un abono por ID.
func (r *PayableHistoryRepo) GetByID(id int64) (*entity.AccountPayableHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM account_payable_history WHERE id = $1`
	return scanHistory(r.q.QueryRow(context.Background(), query, id))
}

// ListByPayable abonos de la cuenta en orden de alta.
func (r *PayableHistoryRepo) ListByPayable(payableID int64) ([]*entity.AccountPayableHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM account_payable_history WHERE account_payable_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, payableID)
	if err != nil {
		return nil, fmt.Errorf("list payable history: %w", err)
	}
	defer rows.Close()

	var out []*entity.AccountPayableHistory
	for rows.Next() {
		var h entity.AccountPayableHistory
		if err := rows.Scan(&h.ID, &h.AccountPayableID, &h.Amount, &h.Currency, &h.Status,
			&h.PaymentDate, &h.DocumentID, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payable history: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

// Update persiste los campos mutables del abono.
func (r *PayableHistoryRepo) Update(h *entity.AccountPayableHistory) error {
	query := `
		UPDATE account_payable_history SET
			amount = $2, currency = $3, status = $4, payment_date = $5, document_id = $6, updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.Amount, h.Currency, h.Status, h.PaymentDate, h.DocumentID,
	)
	if err != nil {
		return fmt.Errorf("update payable history: %w", err)
	}
	return nil
}
