package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

var _ repository.AccountsReceivableRepository = (*AccountsReceivableRepo)(nil)

// AccountsReceivableRepo cuentas por cobrar sobre PostgreSQL (usable con pool
// o tx).
type AccountsReceivableRepo struct {
	q Querier
}

// NewAccountsReceivableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountsReceivableRepository(q Querier) *AccountsReceivableRepo {
	return &AccountsReceivableRepo{q: q}
}

const receivableColumns = `
	id, project_id, currency, total_sale, total_paid, updated_total, balance,
	advance_threshold, is_paid, created_at, updated_at`

func scanReceivable(row pgx.Row) (*entity.AccountsReceivable, error) {
	var a entity.AccountsReceivable
	err := row.Scan(
		&a.ID, &a.ProjectID, &a.Currency, &a.TotalSale, &a.TotalPaid, &a.UpdatedTotal,
		&a.Balance, &a.AdvanceThreshold, &a.IsPaid, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan accounts receivable: %w", err)
	}
	return &a, nil
}

// Create persiste la cuenta por cobrar y asigna su ID.
func (r *AccountsReceivableRepo) Create(a *entity.AccountsReceivable) error {
	query := `
		INSERT INTO accounts_receivable (project_id, currency, total_sale, total_paid, updated_total, balance, advance_threshold, is_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		a.ProjectID, a.Currency, a.TotalSale, a.TotalPaid, a.UpdatedTotal,
		a.Balance, a.AdvanceThreshold, a.IsPaid, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert accounts receivable: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por cobrar por ID.
func (r *AccountsReceivableRepo) GetByID(id int64) (*entity.AccountsReceivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM accounts_receivable WHERE id = $1`
	return scanReceivable(r.q.QueryRow(context.Background(), query, id))
}

// ListByProject las cuentas del proyecto en orden estable de moneda.
func (r *AccountsReceivableRepo) ListByProject(projectID int64) ([]*entity.AccountsReceivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM accounts_receivable WHERE project_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list accounts receivable: %w", err)
	}
	defer rows.Close()

	var out []*entity.AccountsReceivable
	for rows.Next() {
		var a entity.AccountsReceivable
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Currency, &a.TotalSale, &a.TotalPaid,
			&a.UpdatedTotal, &a.Balance, &a.AdvanceThreshold, &a.IsPaid, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan accounts receivable: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// Update persiste los acumulados de la cuenta.
func (r *AccountsReceivableRepo) Update(a *entity.AccountsReceivable) error {
	query := `
		UPDATE accounts_receivable SET
			total_paid = $2, updated_total = $3, balance = $4, is_paid = $5, updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.TotalPaid, a.UpdatedTotal, a.Balance, a.IsPaid,
	)
	if err != nil {
		return fmt.Errorf("update accounts receivable: %w", err)
	}
	return nil
}

var _ repository.AdvancePaymentRepository = (*AdvancePaymentRepo)(nil)

// AdvancePaymentRepo pagos de anticipo sobre PostgreSQL (usable con pool o tx).
type AdvancePaymentRepo struct {
	q Querier
}

// NewAdvancePaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdvancePaymentRepository(q Querier) *AdvancePaymentRepo {
	return &AdvancePaymentRepo{q: q}
}

const advanceColumns = `
	id, accounts_receivable_id, consecutive_id, amount, currency, sales_deviation,
	method, status, payment_date, document_id, created_at, updated_at`

func scanAdvance(row pgx.Row) (*entity.AdvancePaymentRecord, error) {
	var a entity.AdvancePaymentRecord
	err := row.Scan(
		&a.ID, &a.AccountsReceivableID, &a.ConsecutiveID, &a.Amount, &a.Currency,
		&a.SalesDeviation, &a.Method, &a.Status, &a.PaymentDate, &a.DocumentID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan advance payment: %w", err)
	}
	return &a, nil
}

// Create persiste el pago y asigna su ID.
func (r *AdvancePaymentRepo) Create(a *entity.AdvancePaymentRecord) error {
	query := `
		INSERT INTO advance_payments (accounts_receivable_id, consecutive_id, amount, currency, sales_deviation, method, status, payment_date, document_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		a.AccountsReceivableID, a.ConsecutiveID, a.Amount, a.Currency, a.SalesDeviation,
		a.Method, a.Status, a.PaymentDate, a.DocumentID, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert advance payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *AdvancePaymentRepo) GetByID(id int64) (*entity.AdvancePaymentRecord, error) {
	query := `SELECT ` + advanceColumns + ` FROM advance_payments WHERE id = $1`
	return scanAdvance(r.q.QueryRow(context.Background(), query, id))
}

// ListByReceivable los pagos de la cuenta en orden consecutivo.
func (r *AdvancePaymentRepo) ListByReceivable(receivableID int64) ([]*entity.AdvancePaymentRecord, error) {
	query := `SELECT ` + advanceColumns + ` FROM advance_payments WHERE accounts_receivable_id = $1 ORDER BY consecutive_id`
	rows, err := r.q.Query(context.Background(), query, receivableID)
	if err != nil {
		return nil, fmt.Errorf("list advance payments: %w", err)
	}
	defer rows.Close()

	var out []*entity.AdvancePaymentRecord
	for rows.Next() {
		var a entity.AdvancePaymentRecord
		if err := rows.Scan(&a.ID, &a.AccountsReceivableID, &a.ConsecutiveID, &a.Amount,
			&a.Currency, &a.SalesDeviation, &a.Method, &a.Status, &a.PaymentDate,
			&a.DocumentID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan advance payment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// MaxConsecutive mayor ConsecutiveID dentro de la cuenta (0 si no hay pagos).
func (r *AdvancePaymentRepo) MaxConsecutive(receivableID int64) (int, error) {
	var max int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(consecutive_id), 0) FROM advance_payments WHERE accounts_receivable_id = $1`,
		receivableID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max consecutive: %w", err)
	}
	return max, nil
}

// Update persiste los campos mutables del pago.
func (r *AdvancePaymentRepo) Update(a *entity.AdvancePaymentRecord) error {
	query := `
		UPDATE advance_payments SET
			amount = $2, currency = $3, sales_deviation = $4, method = $5,
			status = $6, payment_date = $7, document_id = $8, updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Amount, a.Currency, a.SalesDeviation, a.Method,
		a.Status, a.PaymentDate, a.DocumentID,
	)
	if err != nil {
		return fmt.Errorf("update advance payment: %w", err)
	}
	return nil
}
