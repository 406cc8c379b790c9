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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL (usable con
// pool o tx). El índice único sobre quotation_id respalda la regla "un
// proyecto por cotización" contra conversiones concurrentes.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// Create persiste el proyecto y asigna su ID.
func (r *ProjectRepo) Create(p *entity.Project) error {
	query := `
		INSERT INTO projects (quotation_id, project_key, reference, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.QuotationID, p.ProjectKey, p.Reference, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(&p.ID, &p.QuotationID, &p.ProjectKey, &p.Reference, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(id int64) (*entity.Project, error) {
	query := `
		SELECT id, quotation_id, project_key, reference, status, created_at, updated_at
		FROM projects WHERE id = $1`
	return scanProject(r.q.QueryRow(context.Background(), query, id))
}

// GetByQuotationID el proyecto de la cotización, nil si aún no se convierte.
func (r *ProjectRepo) GetByQuotationID(quotationID int64) (*entity.Project, error) {
	query := `
		SELECT id, quotation_id, project_key, reference, status, created_at, updated_at
		FROM projects WHERE quotation_id = $1`
	return scanProject(r.q.QueryRow(context.Background(), query, quotationID))
}

// NextSequence siguiente consecutivo global de proyecto (max+1). Debe correr
// dentro de la transacción de conversión.
func (r *ProjectRepo) NextSequence() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(id), 0) + 1 FROM projects`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next project sequence: %w", err)
	}
	return seq, nil
}

// Update persiste los campos mutables del proyecto.
func (r *ProjectRepo) Update(p *entity.Project) error {
	query := `UPDATE projects SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.Status)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

// CommissionRepo registros de comisión; solo alta y lectura, sin edición.
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

// Create persiste un registro de comisión.
func (r *CommissionRepo) Create(c *entity.CommissionPaymentRecord) error {
	query := `
		INSERT INTO commission_records (project_id, user_id, role, classification, percentage, amount, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.ProjectID, c.UserID, c.Role, c.Classification, c.Percentage,
		c.Amount, c.Currency, c.Status, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert commission record: %w", err)
	}
	return nil
}

// ListByProject registros de comisión del proyecto.
func (r *CommissionRepo) ListByProject(projectID int64) ([]*entity.CommissionPaymentRecord, error) {
	query := `
		SELECT id, project_id, user_id, role, classification, percentage, amount, currency, status, created_at
		FROM commission_records WHERE project_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list commission records: %w", err)
	}
	defer rows.Close()

	var out []*entity.CommissionPaymentRecord
	for rows.Next() {
		var c entity.CommissionPaymentRecord
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.Role, &c.Classification,
			&c.Percentage, &c.Amount, &c.Currency, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commission record: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
