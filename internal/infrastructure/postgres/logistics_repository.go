package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

var _ repository.CollectionRepository = (*CollectionRepo)(nil)

// CollectionRepo agrupaciones logísticas sobre PostgreSQL (usable con pool o tx).
type CollectionRepo struct {
	q Querier
}

// NewCollectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCollectionRepository(q Querier) *CollectionRepo {
	return &CollectionRepo{q: q}
}

func scanCollection(row pgx.Row) (*entity.Collection, error) {
	var c entity.Collection
	err := row.Scan(&c.ID, &c.Name, &c.ContainerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan collection: %w", err)
	}
	return &c, nil
}

// Create persiste la colección y asigna su ID.
func (r *CollectionRepo) Create(c *entity.Collection) error {
	query := `
		INSERT INTO collections (name, container_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.Name, c.ContainerID, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

// GetByID obtiene una colección por ID.
func (r *CollectionRepo) GetByID(id int64) (*entity.Collection, error) {
	query := `SELECT id, name, container_id, created_at, updated_at FROM collections WHERE id = $1`
	return scanCollection(r.q.QueryRow(context.Background(), query, id))
}

// ListByContainer colecciones del contenedor.
func (r *CollectionRepo) ListByContainer(containerID int64) ([]*entity.Collection, error) {
	query := `SELECT id, name, container_id, created_at, updated_at FROM collections WHERE container_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, containerID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var out []*entity.Collection
	for rows.Next() {
		var c entity.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.ContainerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update persiste los campos mutables de la colección.
func (r *CollectionRepo) Update(c *entity.Collection) error {
	query := `UPDATE collections SET name = $2, container_id = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.ContainerID)
	if err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	return nil
}

var _ repository.ContainerRepository = (*ContainerRepo)(nil)

// ContainerRepo contenedores de embarque sobre PostgreSQL (usable con pool o tx).
type ContainerRepo struct {
	q Querier
}

// NewContainerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContainerRepository(q Querier) *ContainerRepo {
	return &ContainerRepo{q: q}
}

const containerColumns = `
	id, name, etd_date, eta_date, status, shipping_date, arrival_date, created_at, updated_at`

// Create persiste el contenedor y asigna su ID.
func (r *ContainerRepo) Create(c *entity.Container) error {
	query := `
		INSERT INTO containers (name, etd_date, eta_date, status, shipping_date, arrival_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.Name, c.ETDDate, c.ETADate, c.Status, c.ShippingDate, c.ArrivalDate,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert container: %w", err)
	}
	return nil
}

// GetByID obtiene un contenedor por ID.
func (r *ContainerRepo) GetByID(id int64) (*entity.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE id = $1`
	var c entity.Container
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.ETDDate, &c.ETADate, &c.Status, &c.ShippingDate,
		&c.ArrivalDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get container: %w", err)
	}
	return &c, nil
}

// Update persiste los campos mutables del contenedor.
func (r *ContainerRepo) Update(c *entity.Container) error {
	query := `
		UPDATE containers SET
			name = $2, etd_date = $3, eta_date = $4, status = $5,
			shipping_date = $6, arrival_date = $7, updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.ETDDate, c.ETADate, c.Status, c.ShippingDate, c.ArrivalDate,
	)
	if err != nil {
		return fmt.Errorf("update container: %w", err)
	}
	return nil
}

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo solicitudes de entrega sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// ListForDate entregas programadas para el día dado.
func (r *DeliveryRepo) ListForDate(day time.Time) ([]*entity.DeliveryRequest, error) {
	query := `
		SELECT id, project_id, customer_id, delivery_date, address, status, created_at
		FROM delivery_requests
		WHERE delivery_date::date = $1::date
		ORDER BY delivery_date`
	rows, err := r.q.Query(context.Background(), query, day)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []*entity.DeliveryRequest
	for rows.Next() {
		var d entity.DeliveryRequest
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.CustomerID, &d.DeliveryDate,
			&d.Address, &d.Status, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
