package repository

import (
	"time"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// CollectionRepository agrupaciones logísticas.
type CollectionRepository interface {
	Create(c *entity.Collection) error
	GetByID(id int64) (*entity.Collection, error)
	ListByContainer(containerID int64) ([]*entity.Collection, error)
	Update(c *entity.Collection) error
}

// ContainerRepository contenedores de embarque.
type ContainerRepository interface {
	Create(c *entity.Container) error
	GetByID(id int64) (*entity.Container, error)
	Update(c *entity.Container) error
}

// DeliveryRepository solicitudes de entrega a domicilio.
type DeliveryRepository interface {
	// ListForDate entregas programadas para el día dado (job de aviso).
	ListForDate(day time.Time) ([]*entity.DeliveryRequest, error)
}
