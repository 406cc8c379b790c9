package repository

import "github.com/benettihome/operaciones-api/internal/domain/entity"

// UserRepository usuarios internos.
type UserRepository interface {
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// ListAdmins destinatarios de los avisos de proforma.
	ListAdmins() ([]*entity.User, error)
	// ListNationalLogistics destinatarios de los avisos de entrega.
	ListNationalLogistics() ([]*entity.User, error)
}

// CustomerRepository clientes finales.
type CustomerRepository interface {
	GetByID(id int64) (*entity.Customer, error)
}

// BranchRepository sucursales (iniciales para los consecutivos legibles).
type BranchRepository interface {
	GetByID(id int64) (*entity.Branch, error)
}
