package repository

import "github.com/benettihome/operaciones-api/internal/domain/entity"

// AccountsReceivableRepository cuentas por cobrar; solo el motor de pagos
// las muta.
type AccountsReceivableRepository interface {
	Create(a *entity.AccountsReceivable) error
	GetByID(id int64) (*entity.AccountsReceivable, error)
	ListByProject(projectID int64) ([]*entity.AccountsReceivable, error)
	Update(a *entity.AccountsReceivable) error
}

// AdvancePaymentRepository pagos discretos hacia una cuenta por cobrar.
type AdvancePaymentRepository interface {
	Create(r *entity.AdvancePaymentRecord) error
	GetByID(id int64) (*entity.AdvancePaymentRecord, error)
	ListByReceivable(receivableID int64) ([]*entity.AdvancePaymentRecord, error)
	// MaxConsecutive mayor ConsecutiveID dentro de la cuenta (0 si no hay pagos).
	MaxConsecutive(receivableID int64) (int, error)
	Update(r *entity.AdvancePaymentRecord) error
}
