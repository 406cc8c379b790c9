package repository

import "github.com/benettihome/operaciones-api/internal/domain/entity"

// ProformaRepository proformas de proveedor+marca por proyecto.
type ProformaRepository interface {
	Create(p *entity.Proforma) error
	GetByID(id int64) (*entity.Proforma, error)
	ListByProject(projectID int64) ([]*entity.Proforma, error)
	// ListByProjectAndCurrency proformas cuya moneda coincide (flujos
	// fraccionados: solo se evalúa la proforma de la moneda de la cuenta).
	ListByProjectAndCurrency(projectID int64, c entity.Currency) ([]*entity.Proforma, error)
	// ExistsTriple true si ya hay proforma para (proyecto, proveedor, marca),
	// excluyendo excludeID (0 para no excluir ninguna).
	ExistsTriple(projectID, providerID, brandID, excludeID int64) (bool, error)
	Update(p *entity.Proforma) error
}

// AccountPayableRepository cuentas por pagar.
type AccountPayableRepository interface {
	Create(a *entity.AccountPayable) error
	GetByID(id int64) (*entity.AccountPayable, error)
	GetByProforma(proformaID int64) (*entity.AccountPayable, error)
	ListByProject(projectID int64) ([]*entity.AccountPayable, error)
	Update(a *entity.AccountPayable) error
}

// PayableHistoryRepository abonos hacia una cuenta por pagar.
type PayableHistoryRepository interface {
	Create(h *entity.AccountPayableHistory) error
	GetByID(id int64) (*entity.AccountPayableHistory, error)
	ListByPayable(payableID int64) ([]*entity.AccountPayableHistory, error)
	Update(h *entity.AccountPayableHistory) error
}
