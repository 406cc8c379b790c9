package repository

import "github.com/benettihome/operaciones-api/internal/domain/entity"

// ProjectRepository puerto de persistencia para proyectos.
type ProjectRepository interface {
	Create(p *entity.Project) error
	GetByID(id int64) (*entity.Project, error)
	// GetByQuotationID respalda la regla "un proyecto por cotización".
	GetByQuotationID(quotationID int64) (*entity.Project, error)
	// NextSequence siguiente número consecutivo global de proyecto (max+1).
	NextSequence() (int64, error)
	Update(p *entity.Project) error
}

// CommissionRepository registros de comisión (inmutables una vez creados).
type CommissionRepository interface {
	Create(r *entity.CommissionPaymentRecord) error
	ListByProject(projectID int64) ([]*entity.CommissionPaymentRecord, error)
}
