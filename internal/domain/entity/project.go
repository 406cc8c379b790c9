package entity

import "time"

// Project se crea una sola vez por cotización y es la raíz de agregación del
// estado de cumplimiento: cuentas por cobrar, cuentas por pagar, comisiones y
// documentos cuelgan de él.
type Project struct {
	ID          int64
	QuotationID int64
	// ProjectKey consecutivo legible: "<n><inicial de sucursal>", ej. "42B".
	ProjectKey string
	// Reference consecutivo de showroom: "<n><inicial de showroom>".
	Reference string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
