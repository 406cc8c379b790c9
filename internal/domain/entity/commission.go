package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles comisionables.
const (
	CommissionRoleArchitect          = "ARQUITECTO"
	CommissionRoleReferencedCustomer = "CLIENTE_REFERIDO"
	CommissionRoleProjectManager     = "GERENTE_PROYECTO"
	CommissionRoleDesigner           = "DISENADOR"
	CommissionRoleShowroomManager    = "GERENTE_SHOWROOM"
)

// CommissionPaymentRecord comisión devengada al crear el proyecto: un registro
// por (proyecto, beneficiario, rol, clasificación), inmutable una vez creado.
// Amount = total(moneda) * Percentage / 100.
type CommissionPaymentRecord struct {
	ID        int64
	ProjectID int64
	UserID    int64
	Role      string
	// Classification vacía para comisiones planas; nombrada cuando el registro
	// proviene de una división por clasificación.
	Classification string
	Percentage     decimal.Decimal
	Amount         decimal.Decimal
	Currency       Currency
	Status         string
	CreatedAt      time.Time
}
