package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proforma cotización de un proveedor+marca adjunta a un proyecto.
// Invariante: a lo más una proforma por (ProjectID, ProviderID, BrandID).
type Proforma struct {
	ID         int64
	ProjectID  int64
	ProviderID int64
	BrandID    int64
	Amount     decimal.Decimal
	Currency   Currency
	DocumentID *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccountPayable cuenta por pagar de una proforma (o del proyecto completo en
// flujos consolidados de una sola moneda).
type AccountPayable struct {
	ID         int64
	ProjectID  int64
	ProformaID *int64
	Currency   Currency
	Total      decimal.Decimal
	TotalPaid  decimal.Decimal
	Balance    decimal.Decimal
	IsPaid     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccountPayableHistory un abono discreto hacia una cuenta por pagar.
// Inmutable una vez PAGADO.
type AccountPayableHistory struct {
	ID               int64
	AccountPayableID int64
	Amount           decimal.Decimal
	Currency         Currency
	Status           string
	PaymentDate      *time.Time
	DocumentID       *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
