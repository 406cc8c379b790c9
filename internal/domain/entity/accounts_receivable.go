package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountsReceivable cuenta por cobrar de un proyecto: una por (proyecto,
// moneda) cuando la cotización es fraccionada, una por proyecto si no.
// Solo el motor de pagos la muta. Invariante:
// Balance = max(TotalSale, UpdatedTotal) - TotalPaid.
type AccountsReceivable struct {
	ID        int64
	ProjectID int64
	Currency  Currency
	TotalSale decimal.Decimal
	TotalPaid decimal.Decimal
	// UpdatedTotal total ajustado por desviaciones de venta; nil si no hay ajuste.
	UpdatedTotal *decimal.Decimal
	Balance      decimal.Decimal
	// AdvanceThreshold anticipo requerido (la cifra advance de la cotización
	// en esta moneda) para disparar órdenes de compra.
	AdvanceThreshold decimal.Decimal
	IsPaid           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EffectiveTotal el total vigente: el mayor entre la venta original y el
// total ajustado por desviación.
func (a *AccountsReceivable) EffectiveTotal() decimal.Decimal {
	if a.UpdatedTotal != nil && a.UpdatedTotal.GreaterThan(a.TotalSale) {
		return *a.UpdatedTotal
	}
	return a.TotalSale
}

// AdvancePaymentRecord un pago discreto hacia una cuenta por cobrar.
// ConsecutiveID es monotónico dentro de su cuenta. Una vez PAGADO el registro
// es terminal y no puede editarse.
type AdvancePaymentRecord struct {
	ID                   int64
	AccountsReceivableID int64
	ConsecutiveID        int
	Amount               decimal.Decimal
	Currency             Currency
	// SalesDeviation ajuste al total de la venta registrado junto con el pago.
	SalesDeviation *decimal.Decimal
	Method         string
	Status         string
	PaymentDate    *time.Time
	DocumentID     *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
