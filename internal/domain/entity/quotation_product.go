package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationProduct línea de producto de una cotización (entidad de unión con
// precio por producto). Al crearse una proforma o una orden de compra, las
// líneas del triple (proforma, proveedor, marca) se re-ligan a ella.
type QuotationProduct struct {
	ID              int64
	QuotationID     int64
	ProductID       int64
	ProviderID      int64
	BrandID         int64
	Classification  string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	Currency        Currency
	Status          string
	ProformaID      *int64
	PurchaseOrderID *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Product catálogo mínimo: distingue producto de línea (stock) de pedido
// especial, lo que decide la plantilla de notificación al cruzar el umbral.
type Product struct {
	ID         int64
	Name       string
	SKU        string
	ProviderID int64
	BrandID    int64
	IsStock    bool
}

// Provider proveedor de muebles. AdvanceConditionPercentage es el porcentaje
// pagado de la cuenta por pagar que dispara el arranque de producción; nil
// equivale a 100.
type Provider struct {
	ID                         int64
	Name                       string
	Email                      string
	AdvanceConditionPercentage *decimal.Decimal
	CreatedAt                  time.Time
}

// Brand marca de un proveedor; ProductionTime en días hábiles.
type Brand struct {
	ID             int64
	ProviderID     int64
	Name           string
	ProductionTime int
	CreatedAt      time.Time
}
