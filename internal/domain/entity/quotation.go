package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quotation una cotización de cliente. Las cifras monetarias viven en Prices,
// un conjunto por moneda; ExchangeRateQuotation nombra el conjunto autoritativo.
// Cuando IsFractionate es true la cobranza se divide por moneda según los
// flags TypeFractional.
type Quotation struct {
	ID                    int64
	CustomerID            int64
	BranchID              int64
	ExchangeRateQuotation Currency // "" cuando el vendedor aún no fija la moneda
	IsFractionate         bool
	TypeFractionalEUR     bool
	TypeFractionalUSD     bool
	TypeFractionalMXN     bool
	Prices                map[Currency]PriceSet

	// Roles comisionables.
	IsArchitect          bool
	ArchitectID          *int64
	ArchitectPercentage  decimal.Decimal
	IsReferencedCustomer bool
	ReferencedCustomerID *int64
	ReferencedPercentage decimal.Decimal
	IsProjectManager     bool
	IsDesigner           bool
	ShowroomManagerID    *int64

	Products      []*QuotationProduct
	PaymentProofs []PaymentProof

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FractionalCurrencies devuelve las monedas activas cuando la cotización es
// fraccionada, en orden estable.
func (q *Quotation) FractionalCurrencies() []Currency {
	var out []Currency
	if q.TypeFractionalEUR {
		out = append(out, CurrencyEUR)
	}
	if q.TypeFractionalUSD {
		out = append(out, CurrencyUSD)
	}
	if q.TypeFractionalMXN {
		out = append(out, CurrencyMXN)
	}
	return out
}

// CommissionAssignee un gerente de proyecto o diseñador asignado a la
// cotización, con su porcentaje y sus divisiones por clasificación.
type CommissionAssignee struct {
	UserID     int64
	Percentage decimal.Decimal
	IsMain     bool // gerente de proyecto principal
	Splits     []ClassificationSplit
}

// ClassificationSplit división de comisión por clasificación de producto.
type ClassificationSplit struct {
	Classification string
	Percentage     decimal.Decimal
}

// PaymentProof comprobante de pago capturado en la cotización; al convertirla
// en proyecto siembra los registros de anticipo ya cobrados.
type PaymentProof struct {
	Amount     decimal.Decimal
	Currency   Currency
	Date       time.Time
	Method     string
	DocumentID *int64
}
