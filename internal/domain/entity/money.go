package entity

import "github.com/shopspring/decimal"

// PriceSet las cifras de una cotización en UNA moneda
// (reemplaza los campos triplicados subtotalEUR/USD/MXN, etc.).
type PriceSet struct {
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	IVA          decimal.Decimal
	Total        decimal.Decimal
	Advance      decimal.Decimal // anticipo requerido para iniciar producción
	AdvancePct   decimal.Decimal // porcentaje de anticipo pactado
	Balance      decimal.Decimal
	ExchangeRate decimal.Decimal // tipo de cambio capturado al cotizar
}
