// Package currency resuelve y convierte cifras monetarias entre las tres
// monedas de liquidación (EUR, USD, MXN). Servicio de dominio puro: opera
// sobre sus entradas más la matriz de factores de configuración.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// ErrUnmappedCurrencyPair el par de monedas no tiene factor en la matriz.
// Nunca se devuelve cero de forma silenciosa para un par desconocido.
var ErrUnmappedCurrencyPair = errors.New("par de monedas sin factor de conversión")

// PriceView las cifras de la cotización en su moneda autoritativa.
type PriceView struct {
	Currency entity.Currency
	entity.PriceSet
}

// Resolve devuelve el conjunto de precios cuya moneda coincide con
// ExchangeRateQuotation. ok es false cuando el selector no está fijado o el
// conjunto no existe: el llamador debe tratarlo como "sin cifras", nunca como
// totales en cero.
func Resolve(q *entity.Quotation) (PriceView, bool) {
	if q == nil || q.ExchangeRateQuotation == "" {
		return PriceView{}, false
	}
	ps, ok := q.Prices[q.ExchangeRateQuotation]
	if !ok {
		return PriceView{}, false
	}
	return PriceView{Currency: q.ExchangeRateQuotation, PriceSet: ps}, true
}

// ResolveFor como Resolve pero para una moneda explícita (flujos fraccionados,
// donde cada cuenta por cobrar vive en su propia moneda).
func ResolveFor(q *entity.Quotation, c entity.Currency) (PriceView, bool) {
	if q == nil || c == "" {
		return PriceView{}, false
	}
	ps, ok := q.Prices[c]
	if !ok {
		return PriceView{}, false
	}
	return PriceView{Currency: c, PriceSet: ps}, true
}

// Factors factores fijos de conversión 3×3 (datos de configuración, no una
// consulta de tipo de cambio en vivo).
type Factors struct {
	USDToEUR float64
	MXNToEUR float64
	EURToUSD float64
	MXNToUSD float64
	EURToMXN float64
	USDToMXN float64
}

type pair struct {
	from, to entity.Currency
}

// Matrix matriz de conversión inmutable construida a partir de Factors.
type Matrix struct {
	factors map[pair]decimal.Decimal
}

// NewMatrix construye la matriz; los factores en cero o negativos se omiten
// para que Convert los reporte como par no mapeado en vez de multiplicar por 0.
func NewMatrix(f Factors) Matrix {
	m := Matrix{factors: make(map[pair]decimal.Decimal, 6)}
	set := func(from, to entity.Currency, factor float64) {
		if factor > 0 {
			m.factors[pair{from, to}] = decimal.NewFromFloat(factor)
		}
	}
	set(entity.CurrencyUSD, entity.CurrencyEUR, f.USDToEUR)
	set(entity.CurrencyMXN, entity.CurrencyEUR, f.MXNToEUR)
	set(entity.CurrencyEUR, entity.CurrencyUSD, f.EURToUSD)
	set(entity.CurrencyMXN, entity.CurrencyUSD, f.MXNToUSD)
	set(entity.CurrencyEUR, entity.CurrencyMXN, f.EURToMXN)
	set(entity.CurrencyUSD, entity.CurrencyMXN, f.USDToMXN)
	return m
}

// Convert aplica el factor fijo del par (from, to). Un par ausente es un
// error explícito, no cero.
func (m Matrix) Convert(amount decimal.Decimal, from, to entity.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	factor, ok := m.factors[pair{from, to}]
	if !ok {
		return decimal.Zero, fmt.Errorf("convertir %s a %s: %w", from, to, ErrUnmappedCurrencyPair)
	}
	return amount.Mul(factor), nil
}

// Factor expone el factor crudo de un par (para reportes).
func (m Matrix) Factor(from, to entity.Currency) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}
	f, ok := m.factors[pair{from, to}]
	return f, ok
}
