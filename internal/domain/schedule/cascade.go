// Package schedule contiene las reglas puras de derivación de fechas de
// producción, embarque y llegada. No persiste nada: los casos de uso de
// logística aplican los resultados sobre contenedores y órdenes de compra.
package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// Offsets en días naturales sobre los insumos de la cadena de prioridad.
const (
	DaysAfterETA           = 10
	DaysAfterETD           = 31
	DaysAfterProductionEnd = 53
)

// ArrivalRule identifica qué insumo ganó la derivación de fecha de llegada.
type ArrivalRule string

const (
	RuleETA               ArrivalRule = "ETA_MAS_10"
	RuleETD               ArrivalRule = "ETD_MAS_31"
	RuleProductionRealEnd ArrivalRule = "FIN_REAL_MAS_53"
	RuleProductionEnd     ArrivalRule = "FIN_ESTIMADO_MAS_53"
	RuleNone              ArrivalRule = "SIN_FECHA"
)

// AddBusinessDays suma n días hábiles a from (sábados y domingos se saltan;
// el calendario de festivos queda fuera de alcance).
func AddBusinessDays(from time.Time, n int) time.Time {
	d := from
	for i := 0; i < n; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			i++
		}
	}
	return d
}

// ProductionEnd fecha estimada de fin de producción: hoy + tiempo de
// producción de la marca en días hábiles.
func ProductionEnd(today time.Time, productionTimeDays int) time.Time {
	return AddBusinessDays(today, productionTimeDays)
}

// MeetsAdvanceCondition true cuando el porcentaje pagado de la cuenta por
// pagar alcanza la condición de anticipo del proveedor (100 si no la define).
func MeetsAdvanceCondition(totalPaid, total decimal.Decimal, condition *decimal.Decimal) bool {
	if total.LessThanOrEqual(decimal.Zero) {
		return false
	}
	required := decimal.NewFromInt(100)
	if condition != nil && condition.GreaterThan(decimal.Zero) {
		required = *condition
	}
	paidPct := totalPaid.Mul(decimal.NewFromInt(100)).Div(total)
	return paidPct.GreaterThanOrEqual(required)
}

// ArrivalDate deriva la fecha de llegada de una orden con prioridad estricta,
// cortando en el primer insumo disponible: ETA+10, ETD+31, fin real de
// producción+53, fin estimado+53, sin fecha. container puede ser nil (orden
// sin colección/contenedor: solo aplican las reglas de producción).
func ArrivalDate(container *entity.Container, po *entity.PurchaseOrder) (time.Time, ArrivalRule, bool) {
	if container != nil {
		if container.ETADate != nil {
			return container.ETADate.AddDate(0, 0, DaysAfterETA), RuleETA, true
		}
		if container.ETDDate != nil {
			return container.ETDDate.AddDate(0, 0, DaysAfterETD), RuleETD, true
		}
	}
	if po != nil {
		if po.ProductionRealEndDate != nil {
			return po.ProductionRealEndDate.AddDate(0, 0, DaysAfterProductionEnd), RuleProductionRealEnd, true
		}
		if po.ProductionEndDate != nil {
			return po.ProductionEndDate.AddDate(0, 0, DaysAfterProductionEnd), RuleProductionEnd, true
		}
	}
	return time.Time{}, RuleNone, false
}

// ApplyContainerStatus fija las fechas del contenedor dirigidas por estado:
// EN_TRANSITO captura la fecha de llegada estimada como "ahora" y ENTREGADO
// la de embarque. Es la revisión vigente de la regla; la estimación por
// ETA/ETD vive aparte en ShippingEstimate y nunca sobreescribe estos valores.
func ApplyContainerStatus(c *entity.Container, now time.Time) {
	switch c.Status {
	case entity.ContainerStatusEnTransito:
		if c.ArrivalDate == nil {
			c.ArrivalDate = &now
		}
	case entity.ContainerStatusEntregado:
		if c.ShippingDate == nil {
			c.ShippingDate = &now
		}
	}
}

// ShippingEstimate revisión alterna de la fecha de embarque, derivada de
// ETA+10 o ETD+31. Solo debe consultarse cuando el contenedor no tiene
// fecha de embarque dirigida por estado.
func ShippingEstimate(c *entity.Container) (time.Time, ArrivalRule, bool) {
	if c == nil {
		return time.Time{}, RuleNone, false
	}
	if c.ETADate != nil {
		return c.ETADate.AddDate(0, 0, DaysAfterETA), RuleETA, true
	}
	if c.ETDDate != nil {
		return c.ETDDate.AddDate(0, 0, DaysAfterETD), RuleETD, true
	}
	return time.Time{}, RuleNone, false
}
