// Package commission calcula las comisiones por rol sobre el total resuelto
// de una cotización. Servicio de dominio puro: aritmética decimal, sin
// redondeo binario.
package commission

import (
	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/domain/currency"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// ShowroomManagerPercentage comisión fija del gerente de showroom.
var ShowroomManagerPercentage = decimal.NewFromInt(16)

var hundred = decimal.NewFromInt(100)

// Amount = total * percentage / 100.
func Amount(total, percentage decimal.Decimal) decimal.Decimal {
	return total.Mul(percentage).Div(hundred)
}

// Entry una comisión devengada: se persiste como un CommissionPaymentRecord
// inmutable. Los roles se evalúan de forma independiente, sin neteo.
type Entry struct {
	UserID         int64
	Role           string
	Classification string
	Percentage     decimal.Decimal
	Amount         decimal.Decimal
	Currency       entity.Currency
}

// Plan despliega las comisiones de una cotización sobre su vista de precios
// autoritativa: arquitecto (plana), cliente referido (plana), N gerentes de
// proyecto, N diseñadores y el 16% fijo del gerente de showroom. Un asignado
// con divisiones por clasificación produce UN registro por división (revisión
// vigente de la regla); sin divisiones, un registro plano.
func Plan(q *entity.Quotation, view currency.PriceView, managers, designers []entity.CommissionAssignee) []Entry {
	var entries []Entry
	total := view.Total

	add := func(userID int64, role, classification string, pct decimal.Decimal) {
		if pct.LessThanOrEqual(decimal.Zero) {
			return
		}
		entries = append(entries, Entry{
			UserID:         userID,
			Role:           role,
			Classification: classification,
			Percentage:     pct,
			Amount:         Amount(total, pct),
			Currency:       view.Currency,
		})
	}

	fanOut := func(role string, assignees []entity.CommissionAssignee) {
		for _, a := range assignees {
			if len(a.Splits) == 0 {
				add(a.UserID, role, "", a.Percentage)
				continue
			}
			for _, s := range a.Splits {
				add(a.UserID, role, s.Classification, s.Percentage)
			}
		}
	}

	if q.IsArchitect && q.ArchitectID != nil {
		add(*q.ArchitectID, entity.CommissionRoleArchitect, "", q.ArchitectPercentage)
	}
	if q.IsReferencedCustomer && q.ReferencedCustomerID != nil {
		add(*q.ReferencedCustomerID, entity.CommissionRoleReferencedCustomer, "", q.ReferencedPercentage)
	}
	if q.IsProjectManager {
		fanOut(entity.CommissionRoleProjectManager, managers)
	}
	if q.IsDesigner {
		fanOut(entity.CommissionRoleDesigner, designers)
	}
	if q.ShowroomManagerID != nil {
		add(*q.ShowroomManagerID, entity.CommissionRoleShowroomManager, "", ShowroomManagerPercentage)
	}
	return entries
}
