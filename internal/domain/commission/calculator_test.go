package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benettihome/operaciones-api/internal/domain/currency"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

func ptr(v int64) *int64 { return &v }

func eurView(total int64) currency.PriceView {
	return currency.PriceView{
		Currency: entity.CurrencyEUR,
		PriceSet: entity.PriceSet{Total: decimal.NewFromInt(total)},
	}
}

func TestAmount_LinearInPercentage(t *testing.T) {
	total := decimal.RequireFromString("123456.78")
	p1 := decimal.RequireFromString("2.5")
	p2 := decimal.RequireFromString("7.25")

	sum := Amount(total, p1).Add(Amount(total, p2))
	combined := Amount(total, p1.Add(p2))
	assert.True(t, sum.Equal(combined), "esperado %s, obtenido %s", combined, sum)
}

func TestPlan_AllRolesIndependent(t *testing.T) {
	q := &entity.Quotation{
		IsArchitect:          true,
		ArchitectID:          ptr(1),
		ArchitectPercentage:  decimal.NewFromInt(5),
		IsReferencedCustomer: true,
		ReferencedCustomerID: ptr(2),
		ReferencedPercentage: decimal.NewFromInt(3),
		IsProjectManager:     true,
		IsDesigner:           true,
		ShowroomManagerID:    ptr(9),
	}
	managers := []entity.CommissionAssignee{
		{UserID: 3, Percentage: decimal.NewFromInt(2)},
		{UserID: 4, IsMain: true, Splits: []entity.ClassificationSplit{
			{Classification: "COCINAS", Percentage: decimal.NewFromInt(4)},
			{Classification: "CLOSETS", Percentage: decimal.NewFromInt(1)},
		}},
	}
	designers := []entity.CommissionAssignee{
		{UserID: 5, Percentage: decimal.NewFromInt(1)},
	}

	entries := Plan(q, eurView(10000), managers, designers)
	require.Len(t, entries, 7,
		"arquitecto + referido + 3 gerentes (uno por división) + diseñador + showroom")

	byRole := map[string]int{}
	for _, e := range entries {
		byRole[e.Role]++
		assert.Equal(t, entity.CurrencyEUR, e.Currency)
		assert.True(t, e.Amount.Equal(Amount(decimal.NewFromInt(10000), e.Percentage)))
	}
	assert.Equal(t, 1, byRole[entity.CommissionRoleArchitect])
	assert.Equal(t, 1, byRole[entity.CommissionRoleReferencedCustomer])
	assert.Equal(t, 3, byRole[entity.CommissionRoleProjectManager], "un registro por división de clasificación")
	assert.Equal(t, 1, byRole[entity.CommissionRoleDesigner])
	assert.Equal(t, 1, byRole[entity.CommissionRoleShowroomManager])
}

func TestPlan_ShowroomManagerFixedSixteen(t *testing.T) {
	q := &entity.Quotation{ShowroomManagerID: ptr(7)}

	entries := Plan(q, eurView(1000), nil, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.CommissionRoleShowroomManager, entries[0].Role)
	assert.True(t, entries[0].Percentage.Equal(decimal.NewFromInt(16)))
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(160)))
}

func TestPlan_DisabledRolesProduceNothing(t *testing.T) {
	q := &entity.Quotation{
		ArchitectID:         ptr(1),
		ArchitectPercentage: decimal.NewFromInt(5), // IsArchitect apagado
	}
	managers := []entity.CommissionAssignee{{UserID: 3, Percentage: decimal.NewFromInt(2)}}

	entries := Plan(q, eurView(1000), managers, nil)
	assert.Empty(t, entries)
}
