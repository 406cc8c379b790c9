package payments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

type payableFixture struct {
	store   *fakeStore
	uc      *PayableHistoryUseCase
	payable *entity.AccountPayable
	order   *entity.PurchaseOrder
}

// fixture: proforma EUR 4000 con su cuenta por pagar, orden NUEVA ya creada
// por el umbral, proveedor con condición de anticipo del 50% y marca con 20
// días hábiles de producción.
func newPayableFixture(t *testing.T) *payableFixture {
	t.Helper()
	s := newFakeStore()

	condition := decimal.NewFromInt(50)
	provider := &entity.Provider{ID: 1, Name: "Poliform", AdvanceConditionPercentage: &condition}
	s.providers[provider.ID] = provider
	brand := &entity.Brand{ID: 10, ProviderID: 1, Name: "Varenna", ProductionTime: 20}
	s.brands[brand.ID] = brand

	proforma := &entity.Proforma{
		ID: s.id(), ProjectID: 1, ProviderID: 1, BrandID: 10,
		Amount: decimal.NewFromInt(4000), Currency: entity.CurrencyEUR,
	}
	s.proformas[proforma.ID] = proforma

	pid := proforma.ID
	payable := &entity.AccountPayable{
		ID: s.id(), ProjectID: 1, ProformaID: &pid,
		Currency: entity.CurrencyEUR,
		Total:    decimal.NewFromInt(4000), Balance: decimal.NewFromInt(4000),
	}
	s.payables[payable.ID] = payable

	order := &entity.PurchaseOrder{
		ID: s.id(), ProjectID: 1, AccountPayableID: payable.ID, ProformaID: proforma.ID,
		Status: entity.OrderStatusNueva,
	}
	s.orders[order.ID] = order

	uc := NewPayableHistoryUseCase(
		&fakeTxRunner{s},
		&fakePayableRepo{s},
		&fakeHistoryRepo{s},
		&fakeProformaRepo{s},
		&fakeProviderRepo{s},
		&fakeBrandRepo{s},
		paymentsMatrix(),
		testLogger(),
	)
	return &payableFixture{store: s, uc: uc, payable: payable, order: order}
}

func (f *payableFixture) addPendingHistory(amount int64, c entity.Currency) *entity.AccountPayableHistory {
	h := &entity.AccountPayableHistory{
		ID:               f.store.id(),
		AccountPayableID: f.payable.ID,
		Amount:           decimal.NewFromInt(amount),
		Currency:         c,
		Status:           entity.PaymentStatusPendiente,
	}
	f.store.histories[h.ID] = h
	return h
}

func TestPayableMarkPaid_UpdatesBalance(t *testing.T) {
	f := newPayableFixture(t)
	h := f.addPendingHistory(1000, entity.CurrencyEUR)

	got, err := f.uc.MarkPaid(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPagado, got.Status)

	assert.True(t, f.payable.TotalPaid.Equal(decimal.NewFromInt(1000)))
	assert.True(t, f.payable.Balance.Equal(decimal.NewFromInt(3000)))
	assert.False(t, f.payable.IsPaid)
	assert.Nil(t, f.order.ProductionEndDate, "1000 de 4000 no cubre la condición del 50%")
}

func TestPayableMarkPaid_AdvanceConditionSchedulesProduction(t *testing.T) {
	f := newPayableFixture(t)
	h := f.addPendingHistory(2000, entity.CurrencyEUR)

	_, err := f.uc.MarkPaid(context.Background(), h.ID)
	require.NoError(t, err)

	require.NotNil(t, f.order.ProductionEndDate, "50% pagado debe arrancar producción")
	assert.Equal(t, entity.OrderStatusEnProduccion, f.order.Status)

	// 20 días hábiles hacia adelante, nunca en fin de semana.
	end := *f.order.ProductionEndDate
	assert.True(t, end.After(time.Now().AddDate(0, 0, 19)))
	assert.NotEqual(t, time.Saturday, end.Weekday())
	assert.NotEqual(t, time.Sunday, end.Weekday())
}

func TestPayableMarkPaid_DoesNotRescheduleProduction(t *testing.T) {
	f := newPayableFixture(t)
	fixed := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	f.order.ProductionEndDate = &fixed
	f.order.Status = entity.OrderStatusEnProduccion

	h := f.addPendingHistory(4000, entity.CurrencyEUR)
	_, err := f.uc.MarkPaid(context.Background(), h.ID)
	require.NoError(t, err)

	assert.Equal(t, fixed, *f.order.ProductionEndDate, "la fecha de producción no se recalcula")
	assert.True(t, f.payable.IsPaid)
	assert.True(t, f.payable.Balance.IsZero())
}

func TestPayableMarkPaid_PagadoIsTerminal(t *testing.T) {
	f := newPayableFixture(t)
	h := f.addPendingHistory(500, entity.CurrencyEUR)

	_, err := f.uc.MarkPaid(context.Background(), h.ID)
	require.NoError(t, err)

	_, err = f.uc.MarkPaid(context.Background(), h.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	assert.True(t, f.payable.TotalPaid.Equal(decimal.NewFromInt(500)))
}

func TestPayableMarkPaid_ConvertsIntoPayableCurrency(t *testing.T) {
	f := newPayableFixture(t)
	h := f.addPendingHistory(1000, entity.CurrencyUSD)

	_, err := f.uc.MarkPaid(context.Background(), h.ID)
	require.NoError(t, err)

	want := decimal.NewFromInt(1000).Mul(decimal.NewFromFloat(0.92))
	assert.True(t, f.payable.TotalPaid.Equal(want))
}

func TestPayableCreate_RequiresExistingPayable(t *testing.T) {
	f := newPayableFixture(t)

	_, err := f.uc.Create(dto.CreatePayableHistoryRequest{
		AccountPayableID: 9999,
		Amount:           decimal.NewFromInt(100),
		Currency:         "EUR",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	h, err := f.uc.Create(dto.CreatePayableHistoryRequest{
		AccountPayableID: f.payable.ID,
		Amount:           decimal.NewFromInt(100),
		Currency:         "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPendiente, h.Status)
}
