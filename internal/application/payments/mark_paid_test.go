package payments

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/currency"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func paymentsMatrix() currency.Matrix {
	return currency.NewMatrix(currency.Factors{
		USDToEUR: 0.92, MXNToEUR: 0.054,
		EURToUSD: 1.09, MXNToUSD: 0.059,
		EURToMXN: 18.50, USDToMXN: 17.10,
	})
}

// fixture: cotización EUR 10000 con anticipo 3000, no fraccionada, un proyecto
// con una cuenta por cobrar y dos proformas con sus cuentas por pagar.
type thresholdFixture struct {
	store      *fakeStore
	uc         *MarkAdvancePaymentPaidUseCase
	notifier   *fakeNotifier
	receivable *entity.AccountsReceivable
	proformas  []*entity.Proforma
}

func newThresholdFixture(t *testing.T) *thresholdFixture {
	t.Helper()
	s := newFakeStore()

	q := &entity.Quotation{
		ID:                    s.id(),
		ExchangeRateQuotation: entity.CurrencyEUR,
		Prices: map[entity.Currency]entity.PriceSet{
			entity.CurrencyEUR: {
				Total:   decimal.NewFromInt(10000),
				Advance: decimal.NewFromInt(3000),
			},
		},
	}
	s.quotations[q.ID] = q

	project := &entity.Project{ID: s.id(), QuotationID: q.ID, Status: entity.ProjectStatusEnProceso}
	s.projects[project.ID] = project

	receivable := &entity.AccountsReceivable{
		ID:               s.id(),
		ProjectID:        project.ID,
		Currency:         entity.CurrencyEUR,
		TotalSale:        decimal.NewFromInt(10000),
		Balance:          decimal.NewFromInt(10000),
		AdvanceThreshold: decimal.NewFromInt(3000),
	}
	s.receivables[receivable.ID] = receivable

	var proformas []*entity.Proforma
	for i, provider := range []int64{1, 2} {
		p := &entity.Proforma{
			ID: s.id(), ProjectID: project.ID,
			ProviderID: provider, BrandID: int64(10 + i),
			Amount: decimal.NewFromInt(4000), Currency: entity.CurrencyEUR,
		}
		s.proformas[p.ID] = p
		proformas = append(proformas, p)

		pid := p.ID
		payable := &entity.AccountPayable{
			ID: s.id(), ProjectID: project.ID, ProformaID: &pid,
			Currency: entity.CurrencyEUR,
			Total:    p.Amount, Balance: p.Amount,
		}
		s.payables[payable.ID] = payable

		qp := &entity.QuotationProduct{
			ID: s.id(), QuotationID: q.ID, ProductID: 100 + int64(i),
			ProviderID: provider, BrandID: int64(10 + i), ProformaID: &pid,
		}
		s.products[qp.ID] = qp
	}

	notifier := &fakeNotifier{}
	uc := NewMarkAdvancePaymentPaidUseCase(
		&fakeTxRunner{s},
		&fakeProjectRepo{s},
		&fakeQuotationRepo{s},
		&fakeProductLinkRepo{s},
		&fakeCatalogRepo{s},
		&fakeUserRepo{s},
		paymentsMatrix(),
		notifier,
		NotificationTemplates{ProductStock: "tpl-stock", ProductPedido: "tpl-pedido"},
		testLogger(),
	)
	return &thresholdFixture{store: s, uc: uc, notifier: notifier, receivable: receivable, proformas: proformas}
}

func (f *thresholdFixture) addPendingPayment(amount int64, c entity.Currency) *entity.AdvancePaymentRecord {
	rec := &entity.AdvancePaymentRecord{
		ID:                   f.store.id(),
		AccountsReceivableID: f.receivable.ID,
		ConsecutiveID:        len(f.store.advances) + 1,
		Amount:               decimal.NewFromInt(amount),
		Currency:             c,
		Status:               entity.PaymentStatusPendiente,
	}
	f.store.advances[rec.ID] = rec
	return rec
}

func TestMarkPaid_ThresholdCreatesOneOrderPerProforma(t *testing.T) {
	f := newThresholdFixture(t)
	rec := f.addPendingPayment(3000, entity.CurrencyEUR)

	got, err := f.uc.Execute(context.Background(), rec.ID, dto.MarkAdvancePaymentPaidRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPagado, got.Status)

	assert.True(t, f.receivable.TotalPaid.Equal(decimal.NewFromInt(3000)))
	assert.True(t, f.receivable.Balance.Equal(decimal.NewFromInt(7000)))
	assert.False(t, f.receivable.IsPaid)

	require.Len(t, f.store.orders, 2, "exactamente una orden por proforma elegible")
	for _, po := range f.store.orders {
		assert.Equal(t, entity.OrderStatusNueva, po.Status)
	}
	// Las líneas de producto quedan re-ligadas a su orden.
	for _, qp := range f.store.products {
		assert.NotNil(t, qp.PurchaseOrderID)
	}
}

func TestMarkPaid_SecondPaymentDoesNotDuplicateOrders(t *testing.T) {
	f := newThresholdFixture(t)

	first := f.addPendingPayment(3000, entity.CurrencyEUR)
	_, err := f.uc.Execute(context.Background(), first.ID, dto.MarkAdvancePaymentPaidRequest{})
	require.NoError(t, err)
	require.Len(t, f.store.orders, 2)

	second := f.addPendingPayment(4000, entity.CurrencyEUR)
	_, err = f.uc.Execute(context.Background(), second.ID, dto.MarkAdvancePaymentPaidRequest{})
	require.NoError(t, err)

	assert.Len(t, f.store.orders, 2, "a lo más una orden por par (cuenta, proforma)")
	assert.True(t, f.receivable.TotalPaid.Equal(decimal.NewFromInt(7000)))
}

func TestMarkPaid_AlreadyPaidIsImmutable(t *testing.T) {
	f := newThresholdFixture(t)
	rec := f.addPendingPayment(1000, entity.CurrencyEUR)

	_, err := f.uc.Execute(context.Background(), rec.ID, dto.MarkAdvancePaymentPaidRequest{})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), rec.ID, dto.MarkAdvancePaymentPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
	assert.True(t, f.receivable.TotalPaid.Equal(decimal.NewFromInt(1000)),
		"el saldo no debe moverse al rechazar un pago ya PAGADO")
}

func TestMarkPaid_ConvertsIntoReceivableCurrency(t *testing.T) {
	f := newThresholdFixture(t)
	rec := f.addPendingPayment(1000, entity.CurrencyUSD)

	_, err := f.uc.Execute(context.Background(), rec.ID, dto.MarkAdvancePaymentPaidRequest{})
	require.NoError(t, err)

	want := decimal.NewFromInt(1000).Mul(decimal.NewFromFloat(0.92))
	assert.True(t, f.receivable.TotalPaid.Equal(want),
		"1000 USD deben abonarse como %s EUR, no %s", want, f.receivable.TotalPaid)
	assert.Empty(t, f.store.orders, "920 EUR no cruzan el umbral de 3000")
}

func TestMarkPaid_SalesDeviationRaisesUpdatedTotal(t *testing.T) {
	f := newThresholdFixture(t)
	rec := f.addPendingPayment(2000, entity.CurrencyEUR)

	deviation := decimal.NewFromInt(500)
	_, err := f.uc.Execute(context.Background(), rec.ID, dto.MarkAdvancePaymentPaidRequest{SalesDeviation: &deviation})
	require.NoError(t, err)

	require.NotNil(t, f.receivable.UpdatedTotal)
	assert.True(t, f.receivable.UpdatedTotal.Equal(decimal.NewFromInt(10500)))
	assert.True(t, f.receivable.Balance.Equal(decimal.NewFromInt(8500)),
		"balance = max(totalSale, updatedTotal) - totalPaid")
}

func TestMarkPaid_FullCollectionMarksReceivablePaid(t *testing.T) {
	f := newThresholdFixture(t)
	rec := f.addPendingPayment(10000, entity.CurrencyEUR)

	_, err := f.uc.Execute(context.Background(), rec.ID, dto.MarkAdvancePaymentPaidRequest{})
	require.NoError(t, err)

	assert.True(t, f.receivable.IsPaid)
	assert.True(t, f.receivable.Balance.IsZero())
	assert.Len(t, f.store.orders, 2)
}

func TestMarkPaid_UnknownPaymentIsNotFound(t *testing.T) {
	f := newThresholdFixture(t)

	_, err := f.uc.Execute(context.Background(), 9999, dto.MarkAdvancePaymentPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkPaid_FractionatedOnlyMatchingCurrencyProforma(t *testing.T) {
	f := newThresholdFixture(t)
	// Volver la cotización fraccionada y mover una proforma a USD.
	q := f.store.quotations[1]
	q.IsFractionate = true
	q.TypeFractionalEUR = true
	q.TypeFractionalUSD = true
	f.proformas[1].Currency = entity.CurrencyUSD

	rec := f.addPendingPayment(3000, entity.CurrencyEUR)
	_, err := f.uc.Execute(context.Background(), rec.ID, dto.MarkAdvancePaymentPaidRequest{})
	require.NoError(t, err)

	require.Len(t, f.store.orders, 1, "solo la proforma de la moneda de la cuenta")
	for _, po := range f.store.orders {
		assert.Equal(t, f.proformas[0].ID, po.ProformaID)
	}
}

func TestCreateAdvancePayment_ConsecutivePerReceivable(t *testing.T) {
	f := newThresholdFixture(t)
	uc := NewCreateAdvancePaymentUseCase(&fakeAdvanceRepo{f.store}, &fakeReceivableRepo{f.store}, testLogger())

	first, err := uc.Execute(dto.CreateAdvancePaymentRequest{
		AccountsReceivableID: f.receivable.ID,
		Amount:               decimal.NewFromInt(100),
		Currency:             "EUR",
	})
	require.NoError(t, err)
	second, err := uc.Execute(dto.CreateAdvancePaymentRequest{
		AccountsReceivableID: f.receivable.ID,
		Amount:               decimal.NewFromInt(200),
		Currency:             "EUR",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ConsecutiveID)
	assert.Equal(t, 2, second.ConsecutiveID)
	assert.Equal(t, entity.PaymentStatusPendiente, first.Status)
}

func TestCreateAdvancePayment_Validations(t *testing.T) {
	f := newThresholdFixture(t)
	uc := NewCreateAdvancePaymentUseCase(&fakeAdvanceRepo{f.store}, &fakeReceivableRepo{f.store}, testLogger())

	_, err := uc.Execute(dto.CreateAdvancePaymentRequest{
		AccountsReceivableID: f.receivable.ID,
		Amount:               decimal.Zero,
		Currency:             "EUR",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(dto.CreateAdvancePaymentRequest{
		AccountsReceivableID: f.receivable.ID,
		Amount:               decimal.NewFromInt(10),
		Currency:             "GBP",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(dto.CreateAdvancePaymentRequest{
		AccountsReceivableID: 9999,
		Amount:               decimal.NewFromInt(10),
		Currency:             "EUR",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
