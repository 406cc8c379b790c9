package payments

import (
	"context"
	"sync"
	"time"

	"github.com/benettihome/operaciones-api/internal/application/ports"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

// fakeStore almacén en memoria compartido por los repos falsos de estos tests.
type fakeStore struct {
	mu          sync.Mutex
	nextID      int64
	quotations  map[int64]*entity.Quotation
	projects    map[int64]*entity.Project
	receivables map[int64]*entity.AccountsReceivable
	advances    map[int64]*entity.AdvancePaymentRecord
	proformas   map[int64]*entity.Proforma
	payables    map[int64]*entity.AccountPayable
	histories   map[int64]*entity.AccountPayableHistory
	orders      map[int64]*entity.PurchaseOrder
	products    map[int64]*entity.QuotationProduct
	catalog     map[int64]*entity.Product
	providers   map[int64]*entity.Provider
	brands      map[int64]*entity.Brand
	users       map[int64]*entity.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		quotations:  map[int64]*entity.Quotation{},
		projects:    map[int64]*entity.Project{},
		receivables: map[int64]*entity.AccountsReceivable{},
		advances:    map[int64]*entity.AdvancePaymentRecord{},
		proformas:   map[int64]*entity.Proforma{},
		payables:    map[int64]*entity.AccountPayable{},
		histories:   map[int64]*entity.AccountPayableHistory{},
		orders:      map[int64]*entity.PurchaseOrder{},
		products:    map[int64]*entity.QuotationProduct{},
		catalog:     map[int64]*entity.Product{},
		providers:   map[int64]*entity.Provider{},
		brands:      map[int64]*entity.Brand{},
		users:       map[int64]*entity.User{},
	}
}

func (s *fakeStore) id() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

// fakeTxRunner pasa repos atados al mismo almacén; no hay tx real.
type fakeTxRunner struct{ s *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.AdvancePaymentRepository,
	repository.AccountsReceivableRepository,
	repository.ProformaRepository,
	repository.AccountPayableRepository,
	repository.PurchaseOrderRepository,
	repository.QuotationProductRepository,
) error) error {
	return fn(
		&fakeAdvanceRepo{r.s}, &fakeReceivableRepo{r.s}, &fakeProformaRepo{r.s},
		&fakePayableRepo{r.s}, &fakeOrderRepo{r.s}, &fakeProductLinkRepo{r.s},
	)
}

func (r *fakeTxRunner) RunPayables(_ context.Context, fn func(
	repository.PayableHistoryRepository,
	repository.AccountPayableRepository,
	repository.PurchaseOrderRepository,
) error) error {
	return fn(&fakeHistoryRepo{r.s}, &fakePayableRepo{r.s}, &fakeOrderRepo{r.s})
}

type fakeAdvanceRepo struct{ s *fakeStore }

func (r *fakeAdvanceRepo) Create(a *entity.AdvancePaymentRecord) error {
	a.ID = r.s.id()
	r.s.advances[a.ID] = a
	return nil
}
func (r *fakeAdvanceRepo) GetByID(id int64) (*entity.AdvancePaymentRecord, error) {
	return r.s.advances[id], nil
}
func (r *fakeAdvanceRepo) ListByReceivable(receivableID int64) ([]*entity.AdvancePaymentRecord, error) {
	var out []*entity.AdvancePaymentRecord
	for _, a := range r.s.advances {
		if a.AccountsReceivableID == receivableID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *fakeAdvanceRepo) MaxConsecutive(receivableID int64) (int, error) {
	max := 0
	for _, a := range r.s.advances {
		if a.AccountsReceivableID == receivableID && a.ConsecutiveID > max {
			max = a.ConsecutiveID
		}
	}
	return max, nil
}
func (r *fakeAdvanceRepo) Update(a *entity.AdvancePaymentRecord) error {
	r.s.advances[a.ID] = a
	return nil
}

type fakeReceivableRepo struct{ s *fakeStore }

func (r *fakeReceivableRepo) Create(a *entity.AccountsReceivable) error {
	a.ID = r.s.id()
	r.s.receivables[a.ID] = a
	return nil
}
func (r *fakeReceivableRepo) GetByID(id int64) (*entity.AccountsReceivable, error) {
	return r.s.receivables[id], nil
}
func (r *fakeReceivableRepo) ListByProject(projectID int64) ([]*entity.AccountsReceivable, error) {
	var out []*entity.AccountsReceivable
	for _, a := range r.s.receivables {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *fakeReceivableRepo) Update(a *entity.AccountsReceivable) error {
	r.s.receivables[a.ID] = a
	return nil
}

type fakeProformaRepo struct{ s *fakeStore }

func (r *fakeProformaRepo) Create(p *entity.Proforma) error {
	p.ID = r.s.id()
	r.s.proformas[p.ID] = p
	return nil
}
func (r *fakeProformaRepo) GetByID(id int64) (*entity.Proforma, error) { return r.s.proformas[id], nil }
func (r *fakeProformaRepo) ListByProject(projectID int64) ([]*entity.Proforma, error) {
	var out []*entity.Proforma
	for _, p := range r.s.proformas {
		if p.ProjectID == projectID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeProformaRepo) ListByProjectAndCurrency(projectID int64, c entity.Currency) ([]*entity.Proforma, error) {
	var out []*entity.Proforma
	for _, p := range r.s.proformas {
		if p.ProjectID == projectID && p.Currency == c {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeProformaRepo) ExistsTriple(projectID, providerID, brandID, excludeID int64) (bool, error) {
	for _, p := range r.s.proformas {
		if p.ID != excludeID && p.ProjectID == projectID && p.ProviderID == providerID && p.BrandID == brandID {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeProformaRepo) Update(p *entity.Proforma) error {
	r.s.proformas[p.ID] = p
	return nil
}

type fakePayableRepo struct{ s *fakeStore }

func (r *fakePayableRepo) Create(a *entity.AccountPayable) error {
	a.ID = r.s.id()
	r.s.payables[a.ID] = a
	return nil
}
func (r *fakePayableRepo) GetByID(id int64) (*entity.AccountPayable, error) {
	return r.s.payables[id], nil
}
func (r *fakePayableRepo) GetByProforma(proformaID int64) (*entity.AccountPayable, error) {
	for _, a := range r.s.payables {
		if a.ProformaID != nil && *a.ProformaID == proformaID {
			return a, nil
		}
	}
	return nil, nil
}
func (r *fakePayableRepo) ListByProject(projectID int64) ([]*entity.AccountPayable, error) {
	var out []*entity.AccountPayable
	for _, a := range r.s.payables {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *fakePayableRepo) Update(a *entity.AccountPayable) error {
	r.s.payables[a.ID] = a
	return nil
}

type fakeHistoryRepo struct{ s *fakeStore }

func (r *fakeHistoryRepo) Create(h *entity.AccountPayableHistory) error {
	h.ID = r.s.id()
	r.s.histories[h.ID] = h
	return nil
}
func (r *fakeHistoryRepo) GetByID(id int64) (*entity.AccountPayableHistory, error) {
	return r.s.histories[id], nil
}
func (r *fakeHistoryRepo) ListByPayable(payableID int64) ([]*entity.AccountPayableHistory, error) {
	var out []*entity.AccountPayableHistory
	for _, h := range r.s.histories {
		if h.AccountPayableID == payableID {
			out = append(out, h)
		}
	}
	return out, nil
}
func (r *fakeHistoryRepo) Update(h *entity.AccountPayableHistory) error {
	r.s.histories[h.ID] = h
	return nil
}

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(po *entity.PurchaseOrder) error {
	po.ID = r.s.id()
	r.s.orders[po.ID] = po
	return nil
}
func (r *fakeOrderRepo) GetByID(id int64) (*entity.PurchaseOrder, error) { return r.s.orders[id], nil }
func (r *fakeOrderRepo) ExistsForPayableAndProforma(payableID, proformaID int64) (bool, error) {
	po, _ := r.GetForPayableAndProforma(payableID, proformaID)
	return po != nil, nil
}
func (r *fakeOrderRepo) GetForPayableAndProforma(payableID, proformaID int64) (*entity.PurchaseOrder, error) {
	for _, po := range r.s.orders {
		if po.AccountPayableID == payableID && po.ProformaID == proformaID {
			return po, nil
		}
	}
	return nil, nil
}
func (r *fakeOrderRepo) ListByProject(projectID int64) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.s.orders {
		if po.ProjectID == projectID {
			out = append(out, po)
		}
	}
	return out, nil
}
func (r *fakeOrderRepo) ListByContainer(int64) ([]*entity.PurchaseOrder, error) { return nil, nil }
func (r *fakeOrderRepo) ListPendingCollection() ([]*entity.PurchaseOrder, error) {
	return nil, nil
}
func (r *fakeOrderRepo) ListProductionDue(time.Time) ([]*entity.PurchaseOrder, error) {
	return nil, nil
}
func (r *fakeOrderRepo) Update(po *entity.PurchaseOrder) error {
	r.s.orders[po.ID] = po
	return nil
}

type fakeProductLinkRepo struct{ s *fakeStore }

func (r *fakeProductLinkRepo) ListByProforma(proformaID int64) ([]*entity.QuotationProduct, error) {
	var out []*entity.QuotationProduct
	for _, qp := range r.s.products {
		if qp.ProformaID != nil && *qp.ProformaID == proformaID {
			out = append(out, qp)
		}
	}
	return out, nil
}
func (r *fakeProductLinkRepo) LinkToProforma(proformaID, quotationID, providerID, brandID int64) (int64, error) {
	var n int64
	for _, qp := range r.s.products {
		if qp.QuotationID == quotationID && qp.ProviderID == providerID && qp.BrandID == brandID {
			id := proformaID
			qp.ProformaID = &id
			n++
		}
	}
	return n, nil
}
func (r *fakeProductLinkRepo) LinkToPurchaseOrder(purchaseOrderID, proformaID, providerID, brandID int64) (int64, error) {
	var n int64
	for _, qp := range r.s.products {
		if qp.ProformaID != nil && *qp.ProformaID == proformaID && qp.ProviderID == providerID && qp.BrandID == brandID {
			id := purchaseOrderID
			qp.PurchaseOrderID = &id
			n++
		}
	}
	return n, nil
}
func (r *fakeProductLinkRepo) MarkPedido(quotationID int64) error {
	for _, qp := range r.s.products {
		if qp.QuotationID == quotationID {
			qp.Status = entity.ProductStatusPedido
		}
	}
	return nil
}

type fakeProjectRepo struct{ s *fakeStore }

func (r *fakeProjectRepo) Create(p *entity.Project) error {
	p.ID = r.s.id()
	r.s.projects[p.ID] = p
	return nil
}
func (r *fakeProjectRepo) GetByID(id int64) (*entity.Project, error) { return r.s.projects[id], nil }
func (r *fakeProjectRepo) GetByQuotationID(quotationID int64) (*entity.Project, error) {
	for _, p := range r.s.projects {
		if p.QuotationID == quotationID {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProjectRepo) NextSequence() (int64, error) { return int64(len(r.s.projects) + 1), nil }
func (r *fakeProjectRepo) Update(p *entity.Project) error {
	r.s.projects[p.ID] = p
	return nil
}

type fakeQuotationRepo struct{ s *fakeStore }

func (r *fakeQuotationRepo) GetByID(id int64) (*entity.Quotation, error) {
	return r.s.quotations[id], nil
}
func (r *fakeQuotationRepo) GetWithProductsAndProofs(id int64) (*entity.Quotation, error) {
	return r.s.quotations[id], nil
}
func (r *fakeQuotationRepo) ListManagers(int64) ([]entity.CommissionAssignee, error) {
	return nil, nil
}
func (r *fakeQuotationRepo) ListDesigners(int64) ([]entity.CommissionAssignee, error) {
	return nil, nil
}
func (r *fakeQuotationRepo) Update(q *entity.Quotation) error {
	r.s.quotations[q.ID] = q
	return nil
}

type fakeCatalogRepo struct{ s *fakeStore }

func (r *fakeCatalogRepo) GetByID(id int64) (*entity.Product, error) { return r.s.catalog[id], nil }

type fakeProviderRepo struct{ s *fakeStore }

func (r *fakeProviderRepo) GetByID(id int64) (*entity.Provider, error) {
	return r.s.providers[id], nil
}

type fakeBrandRepo struct{ s *fakeStore }

func (r *fakeBrandRepo) GetByID(id int64) (*entity.Brand, error) { return r.s.brands[id], nil }

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) { return r.s.users[id], nil }
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) ListAdmins() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		if u.IsAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *fakeUserRepo) ListNationalLogistics() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		if u.IsNationalLogistics {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeNotifier registra los envíos para las aserciones.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *fakeNotifier) Send(_ context.Context, notification ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return nil
}
