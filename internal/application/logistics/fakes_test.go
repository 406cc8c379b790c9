package logistics

import (
	"context"
	"time"

	"github.com/benettihome/operaciones-api/internal/application/ports"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

type store struct {
	nextID      int64
	containers  map[int64]*entity.Container
	collections map[int64]*entity.Collection
	orders      map[int64]*entity.PurchaseOrder
	payables    map[int64]*entity.AccountPayable
	deliveries  []*entity.DeliveryRequest
	customers   map[int64]*entity.Customer
	users       []*entity.User
}

func newStore() *store {
	return &store{
		containers:  map[int64]*entity.Container{},
		collections: map[int64]*entity.Collection{},
		orders:      map[int64]*entity.PurchaseOrder{},
		payables:    map[int64]*entity.AccountPayable{},
		customers:   map[int64]*entity.Customer{},
	}
}

func (s *store) id() int64 { s.nextID++; return s.nextID }

type txRunner struct{ s *store }

func (r *txRunner) Run(_ context.Context, fn func(
	repository.ContainerRepository,
	repository.CollectionRepository,
	repository.PurchaseOrderRepository,
	repository.AccountPayableRepository,
) error) error {
	return fn(&containerRepo{r.s}, &collectionRepo{r.s}, &orderRepo{r.s}, &payableRepo{r.s})
}

type containerRepo struct{ s *store }

func (r *containerRepo) Create(c *entity.Container) error {
	c.ID = r.s.id()
	r.s.containers[c.ID] = c
	return nil
}
func (r *containerRepo) GetByID(id int64) (*entity.Container, error) {
	return r.s.containers[id], nil
}
func (r *containerRepo) Update(c *entity.Container) error { r.s.containers[c.ID] = c; return nil }

type collectionRepo struct{ s *store }

func (r *collectionRepo) Create(c *entity.Collection) error {
	c.ID = r.s.id()
	r.s.collections[c.ID] = c
	return nil
}
func (r *collectionRepo) GetByID(id int64) (*entity.Collection, error) {
	return r.s.collections[id], nil
}
func (r *collectionRepo) ListByContainer(containerID int64) ([]*entity.Collection, error) {
	var out []*entity.Collection
	for _, c := range r.s.collections {
		if c.ContainerID != nil && *c.ContainerID == containerID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *collectionRepo) Update(c *entity.Collection) error { r.s.collections[c.ID] = c; return nil }

type orderRepo struct{ s *store }

func (r *orderRepo) Create(po *entity.PurchaseOrder) error {
	po.ID = r.s.id()
	r.s.orders[po.ID] = po
	return nil
}
func (r *orderRepo) GetByID(id int64) (*entity.PurchaseOrder, error) { return r.s.orders[id], nil }
func (r *orderRepo) ExistsForPayableAndProforma(int64, int64) (bool, error) { return false, nil }
func (r *orderRepo) GetForPayableAndProforma(int64, int64) (*entity.PurchaseOrder, error) {
	return nil, nil
}
func (r *orderRepo) ListByProject(projectID int64) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.s.orders {
		if po.ProjectID == projectID {
			out = append(out, po)
		}
	}
	return out, nil
}
func (r *orderRepo) ListByContainer(containerID int64) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.s.orders {
		if po.CollectionID == nil {
			continue
		}
		collection := r.s.collections[*po.CollectionID]
		if collection != nil && collection.ContainerID != nil && *collection.ContainerID == containerID {
			out = append(out, po)
		}
	}
	return out, nil
}
func (r *orderRepo) ListPendingCollection() ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.s.orders {
		if po.Status == entity.OrderStatusEnRecoleccion && po.CollectionID == nil {
			out = append(out, po)
		}
	}
	return out, nil
}
func (r *orderRepo) ListProductionDue(asOf time.Time) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range r.s.orders {
		if po.Status != entity.OrderStatusEnProduccion {
			continue
		}
		end := po.ProductionEndDate
		if po.ProductionRealEndDate != nil {
			end = po.ProductionRealEndDate
		}
		if end != nil && !end.After(asOf) {
			out = append(out, po)
		}
	}
	return out, nil
}
func (r *orderRepo) Update(po *entity.PurchaseOrder) error { r.s.orders[po.ID] = po; return nil }

type payableRepo struct{ s *store }

func (r *payableRepo) Create(a *entity.AccountPayable) error {
	a.ID = r.s.id()
	r.s.payables[a.ID] = a
	return nil
}
func (r *payableRepo) GetByID(id int64) (*entity.AccountPayable, error) { return r.s.payables[id], nil }
func (r *payableRepo) GetByProforma(int64) (*entity.AccountPayable, error) { return nil, nil }
func (r *payableRepo) ListByProject(int64) ([]*entity.AccountPayable, error) { return nil, nil }
func (r *payableRepo) Update(a *entity.AccountPayable) error { r.s.payables[a.ID] = a; return nil }

type deliveryRepo struct{ s *store }

func (r *deliveryRepo) ListForDate(day time.Time) ([]*entity.DeliveryRequest, error) {
	var out []*entity.DeliveryRequest
	for _, d := range r.s.deliveries {
		if d.DeliveryDate.Year() == day.Year() && d.DeliveryDate.YearDay() == day.YearDay() {
			out = append(out, d)
		}
	}
	return out, nil
}

type customerRepo struct{ s *store }

func (r *customerRepo) GetByID(id int64) (*entity.Customer, error) { return r.s.customers[id], nil }

type userRepo struct{ s *store }

func (r *userRepo) GetByID(int64) (*entity.User, error)       { return nil, nil }
func (r *userRepo) GetByEmail(string) (*entity.User, error)   { return nil, nil }
func (r *userRepo) ListAdmins() ([]*entity.User, error)       { return nil, nil }
func (r *userRepo) ListNationalLogistics() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		if u.IsNationalLogistics {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeNotifier struct{ sent []ports.Notification }

func (f *fakeNotifier) Send(_ context.Context, n ports.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}
