package logistics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func strPtr(v string) *string { return &v }

// contenedor con una colección y dos órdenes en producción.
func containerFixture(s *store) (*entity.Container, []*entity.PurchaseOrder) {
	container := &entity.Container{ID: s.id(), Name: "CNT-1", Status: entity.ContainerStatusEnPuerto}
	s.containers[container.ID] = container

	collection := &entity.Collection{ID: s.id(), Name: "REC-1", ContainerID: &container.ID}
	s.collections[collection.ID] = collection

	end := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	var orders []*entity.PurchaseOrder
	for i := 0; i < 2; i++ {
		po := &entity.PurchaseOrder{
			ID: s.id(), ProjectID: 1, AccountPayableID: int64(i + 1), ProformaID: int64(i + 1),
			Status:            entity.OrderStatusEnProduccion,
			ProductionEndDate: &end,
			CollectionID:      &collection.ID,
		}
		s.orders[po.ID] = po
		orders = append(orders, po)
	}
	return container, orders
}

func TestContainerUpdate_ETACascadesArrival(t *testing.T) {
	s := newStore()
	container, orders := containerFixture(s)
	uc := NewContainerUseCase(&txRunner{s}, testLogger())

	eta := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := uc.Update(context.Background(), container.ID, dto.UpdateContainerRequest{ETADate: &eta})
	require.NoError(t, err)

	want := eta.AddDate(0, 0, 10)
	for _, po := range orders {
		got := s.orders[po.ID]
		require.NotNil(t, got.ArrivalDate)
		assert.True(t, got.ArrivalDate.Equal(want), "ETA+10 manda sobre el fin de producción")
		assert.Equal(t, entity.OrderStatusEnProduccion, got.Status, "sin cambio de estado del contenedor no hay transición")
	}
}

func TestContainerUpdate_ETDFallback(t *testing.T) {
	s := newStore()
	container, orders := containerFixture(s)
	uc := NewContainerUseCase(&txRunner{s}, testLogger())

	etd := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Update(context.Background(), container.ID, dto.UpdateContainerRequest{ETDDate: &etd})
	require.NoError(t, err)

	want := etd.AddDate(0, 0, 31)
	got := s.orders[orders[0].ID]
	require.NotNil(t, got.ArrivalDate)
	assert.True(t, got.ArrivalDate.Equal(want))
}

func TestContainerUpdate_EnTransitoMovesOrders(t *testing.T) {
	s := newStore()
	container, orders := containerFixture(s)
	uc := NewContainerUseCase(&txRunner{s}, testLogger())

	updated, err := uc.Update(context.Background(), container.ID, dto.UpdateContainerRequest{
		Status: strPtr(entity.ContainerStatusEnTransito),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ArrivalDate, "EN_TRANSITO fija la fecha de llegada del contenedor")

	for _, po := range orders {
		got := s.orders[po.ID]
		assert.Equal(t, entity.OrderStatusEnTransito, got.Status)
		require.NotNil(t, got.ShippingDate)
	}
}

func TestContainerUpdate_EntregadoClosesOrders(t *testing.T) {
	s := newStore()
	container, orders := containerFixture(s)
	uc := NewContainerUseCase(&txRunner{s}, testLogger())

	updated, err := uc.Update(context.Background(), container.ID, dto.UpdateContainerRequest{
		Status: strPtr(entity.ContainerStatusEntregado),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ShippingDate, "ENTREGADO fija la fecha de embarque del contenedor")

	for _, po := range orders {
		assert.Equal(t, entity.OrderStatusEntregado, s.orders[po.ID].Status)
	}
}

func TestContainerUpdate_StatusDatesAreIdempotent(t *testing.T) {
	s := newStore()
	container, _ := containerFixture(s)
	uc := NewContainerUseCase(&txRunner{s}, testLogger())

	first, err := uc.Update(context.Background(), container.ID, dto.UpdateContainerRequest{
		Status: strPtr(entity.ContainerStatusEnTransito),
	})
	require.NoError(t, err)
	arrival := *first.ArrivalDate

	time.Sleep(5 * time.Millisecond)
	second, err := uc.Update(context.Background(), container.ID, dto.UpdateContainerRequest{
		Status: strPtr(entity.ContainerStatusEnTransito),
	})
	require.NoError(t, err)
	assert.True(t, second.ArrivalDate.Equal(arrival), "la fecha dirigida por estado no se reescribe")
}

func TestContainerUpdate_Validation(t *testing.T) {
	s := newStore()
	uc := NewContainerUseCase(&txRunner{s}, testLogger())

	_, err := uc.Update(context.Background(), 1, dto.UpdateContainerRequest{Status: strPtr("FLOTANDO")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Update(context.Background(), 99, dto.UpdateContainerRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
