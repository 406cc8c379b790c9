package dto

import (
	"time"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// UpdateContainerRequest cambio de estado o fechas estimadas del contenedor.
type UpdateContainerRequest struct {
	Status  *string    `json:"status,omitempty"`
	ETDDate *time.Time `json:"etdDate,omitempty"`
	ETADate *time.Time `json:"etaDate,omitempty"`
}

// UpdateOrderStatusRequest transición del estado de una orden de compra.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// SetProductionRealEndRequest captura del fin real de producción.
type SetProductionRealEndRequest struct {
	Date time.Time `json:"date"`
}

// AssignCollectionRequest asocia una orden a una colección de recogida.
type AssignCollectionRequest struct {
	CollectionID int64 `json:"collectionId"`
}

// PurchaseOrderResponse representación hacia la API.
type PurchaseOrderResponse struct {
	ID                    int64      `json:"id"`
	ProjectID             int64      `json:"projectId"`
	Status                string     `json:"status"`
	ProductionEndDate     *time.Time `json:"productionEndDate,omitempty"`
	ProductionRealEndDate *time.Time `json:"productionRealEndDate,omitempty"`
	ArrivalDate           *time.Time `json:"arrivalDate,omitempty"`
	ShippingDate          *time.Time `json:"shippingDate,omitempty"`
}

// ContainerResponse representación del contenedor hacia la API.
type ContainerResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	ETDDate      *time.Time `json:"etdDate,omitempty"`
	ETADate      *time.Time `json:"etaDate,omitempty"`
	ShippingDate *time.Time `json:"shippingDate,omitempty"`
	ArrivalDate  *time.Time `json:"arrivalDate,omitempty"`
}

// ToContainerResponse mapea la entidad al contrato HTTP.
func ToContainerResponse(ct *entity.Container) ContainerResponse {
	return ContainerResponse{
		ID:           ct.ID,
		Name:         ct.Name,
		Status:       ct.Status,
		ETDDate:      ct.ETDDate,
		ETADate:      ct.ETADate,
		ShippingDate: ct.ShippingDate,
		ArrivalDate:  ct.ArrivalDate,
	}
}

// ToPurchaseOrderResponse mapea la entidad al contrato HTTP.
func ToPurchaseOrderResponse(po *entity.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:                    po.ID,
		ProjectID:             po.ProjectID,
		Status:                po.Status,
		ProductionEndDate:     po.ProductionEndDate,
		ProductionRealEndDate: po.ProductionRealEndDate,
		ArrivalDate:           po.ArrivalDate,
		ShippingDate:          po.ShippingDate,
	}
}
