package entity

import "time"

// PurchaseOrder orden de compra al proveedor. Se crea a lo más una vez por
// par (AccountPayableID, ProformaID) cuando el anticipo cobrado cruza el
// umbral. Las tres fechas las puebla la cascada de fechas.
type PurchaseOrder struct {
	ID               int64
	ProjectID        int64
	AccountPayableID int64
	ProformaID       int64
	Status           string
	// ProductionEndDate estimada: hoy + tiempo de producción de la marca en
	// días hábiles, al cubrirse la condición de anticipo del proveedor.
	ProductionEndDate *time.Time
	// ProductionRealEndDate capturada manualmente cuando el proveedor confirma.
	ProductionRealEndDate *time.Time
	ArrivalDate           *time.Time
	ShippingDate          *time.Time
	CollectionID          *int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Collection agrupación logística de órdenes de compra con destino al mismo
// contenedor.
type Collection struct {
	ID          int64
	Name        string
	ContainerID *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Container contenedor de embarque. ETDDate/ETADate y el estado alimentan la
// derivación de fecha de llegada de toda orden alcanzable vía su colección.
type Container struct {
	ID           int64
	Name         string
	ETDDate      *time.Time
	ETADate      *time.Time
	Status       string
	ShippingDate *time.Time
	ArrivalDate  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
