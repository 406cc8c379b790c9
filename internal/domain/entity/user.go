package entity

import "time"

// Niveles de acceso.
const (
	AccessLevelOrganizacion = "ORGANIZACION"
	AccessLevelSucursal     = "SUCURSAL"
	AccessLevelPersonal     = "PERSONAL"
)

// User usuario interno (vendedores, gerentes, logística, administración).
type User struct {
	ID          int64
	Name        string
	Email       string
	Password    string // hash, nunca en claro
	Role        string
	AccessLevel string
	BranchID    int64
	// IsNationalLogistics recibe las notificaciones de entregas del día siguiente.
	IsNationalLogistics bool
	IsAdmin             bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Customer cliente final del proyecto.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Branch sucursal; las iniciales alimentan los consecutivos legibles del
// proyecto ("42B") y de la referencia de showroom.
type Branch struct {
	ID              int64
	Name            string
	Initial         string
	ShowroomInitial string
}

// Document archivo adjunto (comprobantes, proformas, PDFs generados).
type Document struct {
	ID        int64
	FileName  string
	Path      string
	MimeType  string
	CreatedAt time.Time
}

// DeliveryRequest solicitud de entrega a domicilio de un proyecto; el job
// diario notifica las programadas para mañana.
type DeliveryRequest struct {
	ID           int64
	ProjectID    int64
	CustomerID   int64
	DeliveryDate time.Time
	Address      string
	Status       string
	CreatedAt    time.Time
}
