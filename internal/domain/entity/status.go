package entity

// Moneda de liquidación.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyMXN Currency = "MXN"
)

// Currencies lista las tres monedas soportadas, en orden estable.
var Currencies = []Currency{CurrencyEUR, CurrencyUSD, CurrencyMXN}

// Estados de órdenes de compra.
const (
	OrderStatusPendiente     = "PENDIENTE" // pre-fondeo: la proforma existe pero el anticipo no se ha cubierto
	OrderStatusNueva         = "NUEVA"
	OrderStatusEnProduccion  = "EN_PRODUCCION"
	OrderStatusEnRecoleccion = "EN_RECOLECCION"
	OrderStatusEnTransito    = "EN_TRANSITO"
	OrderStatusEntregado     = "ENTREGADO"
)

// Estados de pagos (anticipos y abonos a cuentas por pagar).
const (
	PaymentStatusPendiente = "PENDIENTE"
	PaymentStatusPagado    = "PAGADO"
)

// Estados de contenedor.
const (
	ContainerStatusEnPuerto   = "EN_PUERTO"
	ContainerStatusEnTransito = "EN_TRANSITO"
	ContainerStatusEntregado  = "ENTREGADO"
)

// Estados de proyecto.
const (
	ProjectStatusEnProceso = "EN_PROCESO"
	ProjectStatusCerrado   = "CERRADO"
)

// Estados de producto dentro de una cotización.
const (
	ProductStatusCotizado = "COTIZADO"
	ProductStatusPedido   = "PEDIDO"
)
