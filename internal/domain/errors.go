package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrValidation   = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrAlreadyPaid un registro de pago en estado PAGADO es inmutable.
	ErrAlreadyPaid = errors.New("el registro ya está pagado y no puede modificarse")
	// ErrProformaDuplicada ya existe una proforma para (proyecto, proveedor, marca).
	ErrProformaDuplicada = errors.New("ya existe una proforma para ese proyecto, proveedor y marca")
	// ErrDocumentoRequerido la proforma requiere un documento de soporte.
	ErrDocumentoRequerido = errors.New("se requiere un documento de soporte")

	// ErrSerialization la transacción chocó con otra concurrente; el llamador
	// puede reintentar de forma acotada.
	ErrSerialization = errors.New("conflicto de serialización en la transacción")
)
