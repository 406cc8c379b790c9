package repository

import "github.com/benettihome/operaciones-api/internal/domain/entity"

// QuotationRepository puerto de persistencia para cotizaciones y sus líneas.
// Los métodos con nombre reemplazan los árboles de include del ORM original.
type QuotationRepository interface {
	GetByID(id int64) (*entity.Quotation, error)
	// GetWithProductsAndProofs carga la cotización con sus líneas de producto
	// y comprobantes de pago (para la conversión a proyecto).
	GetWithProductsAndProofs(id int64) (*entity.Quotation, error)
	// ListManagers gerentes de proyecto asignados, con sus divisiones.
	ListManagers(quotationID int64) ([]entity.CommissionAssignee, error)
	// ListDesigners diseñadores asignados, con sus divisiones.
	ListDesigners(quotationID int64) ([]entity.CommissionAssignee, error)
	Update(q *entity.Quotation) error
}

// QuotationProductRepository re-liga líneas de producto a proformas y órdenes.
type QuotationProductRepository interface {
	ListByProforma(proformaID int64) ([]*entity.QuotationProduct, error)
	// LinkToProforma liga las líneas del triple (cotización, proveedor, marca)
	// a la proforma; devuelve cuántas se ligaron.
	LinkToProforma(proformaID, quotationID, providerID, brandID int64) (int64, error)
	// LinkToPurchaseOrder re-liga las líneas de la proforma (mismo proveedor y
	// marca) a la orden de compra recién creada.
	LinkToPurchaseOrder(purchaseOrderID, proformaID, providerID, brandID int64) (int64, error)
	// MarkPedido marca todas las líneas de la cotización como PEDIDO.
	MarkPedido(quotationID int64) error
}
