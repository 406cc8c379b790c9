// Package ports contratos de colaboradores externos compartidos por los
// casos de uso: notificaciones y generación de documentos. Ambos son de
// mejor esfuerzo: sus fallas se registran y nunca escalan al llamador.
package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// Notification un envío por plantilla con datos dinámicos.
type Notification struct {
	To          []string
	TemplateID  string
	DynamicData map[string]any
}

// NotificationService envío de correos transaccionales, dispara-y-olvida.
type NotificationService interface {
	Send(ctx context.Context, n Notification) error
}

// ClientQuoteData datos para el PDF de cotización de cliente.
type ClientQuoteData struct {
	ProjectKey   string
	Reference    string
	CustomerName string
	Currency     entity.Currency
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	IVA          decimal.Decimal
	Total        decimal.Decimal
	Advance      decimal.Decimal
	Lines        []QuoteLine
	IssuedAt     time.Time
}

// QuoteLine línea de producto en la cotización impresa.
type QuoteLine struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// PurchaseOrderData datos para el PDF de orden de compra al proveedor.
type PurchaseOrderData struct {
	ProjectKey   string
	OrderID      int64
	ProviderName string
	BrandName    string
	Currency     entity.Currency
	Total        decimal.Decimal
	Lines        []QuoteLine
	IssuedAt     time.Time
}

// AdvanceReceiptData datos para el recibo de anticipo.
type AdvanceReceiptData struct {
	ProjectKey    string
	ConsecutiveID int
	CustomerName  string
	Amount        decimal.Decimal
	AmountInWords string
	Currency      entity.Currency
	Method        string
	PaymentDate   time.Time
}

// DocumentRenderer produce los PDF del flujo (cotización de cliente, orden de
// compra, recibo de anticipo) como bytes listos para descargar o archivar.
type DocumentRenderer interface {
	RenderClientQuote(data ClientQuoteData) ([]byte, error)
	RenderPurchaseOrder(data PurchaseOrderData) ([]byte, error)
	RenderAdvanceReceipt(data AdvanceReceiptData) ([]byte, error)
}
