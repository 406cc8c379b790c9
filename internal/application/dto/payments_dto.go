package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// CreateAdvancePaymentRequest alta de un pago de anticipo (queda PENDIENTE).
type CreateAdvancePaymentRequest struct {
	AccountsReceivableID int64           `json:"accountsReceivableId"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Method               string          `json:"method"`
	DocumentID           *int64          `json:"documentId,omitempty"`
}

// MarkAdvancePaymentPaidRequest transición a PAGADO, con desviación de venta
// opcional.
type MarkAdvancePaymentPaidRequest struct {
	SalesDeviation *decimal.Decimal `json:"salesDeviation,omitempty"`
}

// AdvancePaymentResponse representación de un pago hacia la API.
type AdvancePaymentResponse struct {
	ID                   int64           `json:"id"`
	AccountsReceivableID int64           `json:"accountsReceivableId"`
	ConsecutiveID        int             `json:"consecutiveId"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Status               string          `json:"status"`
	PaymentDate          *time.Time      `json:"paymentDate,omitempty"`
}

// CreatePayableHistoryRequest alta de un abono a cuenta por pagar.
type CreatePayableHistoryRequest struct {
	AccountPayableID int64           `json:"accountPayableId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	DocumentID       *int64          `json:"documentId,omitempty"`
}

// PayableHistoryResponse representación de un abono hacia la API.
type PayableHistoryResponse struct {
	ID               int64           `json:"id"`
	AccountPayableID int64           `json:"accountPayableId"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	PaymentDate      *time.Time      `json:"paymentDate,omitempty"`
}

// ToPayableHistoryResponse mapea la entidad al contrato HTTP.
func ToPayableHistoryResponse(h *entity.AccountPayableHistory) PayableHistoryResponse {
	return PayableHistoryResponse{
		ID:               h.ID,
		AccountPayableID: h.AccountPayableID,
		Amount:           h.Amount,
		Currency:         string(h.Currency),
		Status:           h.Status,
		PaymentDate:      h.PaymentDate,
	}
}

// ReceivableResponse estado de una cuenta por cobrar.
type ReceivableResponse struct {
	ID        int64           `json:"id"`
	ProjectID int64           `json:"projectId"`
	Currency  string          `json:"currency"`
	TotalSale decimal.Decimal `json:"totalSale"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	Balance   decimal.Decimal `json:"balance"`
	IsPaid    bool            `json:"isPaid"`
}

// ToAdvancePaymentResponse mapea la entidad al contrato HTTP.
func ToAdvancePaymentResponse(r *entity.AdvancePaymentRecord) AdvancePaymentResponse {
	return AdvancePaymentResponse{
		ID:                   r.ID,
		AccountsReceivableID: r.AccountsReceivableID,
		ConsecutiveID:        r.ConsecutiveID,
		Amount:               r.Amount,
		Currency:             string(r.Currency),
		Status:               r.Status,
		PaymentDate:          r.PaymentDate,
	}
}

// ToReceivableResponse mapea la entidad al contrato HTTP.
func ToReceivableResponse(a *entity.AccountsReceivable) ReceivableResponse {
	return ReceivableResponse{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		Currency:  string(a.Currency),
		TotalSale: a.TotalSale,
		TotalPaid: a.TotalPaid,
		Balance:   a.Balance,
		IsPaid:    a.IsPaid,
	}
}
