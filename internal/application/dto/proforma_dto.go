package dto

import (
	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// CreateProformaRequest alta de una proforma de proveedor+marca.
type CreateProformaRequest struct {
	ProjectID  int64           `json:"projectId"`
	ProviderID int64           `json:"providerId"`
	BrandID    int64           `json:"brandId"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	DocumentID *int64          `json:"documentId,omitempty"`
}

// UpdateProformaRequest actualización de monto, documento o proveedor/marca.
type UpdateProformaRequest struct {
	ProviderID *int64           `json:"providerId,omitempty"`
	BrandID    *int64           `json:"brandId,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	DocumentID *int64           `json:"documentId,omitempty"`
}

// ProformaResponse representación hacia la API.
type ProformaResponse struct {
	ID             int64           `json:"id"`
	ProjectID      int64           `json:"projectId"`
	ProviderID     int64           `json:"providerId"`
	BrandID        int64           `json:"brandId"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	LinkedProducts int64           `json:"linkedProducts"`
}

// ToProformaResponse mapea la entidad al contrato HTTP.
func ToProformaResponse(p *entity.Proforma, linked int64) ProformaResponse {
	return ProformaResponse{
		ID:             p.ID,
		ProjectID:      p.ProjectID,
		ProviderID:     p.ProviderID,
		BrandID:        p.BrandID,
		Amount:         p.Amount,
		Currency:       string(p.Currency),
		LinkedProducts: linked,
	}
}
