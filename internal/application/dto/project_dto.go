package dto

import (
	"time"

	"github.com/benettihome/operaciones-api/internal/domain/entity"
)

// CreateProjectRequest conversión de una cotización en proyecto.
type CreateProjectRequest struct {
	QuotationID int64 `json:"quotationId"`
}

// ProjectResponse representación hacia la API.
type ProjectResponse struct {
	ID          int64     `json:"id"`
	QuotationID int64     `json:"quotationId"`
	ProjectKey  string    `json:"projectKey"`
	Reference   string    `json:"reference"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToProjectResponse mapea la entidad al contrato HTTP.
func ToProjectResponse(p *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		QuotationID: p.QuotationID,
		ProjectKey:  p.ProjectKey,
		Reference:   p.Reference,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}
