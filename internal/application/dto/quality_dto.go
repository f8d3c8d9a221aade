package dto

import "time"

// CreateQualityControlRequest entrada para abrir un control de calidad (queda pending).
type CreateQualityControlRequest struct {
	Code              string `json:"code" validate:"required,max=50"`
	ProductionOrderID string `json:"production_order_id" validate:"required,uuid"`
	SampleSize        int    `json:"sample_size" validate:"min=0"`
	Notes             string `json:"notes"`
}

// UpdateQualityControlRequest mutación parcial de un control pendiente.
type UpdateQualityControlRequest struct {
	SampleSize *int    `json:"sample_size" validate:"omitempty,min=0"`
	Notes      *string `json:"notes"`
}

// InspectRequest resultado de una inspección sobre un control pending.
type InspectRequest struct {
	Passed       bool           `json:"passed"`
	DefectsFound int            `json:"defects_found" validate:"min=0"`
	Measurements map[string]any `json:"measurements"`
	Notes        string         `json:"notes"`
}

// QualityControlResponse salida de un control de calidad.
type QualityControlResponse struct {
	ID                string         `json:"id"`
	Code              string         `json:"code"`
	ProductionOrderID string         `json:"production_order_id"`
	InspectorID       string         `json:"inspector_id,omitempty"`
	Status            string         `json:"status"`
	SampleSize        int            `json:"sample_size"`
	DefectsFound      int            `json:"defects_found"`
	Measurements      map[string]any `json:"measurements,omitempty"`
	InspectedAt       *time.Time     `json:"inspected_at,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// QualityControlListResponse listado paginado de controles.
type QualityControlListResponse struct {
	Items []QualityControlResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
