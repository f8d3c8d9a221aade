package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionOrderRequest entrada para crear una orden de producción.
type CreateProductionOrderRequest struct {
	Code         string          `json:"code" validate:"required,max=50"`
	BOMID        string          `json:"bom_id" validate:"required,uuid"`
	WorkCenterID string          `json:"work_center_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"`
	Priority     string          `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	ScheduledAt  *time.Time      `json:"scheduled_at"`
	Notes        string          `json:"notes"`
}

// UpdateProductionOrderRequest mutación parcial de una orden.
// El estado solo cambia vía acciones (release/start/finish/cancel).
type UpdateProductionOrderRequest struct {
	WorkCenterID *string          `json:"work_center_id" validate:"omitempty,uuid"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Priority     *string          `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	ScheduledAt  *time.Time       `json:"scheduled_at"`
	Notes        *string          `json:"notes"`
}

// ProductionOrderResponse salida de una orden de producción.
type ProductionOrderResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	BOMID        string          `json:"bom_id"`
	WorkCenterID string          `json:"work_center_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Status       string          `json:"status"`
	Priority     string          `json:"priority"`
	ScheduledAt  *time.Time      `json:"scheduled_at,omitempty"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductionOrderListResponse listado paginado de órdenes.
type ProductionOrderListResponse struct {
	Items []ProductionOrderResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
