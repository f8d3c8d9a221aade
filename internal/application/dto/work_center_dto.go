package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkCenterRequest entrada para crear un centro de trabajo.
type CreateWorkCenterRequest struct {
	Code          string          `json:"code" validate:"required,max=50"`
	Name          string          `json:"name" validate:"required,max=200"`
	Description   string          `json:"description"`
	HoursPerShift decimal.Decimal `json:"hours_per_shift"`
	ShiftsPerDay  int             `json:"shifts_per_day" validate:"min=1,max=4"`
	Efficiency    decimal.Decimal `json:"efficiency"`
	HoursPerUnit  decimal.Decimal `json:"hours_per_unit"` // 1 si se omite
}

// UpdateWorkCenterRequest mutación parcial de un centro de trabajo.
type UpdateWorkCenterRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=200"`
	Description   *string          `json:"description"`
	HoursPerShift *decimal.Decimal `json:"hours_per_shift"`
	ShiftsPerDay  *int             `json:"shifts_per_day" validate:"omitempty,min=1,max=4"`
	Efficiency    *decimal.Decimal `json:"efficiency"`
	HoursPerUnit  *decimal.Decimal `json:"hours_per_unit"`
	Status        *string          `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
}

// WorkCenterResponse salida de un centro de trabajo.
type WorkCenterResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	HoursPerShift decimal.Decimal `json:"hours_per_shift"`
	ShiftsPerDay  int             `json:"shifts_per_day"`
	Efficiency    decimal.Decimal `json:"efficiency"`
	HoursPerUnit  decimal.Decimal `json:"hours_per_unit"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// WorkCenterListResponse listado paginado de centros.
type WorkCenterListResponse struct {
	Items []WorkCenterResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// CapacityResponse capacidad diaria del centro. La carga pendiente se expresa
// en las dos unidades: piezas por producir y su equivalente en horas según el
// tiempo estándar del centro.
type CapacityResponse struct {
	WorkCenterID     string          `json:"work_center_id"`
	Code             string          `json:"code"`
	DailyHours       decimal.Decimal `json:"daily_hours"`        // horas efectivas/día
	PendingUnits     decimal.Decimal `json:"pending_units"`      // unidades en órdenes no terminales
	PendingLoadHours decimal.Decimal `json:"pending_load_hours"` // unidades × horas por unidad
	AvailableHours   decimal.Decimal `json:"available_hours"`    // horas/día - carga en horas (mínimo 0)
}
