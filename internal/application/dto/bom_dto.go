package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMItemRequest componente de una BOM en create/update.
type BOMItemRequest struct {
	ComponentCode string          `json:"component_code" validate:"required,max=50"`
	ComponentName string          `json:"component_name" validate:"required,max=200"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit" validate:"omitempty,max=10"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ChildBOMID    string          `json:"child_bom_id" validate:"omitempty,uuid"`
}

// CreateBOMRequest entrada para crear una BOM.
type CreateBOMRequest struct {
	Code        string           `json:"code" validate:"required,max=50"`
	Name        string           `json:"name" validate:"required,max=200"`
	ProductName string           `json:"product_name" validate:"required,max=200"`
	Notes       string           `json:"notes"`
	Items       []BOMItemRequest `json:"items" validate:"dive"`
}

// UpdateBOMRequest mutación parcial de una BOM. Items reemplaza el conjunto completo.
type UpdateBOMRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=200"`
	ProductName *string          `json:"product_name" validate:"omitempty,max=200"`
	Status      *string          `json:"status" validate:"omitempty,oneof=draft active obsolete"`
	Notes       *string          `json:"notes"`
	Items       []BOMItemRequest `json:"items" validate:"dive"`
}

// BOMItemResponse componente en respuestas.
type BOMItemResponse struct {
	ID            string          `json:"id"`
	ComponentCode string          `json:"component_code"`
	ComponentName string          `json:"component_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ChildBOMID    string          `json:"child_bom_id,omitempty"`
}

// BOMResponse salida de una BOM.
type BOMResponse struct {
	ID          string            `json:"id"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	ProductName string            `json:"product_name"`
	Version     int               `json:"version"`
	Status      string            `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	Items       []BOMItemResponse `json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// BOMListResponse listado paginado de BOMs.
type BOMListResponse struct {
	Items []BOMResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// ExplodedComponent línea de la explosión multinivel de una BOM.
type ExplodedComponent struct {
	ComponentCode string          `json:"component_code"`
	ComponentName string          `json:"component_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Level         int             `json:"level"`
}

// ExplodeBOMResponse salida de la explosión: componentes hoja acumulados.
type ExplodeBOMResponse struct {
	BOMID      string              `json:"bom_id"`
	Code       string              `json:"code"`
	Components []ExplodedComponent `json:"components"`
	TotalCost  decimal.Decimal     `json:"total_cost"`
}

// BOMCostResponse costo total estimado de fabricar una unidad según la BOM.
type BOMCostResponse struct {
	BOMID     string          `json:"bom_id"`
	Code      string          `json:"code"`
	TotalCost decimal.Decimal `json:"total_cost"`
}
