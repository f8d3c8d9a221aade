package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para ProductionOrder.
const (
	OrderStatusDraft      = "draft"
	OrderStatusReleased   = "released"
	OrderStatusInProgress = "in_progress"
	OrderStatusFinished   = "finished"
	OrderStatusCancelled  = "cancelled"
)

// Prioridades de orden de producción.
const (
	OrderPriorityLow    = "low"
	OrderPriorityNormal = "normal"
	OrderPriorityHigh   = "high"
	OrderPriorityUrgent = "urgent"
)

// ProductionOrder orden de producción: fabrica Quantity unidades según una BOM
// en un centro de trabajo.
type ProductionOrder struct {
	ID           string
	Code         string // único
	BOMID        string
	WorkCenterID string
	Quantity     decimal.Decimal
	Status       string // draft, released, in_progress, finished, cancelled
	Priority     string // low, normal, high, urgent
	ScheduledAt  *time.Time
	StartedAt    *time.Time
	FinishedAt   *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Terminal indica si la orden está en un estado final (no consume capacidad).
func (o *ProductionOrder) Terminal() bool {
	return o.Status == OrderStatusFinished || o.Status == OrderStatusCancelled
}
