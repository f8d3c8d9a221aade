package entity

import "time"

// Estados válidos para Project.
const (
	ProjectStatusPlanned   = "planned"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// Project proyecto del módulo pro; agrupa tareas.
type Project struct {
	ID          string
	Code        string // único
	Name        string
	Description string
	Status      string // planned, active, on_hold, completed, cancelled
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
