package entity

import "time"

// Estados válidos para Task.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusCancelled  = "cancelled"
)

// Prioridades de tarea.
const (
	TaskPriorityLow    = "low"
	TaskPriorityNormal = "normal"
	TaskPriorityHigh   = "high"
)

// Task tarea de un proyecto. DependsOn lista los IDs de tareas que deben estar
// done antes de que esta pueda completarse.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      string // todo, in_progress, done, cancelled
	Priority    string // low, normal, high
	AssigneeID  string // usuario asignado, vacío si no hay
	DueDate     *time.Time
	DependsOn   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
