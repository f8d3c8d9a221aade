package dto

import "time"

// CreateTaskRequest entrada para crear una tarea.
type CreateTaskRequest struct {
	ProjectID   string     `json:"project_id" validate:"required,uuid"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low normal high"`
	AssigneeID  string     `json:"assignee_id" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date"`
	DependsOn   []string   `json:"depends_on" validate:"dive,uuid"`
}

// UpdateTaskRequest mutación parcial de una tarea. El estado cambia vía /:id/status.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low normal high"`
	AssigneeID  *string    `json:"assignee_id" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date"`
	DependsOn   []string   `json:"depends_on" validate:"dive,uuid"`
}

// TaskStatusRequest transición de estado explícita.
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in_progress done cancelled"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	DependsOn   []string   `json:"depends_on,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskListResponse listado paginado de tareas.
type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
