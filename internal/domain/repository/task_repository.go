package repository

import "github.com/plataforma-app/erp-api/internal/domain/entity"

// TaskRepository define el puerto de persistencia para Task (tarea + dependencias).
type TaskRepository interface {
	Create(t *entity.Task) error
	GetByID(id string) (*entity.Task, error)
	Update(t *entity.Task) error
	List(params ListParams) ([]*entity.Task, error)
	ListByProject(projectID string) ([]*entity.Task, error)
	Delete(id string) (bool, error)
}
