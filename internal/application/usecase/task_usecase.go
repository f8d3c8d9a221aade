package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/lifecycle"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
	"github.com/plataforma-app/erp-api/pkg/textutil"
)

// TaskUseCase casos de uso de tareas. Una tarea solo pasa a done cuando todas
// sus dependencias están done; el cambio de estado va por acción explícita.
type TaskUseCase struct {
	repo        repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo, projectRepo: projectRepo}
}

// Create crea una tarea todo dentro de un proyecto existente.
func (uc *TaskUseCase) Create(in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkDependencies(in.ProjectID, "", in.DependsOn); err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.TaskPriorityNormal
	}
	now := time.Now()
	t := &entity.Task{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      entity.TaskStatusTodo,
		Priority:    priority,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
		DependsOn:   in.DependsOn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(t); err != nil {
		return nil, err
	}
	return toTaskResponse(t), nil
}

// GetByID obtiene una tarea por ID.
func (uc *TaskUseCase) GetByID(id string) (*dto.TaskResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return toTaskResponse(t), nil
}

// Update mutación parcial (el estado cambia solo vía ChangeStatus).
func (uc *TaskUseCase) Update(id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.AssigneeID != nil {
		t.AssigneeID = *in.AssigneeID
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.DependsOn != nil {
		if err := uc.checkDependencies(t.ProjectID, t.ID, in.DependsOn); err != nil {
			return nil, err
		}
		t.DependsOn = in.DependsOn
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(t); err != nil {
		return nil, err
	}
	return toTaskResponse(t), nil
}

// ChangeStatus aplica la transición de estado. Pasar a done exige que todas
// las dependencias estén done; de lo contrario es conflicto.
func (uc *TaskUseCase) ChangeStatus(id string, in dto.TaskStatusRequest) (*dto.TaskResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if err := lifecycle.CanTransitionTask(t.Status, in.Status); err != nil {
		return nil, err
	}
	if in.Status == entity.TaskStatusDone {
		for _, depID := range t.DependsOn {
			dep, err := uc.repo.GetByID(depID)
			if err != nil {
				return nil, err
			}
			if dep == nil || dep.Status != entity.TaskStatusDone {
				return nil, domain.ErrConflict
			}
		}
	}
	t.Status = in.Status
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(t); err != nil {
		return nil, err
	}
	return toTaskResponse(t), nil
}

// List lista tareas con paginación, filtro por estado y búsqueda.
func (uc *TaskUseCase) List(in dto.ListRequest) (*dto.TaskListResponse, error) {
	list, err := uc.repo.List(repository.ListParams{
		Status: in.Status,
		Search: textutil.Fold(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTaskResponse(t))
	}
	return &dto.TaskListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina una tarea. Devuelve ErrNotFound si no existe.
func (uc *TaskUseCase) Delete(id string) error {
	deleted, err := uc.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// checkDependencies valida que cada dependencia exista, pertenezca al mismo
// proyecto y no sea la propia tarea.
func (uc *TaskUseCase) checkDependencies(projectID, selfID string, deps []string) error {
	for _, depID := range deps {
		if depID == selfID {
			return domain.ErrInvalidInput
		}
		dep, err := uc.repo.GetByID(depID)
		if err != nil {
			return err
		}
		if dep == nil {
			return domain.ErrNotFound
		}
		if dep.ProjectID != projectID {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	if t == nil {
		return nil
	}
	return &dto.TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssigneeID:  t.AssigneeID,
		DueDate:     t.DueDate,
		DependsOn:   t.DependsOn,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
