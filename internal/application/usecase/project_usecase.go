package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
	"github.com/plataforma-app/erp-api/pkg/textutil"
)

// ProjectUseCase casos de uso CRUD para proyectos.
type ProjectUseCase struct {
	repo     repository.ProjectRepository
	taskRepo repository.TaskRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, taskRepo repository.TaskRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, taskRepo: taskRepo}
}

// Create crea un proyecto en estado planned.
func (uc *ProjectUseCase) Create(in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Project{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Status:      entity.ProjectStatusPlanned,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// GetByID obtiene un proyecto por ID.
func (uc *ProjectUseCase) GetByID(id string) (*dto.ProjectResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProjectResponse(p), nil
}

// Update mutación parcial. Completar un proyecto exige todas sus tareas cerradas.
func (uc *ProjectUseCase) Update(id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Status != nil && *in.Status == entity.ProjectStatusCompleted && p.Status != entity.ProjectStatusCompleted {
		tasks, err := uc.taskRepo.ListByProject(id)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			if t.Status != entity.TaskStatusDone && t.Status != entity.TaskStatusCancelled {
				return nil, domain.ErrConflict
			}
		}
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// List lista proyectos con paginación, filtro por estado y búsqueda.
func (uc *ProjectUseCase) List(in dto.ListRequest) (*dto.ProjectListResponse, error) {
	list, err := uc.repo.List(repository.ListParams{
		Status: in.Status,
		Search: textutil.Fold(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return &dto.ProjectListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina un proyecto sin tareas abiertas.
func (uc *ProjectUseCase) Delete(id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	tasks, err := uc.taskRepo.ListByProject(id)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.Status == entity.TaskStatusTodo || t.Status == entity.TaskStatusInProgress {
			return domain.ErrConflict
		}
	}
	deleted, err := uc.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// Stats conteo de proyectos por estado.
func (uc *ProjectUseCase) Stats() (*dto.StatsResponse, error) {
	counts, err := uc.repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	return toStatsResponse(counts), nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
