package repository

import "github.com/plataforma-app/erp-api/internal/domain/entity"

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(p *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	GetByCode(code string) (*entity.Project, error)
	Update(p *entity.Project) error
	List(params ListParams) ([]*entity.Project, error)
	Delete(id string) (bool, error)
	CountByStatus() ([]StatusCount, error)
}
