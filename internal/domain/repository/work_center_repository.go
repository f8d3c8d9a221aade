package repository

import "github.com/plataforma-app/erp-api/internal/domain/entity"

// WorkCenterRepository define el puerto de persistencia para WorkCenter.
type WorkCenterRepository interface {
	Create(wc *entity.WorkCenter) error
	GetByID(id string) (*entity.WorkCenter, error)
	GetByCode(code string) (*entity.WorkCenter, error)
	Update(wc *entity.WorkCenter) error
	List(params ListParams) ([]*entity.WorkCenter, error)
	Delete(id string) (bool, error)
}
