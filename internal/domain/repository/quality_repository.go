package repository

import "github.com/plataforma-app/erp-api/internal/domain/entity"

// QualityRepository define el puerto de persistencia para QualityControl.
type QualityRepository interface {
	Create(qc *entity.QualityControl) error
	GetByID(id string) (*entity.QualityControl, error)
	Update(qc *entity.QualityControl) error
	List(params ListParams) ([]*entity.QualityControl, error)
	ListByOrder(orderID string) ([]*entity.QualityControl, error)
	Delete(id string) (bool, error)
	CountByStatus() ([]StatusCount, error)
}
