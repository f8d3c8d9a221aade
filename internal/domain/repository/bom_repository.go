package repository

import "github.com/plataforma-app/erp-api/internal/domain/entity"

// BOMRepository define el puerto de persistencia para BOM (cabecera + ítems).
type BOMRepository interface {
	Create(bom *entity.BOM) error
	GetByID(id string) (*entity.BOM, error)
	GetByCode(code string) (*entity.BOM, error)
	Update(bom *entity.BOM) error
	List(params ListParams) ([]*entity.BOM, error)
	Delete(id string) (bool, error)
	CountByStatus() ([]StatusCount, error)
}
