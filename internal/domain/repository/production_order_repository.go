package repository

import (
	"github.com/shopspring/decimal"

	"github.com/plataforma-app/erp-api/internal/domain/entity"
)

// ProductionOrderRepository define el puerto de persistencia para ProductionOrder.
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	GetByCode(code string) (*entity.ProductionOrder, error)
	Update(order *entity.ProductionOrder) error
	List(params ListParams) ([]*entity.ProductionOrder, error)
	Delete(id string) (bool, error)
	CountByStatus() ([]StatusCount, error)
	// PendingQuantityByWorkCenter suma las cantidades de órdenes no terminales
	// asignadas al centro, para el cálculo de capacidad.
	PendingQuantityByWorkCenter(workCenterID string) (decimal.Decimal, error)
}
