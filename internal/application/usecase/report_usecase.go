package usecase

import (
	"context"

	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
)

// OrderReportPDFGenerator puerto de generación del reporte PDF de una orden
// de producción. Implementado en infrastructure/pdf con Maroto.
type OrderReportPDFGenerator interface {
	GenerateOrderReport(ctx context.Context, order *entity.ProductionOrder,
		bom *entity.BOM, wc *entity.WorkCenter, controls []*entity.QualityControl) ([]byte, error)
}

// OrderReportUseCase arma el reporte PDF de una orden: orden + BOM + centro
// de trabajo + controles de calidad asociados.
type OrderReportUseCase struct {
	orderRepo repository.ProductionOrderRepository
	bomRepo   repository.BOMRepository
	wcRepo    repository.WorkCenterRepository
	qcRepo    repository.QualityRepository
	generator OrderReportPDFGenerator
}

func NewOrderReportUseCase(
	orderRepo repository.ProductionOrderRepository,
	bomRepo repository.BOMRepository,
	wcRepo repository.WorkCenterRepository,
	qcRepo repository.QualityRepository,
	generator OrderReportPDFGenerator,
) *OrderReportUseCase {
	return &OrderReportUseCase{
		orderRepo: orderRepo,
		bomRepo:   bomRepo,
		wcRepo:    wcRepo,
		qcRepo:    qcRepo,
		generator: generator,
	}
}

// Generate devuelve los bytes del PDF, o nil si la orden no existe.
func (uc *OrderReportUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	bom, err := uc.bomRepo.GetByID(order.BOMID)
	if err != nil {
		return nil, err
	}
	wc, err := uc.wcRepo.GetByID(order.WorkCenterID)
	if err != nil {
		return nil, err
	}
	controls, err := uc.qcRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateOrderReport(ctx, order, bom, wc, controls)
}
