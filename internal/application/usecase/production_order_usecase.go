package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/lifecycle"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
	"github.com/plataforma-app/erp-api/pkg/textutil"
)

// ProductionOrderUseCase casos de uso de órdenes de producción: CRUD más las
// transiciones release/start/finish/cancel. Toda transición fuera de la tabla
// de ciclo de vida es un conflicto, nunca un éxito silencioso.
type ProductionOrderUseCase struct {
	repo    repository.ProductionOrderRepository
	bomRepo repository.BOMRepository
	wcRepo  repository.WorkCenterRepository
}

// NewProductionOrderUseCase construye el caso de uso.
func NewProductionOrderUseCase(repo repository.ProductionOrderRepository, bomRepo repository.BOMRepository, wcRepo repository.WorkCenterRepository) *ProductionOrderUseCase {
	return &ProductionOrderUseCase{repo: repo, bomRepo: bomRepo, wcRepo: wcRepo}
}

// Create crea una orden en draft. La BOM y el centro de trabajo deben existir;
// la BOM debe estar activa.
func (uc *ProductionOrderUseCase) Create(in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	bom, err := uc.bomRepo.GetByID(in.BOMID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}
	if bom.Status != entity.BOMStatusActive {
		return nil, domain.ErrConflict
	}
	wc, err := uc.wcRepo.GetByID(in.WorkCenterID)
	if err != nil {
		return nil, err
	}
	if wc == nil {
		return nil, domain.ErrNotFound
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.OrderPriorityNormal
	}
	now := time.Now()
	order := &entity.ProductionOrder{
		ID:           uuid.New().String(),
		Code:         in.Code,
		BOMID:        in.BOMID,
		WorkCenterID: in.WorkCenterID,
		Quantity:     in.Quantity,
		Status:       entity.OrderStatusDraft,
		Priority:     priority,
		ScheduledAt:  in.ScheduledAt,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden por ID.
func (uc *ProductionOrderUseCase) GetByID(id string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toOrderResponse(order), nil
}

// Update mutación parcial. Solo órdenes draft o released son editables.
func (uc *ProductionOrderUseCase) Update(id string, in dto.UpdateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if order.Status != entity.OrderStatusDraft && order.Status != entity.OrderStatusReleased {
		return nil, domain.ErrConflict
	}
	if in.WorkCenterID != nil {
		wc, err := uc.wcRepo.GetByID(*in.WorkCenterID)
		if err != nil {
			return nil, err
		}
		if wc == nil {
			return nil, domain.ErrNotFound
		}
		order.WorkCenterID = *in.WorkCenterID
	}
	if in.Quantity != nil {
		if in.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		order.Quantity = *in.Quantity
	}
	if in.Priority != nil {
		order.Priority = *in.Priority
	}
	if in.ScheduledAt != nil {
		order.ScheduledAt = in.ScheduledAt
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	order.UpdatedAt = time.Now()
	if err := uc.repo.Update(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// List lista órdenes con paginación, filtro por estado y búsqueda.
func (uc *ProductionOrderUseCase) List(in dto.ListRequest) (*dto.ProductionOrderListResponse, error) {
	list, err := uc.repo.List(repository.ListParams{
		Status: in.Status,
		Search: textutil.Fold(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.ProductionOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina una orden. Solo draft es eliminable; el resto conserva historia.
func (uc *ProductionOrderUseCase) Delete(id string) error {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusDraft {
		return domain.ErrConflict
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

// Release libera una orden draft para producción.
func (uc *ProductionOrderUseCase) Release(id string) (*dto.ProductionOrderResponse, error) {
	return uc.transition(id, entity.OrderStatusReleased, nil)
}

// Start inicia una orden released. Una orden ya iniciada, terminada o sin
// liberar devuelve conflicto.
func (uc *ProductionOrderUseCase) Start(id string) (*dto.ProductionOrderResponse, error) {
	now := time.Now()
	return uc.transition(id, entity.OrderStatusInProgress, func(o *entity.ProductionOrder) {
		o.StartedAt = &now
	})
}

// Finish termina una orden in_progress.
func (uc *ProductionOrderUseCase) Finish(id string) (*dto.ProductionOrderResponse, error) {
	now := time.Now()
	return uc.transition(id, entity.OrderStatusFinished, func(o *entity.ProductionOrder) {
		o.FinishedAt = &now
	})
}

// Cancel cancela una orden en cualquier estado no terminal.
func (uc *ProductionOrderUseCase) Cancel(id string) (*dto.ProductionOrderResponse, error) {
	return uc.transition(id, entity.OrderStatusCancelled, nil)
}

func (uc *ProductionOrderUseCase) transition(id, next string, mutate func(*entity.ProductionOrder)) (*dto.ProductionOrderResponse, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := lifecycle.CanTransitionOrder(order.Status, next); err != nil {
		return nil, err
	}
	order.Status = next
	if mutate != nil {
		mutate(order)
	}
	order.UpdatedAt = time.Now()
	if err := uc.repo.Update(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Stats conteo de órdenes por estado.
func (uc *ProductionOrderUseCase) Stats() (*dto.StatsResponse, error) {
	counts, err := uc.repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	return toStatsResponse(counts), nil
}

func toOrderResponse(o *entity.ProductionOrder) *dto.ProductionOrderResponse {
	if o == nil {
		return nil
	}
	return &dto.ProductionOrderResponse{
		ID:           o.ID,
		Code:         o.Code,
		BOMID:        o.BOMID,
		WorkCenterID: o.WorkCenterID,
		Quantity:     o.Quantity,
		Status:       o.Status,
		Priority:     o.Priority,
		ScheduledAt:  o.ScheduledAt,
		StartedAt:    o.StartedAt,
		FinishedAt:   o.FinishedAt,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
