package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
	"github.com/plataforma-app/erp-api/pkg/textutil"
)

// WorkCenterUseCase casos de uso CRUD para centros de trabajo más el cálculo
// de capacidad disponible.
type WorkCenterUseCase struct {
	repo      repository.WorkCenterRepository
	orderRepo repository.ProductionOrderRepository
}

// NewWorkCenterUseCase construye el caso de uso.
func NewWorkCenterUseCase(repo repository.WorkCenterRepository, orderRepo repository.ProductionOrderRepository) *WorkCenterUseCase {
	return &WorkCenterUseCase{repo: repo, orderRepo: orderRepo}
}

// Create crea un centro de trabajo activo.
func (uc *WorkCenterUseCase) Create(in dto.CreateWorkCenterRequest) (*dto.WorkCenterResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hoursPerUnit := in.HoursPerUnit
	if hoursPerUnit.IsZero() {
		hoursPerUnit = decimal.NewFromInt(1)
	}
	if err := validateCapacityInputs(in.HoursPerShift, in.Efficiency, hoursPerUnit); err != nil {
		return nil, err
	}
	now := time.Now()
	wc := &entity.WorkCenter{
		ID:            uuid.New().String(),
		Code:          in.Code,
		Name:          in.Name,
		Description:   in.Description,
		HoursPerShift: in.HoursPerShift,
		ShiftsPerDay:  in.ShiftsPerDay,
		Efficiency:    in.Efficiency,
		HoursPerUnit:  hoursPerUnit,
		Status:        entity.WorkCenterStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(wc); err != nil {
		return nil, err
	}
	return toWorkCenterResponse(wc), nil
}

// GetByID obtiene un centro por ID.
func (uc *WorkCenterUseCase) GetByID(id string) (*dto.WorkCenterResponse, error) {
	wc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wc == nil {
		return nil, nil
	}
	return toWorkCenterResponse(wc), nil
}

// Update mutación parcial de un centro.
func (uc *WorkCenterUseCase) Update(id string, in dto.UpdateWorkCenterRequest) (*dto.WorkCenterResponse, error) {
	wc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wc == nil {
		return nil, nil
	}
	if in.Name != nil {
		wc.Name = *in.Name
	}
	if in.Description != nil {
		wc.Description = *in.Description
	}
	if in.HoursPerShift != nil {
		wc.HoursPerShift = *in.HoursPerShift
	}
	if in.ShiftsPerDay != nil {
		wc.ShiftsPerDay = *in.ShiftsPerDay
	}
	if in.Efficiency != nil {
		wc.Efficiency = *in.Efficiency
	}
	if in.HoursPerUnit != nil {
		wc.HoursPerUnit = *in.HoursPerUnit
	}
	if in.Status != nil {
		wc.Status = *in.Status
	}
	if err := validateCapacityInputs(wc.HoursPerShift, wc.Efficiency, wc.HoursPerUnit); err != nil {
		return nil, err
	}
	wc.UpdatedAt = time.Now()
	if err := uc.repo.Update(wc); err != nil {
		return nil, err
	}
	return toWorkCenterResponse(wc), nil
}

// List lista centros con paginación, filtro por estado y búsqueda.
func (uc *WorkCenterUseCase) List(in dto.ListRequest) (*dto.WorkCenterListResponse, error) {
	list, err := uc.repo.List(repository.ListParams{
		Status: in.Status,
		Search: textutil.Fold(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorkCenterResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWorkCenterResponse(w))
	}
	return &dto.WorkCenterListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina un centro sin órdenes pendientes asignadas.
func (uc *WorkCenterUseCase) Delete(id string) error {
	wc, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if wc == nil {
		return domain.ErrNotFound
	}
	pending, err := uc.orderRepo.PendingQuantityByWorkCenter(id)
	if err != nil {
		return err
	}
	if pending.GreaterThan(decimal.Zero) {
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

// Capacity capacidad diaria disponible: horas teóricas menos la carga de
// órdenes no terminales asignadas al centro, convertida a horas con el
// tiempo estándar por unidad.
func (uc *WorkCenterUseCase) Capacity(id string) (*dto.CapacityResponse, error) {
	wc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wc == nil {
		return nil, domain.ErrNotFound
	}
	pending, err := uc.orderRepo.PendingQuantityByWorkCenter(id)
	if err != nil {
		return nil, err
	}
	daily := wc.TheoreticalDailyCapacity()
	loadHours := wc.LoadHours(pending)
	available := daily.Sub(loadHours)
	if available.IsNegative() {
		available = decimal.Zero
	}
	return &dto.CapacityResponse{
		WorkCenterID:     wc.ID,
		Code:             wc.Code,
		DailyHours:       daily,
		PendingUnits:     pending,
		PendingLoadHours: loadHours,
		AvailableHours:   available,
	}, nil
}

func validateCapacityInputs(hoursPerShift, efficiency, hoursPerUnit decimal.Decimal) error {
	if hoursPerShift.LessThanOrEqual(decimal.Zero) || hoursPerShift.GreaterThan(decimal.NewFromInt(24)) {
		return domain.ErrInvalidInput
	}
	if efficiency.LessThanOrEqual(decimal.Zero) || efficiency.GreaterThan(decimal.NewFromInt(1)) {
		return domain.ErrInvalidInput
	}
	if hoursPerUnit.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toWorkCenterResponse(w *entity.WorkCenter) *dto.WorkCenterResponse {
	if w == nil {
		return nil
	}
	return &dto.WorkCenterResponse{
		ID:            w.ID,
		Code:          w.Code,
		Name:          w.Name,
		Description:   w.Description,
		HoursPerShift: w.HoursPerShift,
		ShiftsPerDay:  w.ShiftsPerDay,
		Efficiency:    w.Efficiency,
		HoursPerUnit:  w.HoursPerUnit,
		Status:        w.Status,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}
