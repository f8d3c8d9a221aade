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

// QualityUseCase casos de uso de control de calidad. Un control nace pending y
// se resuelve una única vez con Inspect; re-inspeccionar es conflicto.
type QualityUseCase struct {
	repo      repository.QualityRepository
	orderRepo repository.ProductionOrderRepository
}

// NewQualityUseCase construye el caso de uso.
func NewQualityUseCase(repo repository.QualityRepository, orderRepo repository.ProductionOrderRepository) *QualityUseCase {
	return &QualityUseCase{repo: repo, orderRepo: orderRepo}
}

// Create abre un control pending sobre una orden existente.
func (uc *QualityUseCase) Create(in dto.CreateQualityControlRequest) (*dto.QualityControlResponse, error) {
	order, err := uc.orderRepo.GetByID(in.ProductionOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	qc := &entity.QualityControl{
		ID:                uuid.New().String(),
		Code:              in.Code,
		ProductionOrderID: in.ProductionOrderID,
		Status:            entity.QCStatusPending,
		SampleSize:        in.SampleSize,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(qc); err != nil {
		return nil, err
	}
	return toQCResponse(qc), nil
}

// GetByID obtiene un control por ID.
func (uc *QualityUseCase) GetByID(id string) (*dto.QualityControlResponse, error) {
	qc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if qc == nil {
		return nil, nil
	}
	return toQCResponse(qc), nil
}

// Update mutación parcial; solo controles pending son editables.
func (uc *QualityUseCase) Update(id string, in dto.UpdateQualityControlRequest) (*dto.QualityControlResponse, error) {
	qc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if qc == nil {
		return nil, nil
	}
	if qc.Settled() {
		return nil, domain.ErrConflict
	}
	if in.SampleSize != nil {
		qc.SampleSize = *in.SampleSize
	}
	if in.Notes != nil {
		qc.Notes = *in.Notes
	}
	qc.UpdatedAt = time.Now()
	if err := uc.repo.Update(qc); err != nil {
		return nil, err
	}
	return toQCResponse(qc), nil
}

// Inspect resuelve un control pending con el resultado de la inspección.
// Se permite inspeccionar órdenes ya terminadas (auditoría posterior).
func (uc *QualityUseCase) Inspect(id, inspectorID string, in dto.InspectRequest) (*dto.QualityControlResponse, error) {
	qc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if qc == nil {
		return nil, domain.ErrNotFound
	}
	if qc.Settled() {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	if in.Passed {
		qc.Status = entity.QCStatusPassed
	} else {
		qc.Status = entity.QCStatusFailed
	}
	qc.InspectorID = inspectorID
	qc.DefectsFound = in.DefectsFound
	qc.Measurements = in.Measurements
	qc.InspectedAt = &now
	if in.Notes != "" {
		qc.Notes = in.Notes
	}
	qc.UpdatedAt = now
	if err := uc.repo.Update(qc); err != nil {
		return nil, err
	}
	return toQCResponse(qc), nil
}

// List lista controles con paginación, filtro por estado y búsqueda.
func (uc *QualityUseCase) List(in dto.ListRequest) (*dto.QualityControlListResponse, error) {
	list, err := uc.repo.List(repository.ListParams{
		Status: in.Status,
		Search: textutil.Fold(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.QualityControlResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *toQCResponse(q))
	}
	return &dto.QualityControlListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina un control. Devuelve ErrNotFound si no existe.
func (uc *QualityUseCase) Delete(id string) error {
	deleted, err := uc.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// Stats conteo de controles por estado.
func (uc *QualityUseCase) Stats() (*dto.StatsResponse, error) {
	counts, err := uc.repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	return toStatsResponse(counts), nil
}

func toQCResponse(q *entity.QualityControl) *dto.QualityControlResponse {
	if q == nil {
		return nil
	}
	return &dto.QualityControlResponse{
		ID:                q.ID,
		Code:              q.Code,
		ProductionOrderID: q.ProductionOrderID,
		InspectorID:       q.InspectorID,
		Status:            q.Status,
		SampleSize:        q.SampleSize,
		DefectsFound:      q.DefectsFound,
		Measurements:      q.Measurements,
		InspectedAt:       q.InspectedAt,
		Notes:             q.Notes,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}
