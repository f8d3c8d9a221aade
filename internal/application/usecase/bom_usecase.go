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

// BOMUseCase casos de uso CRUD para listas de materiales, más la explosión
// multinivel y el cálculo de costo.
type BOMUseCase struct {
	repo repository.BOMRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(repo repository.BOMRepository) *BOMUseCase {
	return &BOMUseCase{repo: repo}
}

// Create crea una BOM en estado draft, versión 1.
func (uc *BOMUseCase) Create(in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	bom := &entity.BOM{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		ProductName: in.ProductName,
		Version:     1,
		Status:      entity.BOMStatusDraft,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items, err := buildItems(bom.ID, in.Items)
	if err != nil {
		return nil, err
	}
	bom.Items = items
	if err := uc.repo.Create(bom); err != nil {
		return nil, err
	}
	return toBOMResponse(bom), nil
}

// GetByID obtiene una BOM por ID con sus ítems.
func (uc *BOMUseCase) GetByID(id string) (*dto.BOMResponse, error) {
	bom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, nil
	}
	return toBOMResponse(bom), nil
}

// Update mutación parcial. Reemplazar ítems incrementa la versión.
func (uc *BOMUseCase) Update(id string, in dto.UpdateBOMRequest) (*dto.BOMResponse, error) {
	bom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, nil
	}
	if in.Name != nil {
		bom.Name = *in.Name
	}
	if in.ProductName != nil {
		bom.ProductName = *in.ProductName
	}
	if in.Status != nil {
		bom.Status = *in.Status
	}
	if in.Notes != nil {
		bom.Notes = *in.Notes
	}
	if in.Items != nil {
		items, err := buildItems(bom.ID, in.Items)
		if err != nil {
			return nil, err
		}
		bom.Items = items
		bom.Version++
	}
	bom.UpdatedAt = time.Now()
	if err := uc.repo.Update(bom); err != nil {
		return nil, err
	}
	return toBOMResponse(bom), nil
}

// List lista BOMs con paginación, filtro por estado y búsqueda sin tildes.
func (uc *BOMUseCase) List(in dto.ListRequest) (*dto.BOMListResponse, error) {
	list, err := uc.repo.List(repository.ListParams{
		Status: in.Status,
		Search: textutil.Fold(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BOMResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBOMResponse(b))
	}
	return &dto.BOMListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete elimina una BOM. Devuelve ErrNotFound si no existe.
func (uc *BOMUseCase) Delete(id string) error {
	deleted, err := uc.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// Stats conteo de BOMs por estado.
func (uc *BOMUseCase) Stats() (*dto.StatsResponse, error) {
	counts, err := uc.repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	return toStatsResponse(counts), nil
}

// maxExplodeDepth nivel máximo de subensambles; por encima se asume un ciclo.
const maxExplodeDepth = 32

// Explode explota la BOM en sus componentes hoja, multiplicando cantidades a
// través de los subensambles. Un ciclo entre BOMs devuelve ErrConflict.
func (uc *BOMUseCase) Explode(id string) (*dto.ExplodeBOMResponse, error) {
	bom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, domain.ErrNotFound
	}

	// Acumula por código de componente: la misma pieza puede entrar por varias ramas.
	acc := map[string]*dto.ExplodedComponent{}
	order := []string{}
	visiting := map[string]bool{}

	var walk func(b *entity.BOM, factor decimal.Decimal, level int) error
	walk = func(b *entity.BOM, factor decimal.Decimal, level int) error {
		if level > maxExplodeDepth || visiting[b.ID] {
			return domain.ErrConflict
		}
		visiting[b.ID] = true
		defer delete(visiting, b.ID)

		for _, item := range b.Items {
			qty := item.Quantity.Mul(factor)
			if item.Leaf() {
				if c, ok := acc[item.ComponentCode]; ok {
					c.Quantity = c.Quantity.Add(qty)
					c.TotalCost = c.Quantity.Mul(c.UnitCost)
					if level > c.Level {
						c.Level = level
					}
					continue
				}
				acc[item.ComponentCode] = &dto.ExplodedComponent{
					ComponentCode: item.ComponentCode,
					ComponentName: item.ComponentName,
					Quantity:      qty,
					Unit:          item.Unit,
					UnitCost:      item.UnitCost,
					TotalCost:     qty.Mul(item.UnitCost),
					Level:         level,
				}
				order = append(order, item.ComponentCode)
				continue
			}
			child, err := uc.repo.GetByID(item.ChildBOMID)
			if err != nil {
				return err
			}
			if child == nil {
				return domain.ErrNotFound
			}
			if err := walk(child, qty, level+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(bom, decimal.NewFromInt(1), 0); err != nil {
		return nil, err
	}

	out := &dto.ExplodeBOMResponse{BOMID: bom.ID, Code: bom.Code, TotalCost: decimal.Zero}
	for _, code := range order {
		c := acc[code]
		out.Components = append(out.Components, *c)
		out.TotalCost = out.TotalCost.Add(c.TotalCost)
	}
	return out, nil
}

// Cost costo de fabricar una unidad: suma de la explosión completa.
func (uc *BOMUseCase) Cost(id string) (*dto.BOMCostResponse, error) {
	exploded, err := uc.Explode(id)
	if err != nil {
		return nil, err
	}
	return &dto.BOMCostResponse{
		BOMID:     exploded.BOMID,
		Code:      exploded.Code,
		TotalCost: exploded.TotalCost,
	}, nil
}

func buildItems(bomID string, in []dto.BOMItemRequest) ([]entity.BOMItem, error) {
	items := make([]entity.BOMItem, 0, len(in))
	for _, it := range in {
		if it.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		unit := it.Unit
		if unit == "" {
			unit = "un"
		}
		items = append(items, entity.BOMItem{
			ID:            uuid.New().String(),
			BOMID:         bomID,
			ComponentCode: it.ComponentCode,
			ComponentName: it.ComponentName,
			Quantity:      it.Quantity,
			Unit:          unit,
			UnitCost:      it.UnitCost,
			ChildBOMID:    it.ChildBOMID,
		})
	}
	return items, nil
}

func toBOMResponse(b *entity.BOM) *dto.BOMResponse {
	if b == nil {
		return nil
	}
	items := make([]dto.BOMItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.BOMItemResponse{
			ID:            it.ID,
			ComponentCode: it.ComponentCode,
			ComponentName: it.ComponentName,
			Quantity:      it.Quantity,
			Unit:          it.Unit,
			UnitCost:      it.UnitCost,
			ChildBOMID:    it.ChildBOMID,
		})
	}
	return &dto.BOMResponse{
		ID:          b.ID,
		Code:        b.Code,
		Name:        b.Name,
		ProductName: b.ProductName,
		Version:     b.Version,
		Status:      b.Status,
		Notes:       b.Notes,
		Items:       items,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toStatsResponse(counts []repository.StatusCount) *dto.StatsResponse {
	out := &dto.StatsResponse{}
	for _, c := range counts {
		out.Total += c.Count
		out.ByStatus = append(out.ByStatus, dto.StatusCountResponse{Status: c.Status, Count: c.Count})
	}
	return out
}
