package usecase_test

import (
	"github.com/shopspring/decimal"

	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Copian las entidades al
// entrar y salir para que los tests no compartan punteros con el "repo".
// ──────────────────────────────────────────────────────────────────────────────

type fakeBOMRepo struct {
	boms map[string]*entity.BOM
}

func newFakeBOMRepo() *fakeBOMRepo { return &fakeBOMRepo{boms: map[string]*entity.BOM{}} }

func (r *fakeBOMRepo) Create(b *entity.BOM) error {
	cp := *b
	r.boms[b.ID] = &cp
	return nil
}

func (r *fakeBOMRepo) GetByID(id string) (*entity.BOM, error) {
	if b, ok := r.boms[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeBOMRepo) GetByCode(code string) (*entity.BOM, error) {
	for _, b := range r.boms {
		if b.Code == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBOMRepo) Update(b *entity.BOM) error {
	cp := *b
	r.boms[b.ID] = &cp
	return nil
}

func (r *fakeBOMRepo) List(_ repository.ListParams) ([]*entity.BOM, error) {
	out := make([]*entity.BOM, 0, len(r.boms))
	for _, b := range r.boms {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBOMRepo) Delete(id string) (bool, error) {
	if _, ok := r.boms[id]; !ok {
		return false, nil
	}
	delete(r.boms, id)
	return true, nil
}

func (r *fakeBOMRepo) CountByStatus() ([]repository.StatusCount, error) {
	counts := map[string]int{}
	for _, b := range r.boms {
		counts[b.Status]++
	}
	out := []repository.StatusCount{}
	for status, n := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.ProductionOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*entity.ProductionOrder{}}
}

func (r *fakeOrderRepo) Create(o *entity.ProductionOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByCode(code string) (*entity.ProductionOrder, error) {
	for _, o := range r.orders {
		if o.Code == code {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(o *entity.ProductionOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) List(_ repository.ListParams) ([]*entity.ProductionOrder, error) {
	out := make([]*entity.ProductionOrder, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) Delete(id string) (bool, error) {
	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

func (r *fakeOrderRepo) CountByStatus() ([]repository.StatusCount, error) {
	counts := map[string]int{}
	for _, o := range r.orders {
		counts[o.Status]++
	}
	out := []repository.StatusCount{}
	for status, n := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

func (r *fakeOrderRepo) PendingQuantityByWorkCenter(workCenterID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range r.orders {
		if o.WorkCenterID == workCenterID && !o.Terminal() {
			total = total.Add(o.Quantity)
		}
	}
	return total, nil
}

type fakeWorkCenterRepo struct {
	centers map[string]*entity.WorkCenter
}

func newFakeWorkCenterRepo() *fakeWorkCenterRepo {
	return &fakeWorkCenterRepo{centers: map[string]*entity.WorkCenter{}}
}

func (r *fakeWorkCenterRepo) Create(w *entity.WorkCenter) error {
	cp := *w
	r.centers[w.ID] = &cp
	return nil
}

func (r *fakeWorkCenterRepo) GetByID(id string) (*entity.WorkCenter, error) {
	if w, ok := r.centers[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeWorkCenterRepo) GetByCode(code string) (*entity.WorkCenter, error) {
	for _, w := range r.centers {
		if w.Code == code {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkCenterRepo) Update(w *entity.WorkCenter) error {
	cp := *w
	r.centers[w.ID] = &cp
	return nil
}

func (r *fakeWorkCenterRepo) List(_ repository.ListParams) ([]*entity.WorkCenter, error) {
	out := make([]*entity.WorkCenter, 0, len(r.centers))
	for _, w := range r.centers {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeWorkCenterRepo) Delete(id string) (bool, error) {
	if _, ok := r.centers[id]; !ok {
		return false, nil
	}
	delete(r.centers, id)
	return true, nil
}

type fakeQualityRepo struct {
	controls map[string]*entity.QualityControl
}

func newFakeQualityRepo() *fakeQualityRepo {
	return &fakeQualityRepo{controls: map[string]*entity.QualityControl{}}
}

func (r *fakeQualityRepo) Create(q *entity.QualityControl) error {
	cp := *q
	r.controls[q.ID] = &cp
	return nil
}

func (r *fakeQualityRepo) GetByID(id string) (*entity.QualityControl, error) {
	if q, ok := r.controls[id]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeQualityRepo) Update(q *entity.QualityControl) error {
	cp := *q
	r.controls[q.ID] = &cp
	return nil
}

func (r *fakeQualityRepo) List(_ repository.ListParams) ([]*entity.QualityControl, error) {
	out := make([]*entity.QualityControl, 0, len(r.controls))
	for _, q := range r.controls {
		cp := *q
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeQualityRepo) ListByOrder(orderID string) ([]*entity.QualityControl, error) {
	out := []*entity.QualityControl{}
	for _, q := range r.controls {
		if q.ProductionOrderID == orderID {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeQualityRepo) Delete(id string) (bool, error) {
	if _, ok := r.controls[id]; !ok {
		return false, nil
	}
	delete(r.controls, id)
	return true, nil
}

func (r *fakeQualityRepo) CountByStatus() ([]repository.StatusCount, error) {
	counts := map[string]int{}
	for _, q := range r.controls {
		counts[q.Status]++
	}
	out := []repository.StatusCount{}
	for status, n := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*entity.Project{}}
}

func (r *fakeProjectRepo) Create(p *entity.Project) error {
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	if p, ok := r.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProjectRepo) GetByCode(code string) (*entity.Project, error) {
	for _, p := range r.projects {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) Update(p *entity.Project) error {
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) List(_ repository.ListParams) ([]*entity.Project, error) {
	out := make([]*entity.Project, 0, len(r.projects))
	for _, p := range r.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProjectRepo) Delete(id string) (bool, error) {
	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

func (r *fakeProjectRepo) CountByStatus() ([]repository.StatusCount, error) {
	counts := map[string]int{}
	for _, p := range r.projects {
		counts[p.Status]++
	}
	out := []repository.StatusCount{}
	for status, n := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

type fakeTaskRepo struct {
	tasks map[string]*entity.Task
}

func newFakeTaskRepo() *fakeTaskRepo { return &fakeTaskRepo{tasks: map[string]*entity.Task{}} }

func (r *fakeTaskRepo) Create(t *entity.Task) error {
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) GetByID(id string) (*entity.Task, error) {
	if t, ok := r.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTaskRepo) Update(t *entity.Task) error {
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) List(_ repository.ListParams) ([]*entity.Task, error) {
	out := make([]*entity.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeTaskRepo) ListByProject(projectID string) ([]*entity.Task, error) {
	out := []*entity.Task{}
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Delete(id string) (bool, error) {
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}
