package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/application/usecase"
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type orderFixture struct {
	uc     *usecase.ProductionOrderUseCase
	bomUC  *usecase.BOMUseCase
	wcUC   *usecase.WorkCenterUseCase
	orders *fakeOrderRepo
	bomID  string
	wcID   string
}

func buildOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	boms := newFakeBOMRepo()
	centers := newFakeWorkCenterRepo()
	orders := newFakeOrderRepo()

	bomUC := usecase.NewBOMUseCase(boms)
	wcUC := usecase.NewWorkCenterUseCase(centers, orders)
	uc := usecase.NewProductionOrderUseCase(orders, boms, centers)

	bom, err := bomUC.Create(dto.CreateBOMRequest{
		Code: "BOM-001", Name: "Mesa", ProductName: "Mesa",
		Items: []dto.BOMItemRequest{leaf("TBL-01", "Tablero", "1", "45.00")},
	})
	require.NoError(t, err)
	// La BOM debe estar activa para recibir órdenes.
	activa := entity.BOMStatusActive
	_, err = bomUC.Update(bom.ID, dto.UpdateBOMRequest{Status: &activa})
	require.NoError(t, err)

	wc, err := wcUC.Create(dto.CreateWorkCenterRequest{
		Code: "WC-01", Name: "Corte", HoursPerShift: dec("8"), ShiftsPerDay: 2, Efficiency: dec("0.85"),
	})
	require.NoError(t, err)

	return &orderFixture{uc: uc, bomUC: bomUC, wcUC: wcUC, orders: orders, bomID: bom.ID, wcID: wc.ID}
}

func (f *orderFixture) createOrder(t *testing.T, code, qty string) *dto.ProductionOrderResponse {
	t.Helper()
	order, err := f.uc.Create(dto.CreateProductionOrderRequest{
		Code: code, BOMID: f.bomID, WorkCenterID: f.wcID, Quantity: dec(qty),
	})
	require.NoError(t, err)
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_NaceDraft(t *testing.T) {
	f := buildOrderFixture(t)
	order := f.createOrder(t, "OP-001", "10")

	assert.Equal(t, entity.OrderStatusDraft, order.Status)
	assert.Equal(t, entity.OrderPriorityNormal, order.Priority, "prioridad por defecto normal")
	assert.Nil(t, order.StartedAt)
}

func TestOrderCreate_BOMNoActiva(t *testing.T) {
	f := buildOrderFixture(t)

	// Una BOM draft no puede recibir órdenes.
	draft, err := f.bomUC.Create(dto.CreateBOMRequest{Code: "BOM-DRAFT", Name: "X", ProductName: "X"})
	require.NoError(t, err)

	_, err = f.uc.Create(dto.CreateProductionOrderRequest{
		Code: "OP-001", BOMID: draft.ID, WorkCenterID: f.wcID, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOrderCreate_CantidadNoPositiva(t *testing.T) {
	f := buildOrderFixture(t)
	_, err := f.uc.Create(dto.CreateProductionOrderRequest{
		Code: "OP-001", BOMID: f.bomID, WorkCenterID: f.wcID, Quantity: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderCreate_CodigoDuplicado(t *testing.T) {
	f := buildOrderFixture(t)
	f.createOrder(t, "OP-001", "10")

	_, err := f.uc.Create(dto.CreateProductionOrderRequest{
		Code: "OP-001", BOMID: f.bomID, WorkCenterID: f.wcID, Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida release/start/finish/cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestOrder_CicloCompleto(t *testing.T) {
	f := buildOrderFixture(t)
	order := f.createOrder(t, "OP-001", "10")

	released, err := f.uc.Release(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReleased, released.Status)

	started, err := f.uc.Start(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusInProgress, started.Status)
	require.NotNil(t, started.StartedAt, "Start debe sellar started_at")

	finished, err := f.uc.Finish(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusFinished, finished.Status)
	require.NotNil(t, finished.FinishedAt, "Finish debe sellar finished_at")
}

func TestOrderStart_DesdeDraftEsConflicto(t *testing.T) {
	f := buildOrderFixture(t)
	order := f.createOrder(t, "OP-001", "10")

	_, err := f.uc.Start(order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden sin liberar no puede iniciarse")
}

func TestOrderFinish_SoloDesdeInProgress(t *testing.T) {
	f := buildOrderFixture(t)
	order := f.createOrder(t, "OP-001", "10")

	_, err := f.uc.Finish(order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Release(order.ID)
	require.NoError(t, err)
	_, err = f.uc.Finish(order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "released → finished salta in_progress")
}

func TestOrderCancel_EstadoTerminalEsConflicto(t *testing.T) {
	f := buildOrderFixture(t)
	order := f.createOrder(t, "OP-001", "10")

	_, err := f.uc.Cancel(order.ID)
	require.NoError(t, err)

	_, err = f.uc.Cancel(order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "cancelar dos veces es conflicto")

	_, err = f.uc.Release(order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden cancelada no revive")
}

func TestOrderTransition_Inexistente(t *testing.T) {
	f := buildOrderFixture(t)
	_, err := f.uc.Release("00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update y Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderUpdate_SoloEditableEnDraftOReleased(t *testing.T) {
	f := buildOrderFixture(t)
	order := f.createOrder(t, "OP-001", "10")

	qty := dec("20")
	updated, err := f.uc.Update(order.ID, dto.UpdateProductionOrderRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(dec("20")))

	_, err = f.uc.Release(order.ID)
	require.NoError(t, err)
	_, err = f.uc.Start(order.ID)
	require.NoError(t, err)

	_, err = f.uc.Update(order.ID, dto.UpdateProductionOrderRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden in_progress no es editable")
}

func TestOrderDelete_SoloDraft(t *testing.T) {
	f := buildOrderFixture(t)
	order := f.createOrder(t, "OP-001", "10")

	_, err := f.uc.Release(order.ID)
	require.NoError(t, err)

	err = f.uc.Delete(order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "solo las órdenes draft se eliminan")

	draft := f.createOrder(t, "OP-002", "5")
	assert.NoError(t, f.uc.Delete(draft.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stats
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderStats_CuentaPorEstado(t *testing.T) {
	f := buildOrderFixture(t)
	f.createOrder(t, "OP-001", "10")
	f.createOrder(t, "OP-002", "5")
	o3 := f.createOrder(t, "OP-003", "3")
	_, err := f.uc.Release(o3.ID)
	require.NoError(t, err)

	stats, err := f.uc.Stats()
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	byStatus := map[string]int{}
	for _, c := range stats.ByStatus {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, 2, byStatus[entity.OrderStatusDraft])
	assert.Equal(t, 1, byStatus[entity.OrderStatusReleased])
}
