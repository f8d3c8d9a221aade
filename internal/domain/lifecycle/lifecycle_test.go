package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/lifecycle"
)

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de órdenes de producción
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransitionOrder_CaminoFeliz(t *testing.T) {
	// draft → released → in_progress → finished es el camino completo.
	assert.NoError(t, lifecycle.CanTransitionOrder(entity.OrderStatusDraft, entity.OrderStatusReleased))
	assert.NoError(t, lifecycle.CanTransitionOrder(entity.OrderStatusReleased, entity.OrderStatusInProgress))
	assert.NoError(t, lifecycle.CanTransitionOrder(entity.OrderStatusInProgress, entity.OrderStatusFinished))
}

func TestCanTransitionOrder_CancelableAntesDeTerminar(t *testing.T) {
	for _, from := range []string{entity.OrderStatusDraft, entity.OrderStatusReleased, entity.OrderStatusInProgress} {
		assert.NoError(t, lifecycle.CanTransitionOrder(from, entity.OrderStatusCancelled),
			"debe poder cancelarse desde %s", from)
	}
}

func TestCanTransitionOrder_SaltosInvalidos(t *testing.T) {
	// No se puede saltar estados ni retroceder.
	casos := []struct{ from, to string }{
		{entity.OrderStatusDraft, entity.OrderStatusInProgress},
		{entity.OrderStatusDraft, entity.OrderStatusFinished},
		{entity.OrderStatusReleased, entity.OrderStatusFinished},
		{entity.OrderStatusInProgress, entity.OrderStatusDraft},
		{entity.OrderStatusReleased, entity.OrderStatusDraft},
	}
	for _, c := range casos {
		err := lifecycle.CanTransitionOrder(c.from, c.to)
		assert.ErrorIs(t, err, domain.ErrConflict, "%s → %s debe ser conflicto", c.from, c.to)
	}
}

func TestCanTransitionOrder_EstadosTerminales(t *testing.T) {
	for _, terminal := range []string{entity.OrderStatusFinished, entity.OrderStatusCancelled} {
		for _, to := range []string{entity.OrderStatusDraft, entity.OrderStatusReleased, entity.OrderStatusInProgress, entity.OrderStatusCancelled} {
			assert.ErrorIs(t, lifecycle.CanTransitionOrder(terminal, to), domain.ErrConflict,
				"%s es terminal, no admite %s", terminal, to)
		}
	}
}

func TestCanTransitionOrder_EstadoDesconocido(t *testing.T) {
	assert.ErrorIs(t, lifecycle.CanTransitionOrder("inventado", entity.OrderStatusReleased), domain.ErrInvalidInput)
}

func TestOrderTransitions_ListaSiguientes(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{entity.OrderStatusReleased, entity.OrderStatusCancelled},
		lifecycle.OrderTransitions(entity.OrderStatusDraft))
	assert.Empty(t, lifecycle.OrderTransitions(entity.OrderStatusFinished))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de tareas
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransitionTask_CaminoFeliz(t *testing.T) {
	assert.NoError(t, lifecycle.CanTransitionTask(entity.TaskStatusTodo, entity.TaskStatusInProgress))
	assert.NoError(t, lifecycle.CanTransitionTask(entity.TaskStatusInProgress, entity.TaskStatusDone))
}

func TestCanTransitionTask_RetrocesoATodo(t *testing.T) {
	// Una tarea en curso puede volver a todo (se repriorizó).
	assert.NoError(t, lifecycle.CanTransitionTask(entity.TaskStatusInProgress, entity.TaskStatusTodo))
}

func TestCanTransitionTask_DoneEsTerminal(t *testing.T) {
	assert.ErrorIs(t, lifecycle.CanTransitionTask(entity.TaskStatusDone, entity.TaskStatusInProgress), domain.ErrConflict)
	assert.ErrorIs(t, lifecycle.CanTransitionTask(entity.TaskStatusCancelled, entity.TaskStatusTodo), domain.ErrConflict)
}

func TestCanTransitionTask_SaltoDirectoADone(t *testing.T) {
	// todo → done sin pasar por in_progress no está permitido.
	assert.ErrorIs(t, lifecycle.CanTransitionTask(entity.TaskStatusTodo, entity.TaskStatusDone), domain.ErrConflict)
}
