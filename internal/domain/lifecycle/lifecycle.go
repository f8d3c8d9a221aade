// Package lifecycle centraliza las transiciones de estado válidas de las
// órdenes de producción y las tareas. Una transición fuera de tabla es un
// conflicto (409), nunca un éxito silencioso.
package lifecycle

import (
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
)

var orderTransitions = map[string][]string{
	entity.OrderStatusDraft:      {entity.OrderStatusReleased, entity.OrderStatusCancelled},
	entity.OrderStatusReleased:   {entity.OrderStatusInProgress, entity.OrderStatusCancelled},
	entity.OrderStatusInProgress: {entity.OrderStatusFinished, entity.OrderStatusCancelled},
	entity.OrderStatusFinished:   {}, // terminal
	entity.OrderStatusCancelled:  {}, // terminal
}

var taskTransitions = map[string][]string{
	entity.TaskStatusTodo:       {entity.TaskStatusInProgress, entity.TaskStatusCancelled},
	entity.TaskStatusInProgress: {entity.TaskStatusDone, entity.TaskStatusTodo, entity.TaskStatusCancelled},
	entity.TaskStatusDone:       {}, // terminal
	entity.TaskStatusCancelled:  {}, // terminal
}

// CanTransitionOrder valida current → next para órdenes de producción.
func CanTransitionOrder(current, next string) error {
	return check(orderTransitions, current, next)
}

// CanTransitionTask valida current → next para tareas.
func CanTransitionTask(current, next string) error {
	return check(taskTransitions, current, next)
}

// OrderTransitions devuelve los estados siguientes permitidos para una orden.
func OrderTransitions(current string) []string {
	return orderTransitions[current]
}

func check(table map[string][]string, current, next string) error {
	allowed, ok := table[current]
	if !ok {
		return domain.ErrInvalidInput
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return domain.ErrConflict
}
