// Package permission define la matriz (rol, recurso, acción) que usa el gate
// de permisos. Es un predicado puro: sin efectos secundarios ni consultas a DB.
package permission

import "github.com/plataforma-app/erp-api/internal/domain/entity"

// Recursos conocidos (la clave de dos partes es "recurso:acción").
const (
	ResourceBOM             = "bom"
	ResourceProductionOrder = "production-order"
	ResourceQuality         = "quality"
	ResourceWorkCenter      = "work-center"
	ResourceProject         = "project"
	ResourceTask            = "task"
	ResourceUser            = "users"
)

// Acciones conocidas. Execute cubre las acciones de dominio con transición de
// estado (start/finish/cancel, inspect, cambio de estado de tarea).
const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionExecute = "execute"
)

var businessResources = []string{
	ResourceBOM, ResourceProductionOrder, ResourceQuality,
	ResourceWorkCenter, ResourceProject, ResourceTask,
}

// matrix grants por rol. Se construye una vez en init; las consultas son
// lecturas concurrentes sobre un mapa inmutable.
var matrix = map[string]map[string]bool{}

func init() {
	grant := func(role, resource string, actions ...string) {
		if matrix[role] == nil {
			matrix[role] = map[string]bool{}
		}
		for _, a := range actions {
			matrix[role][resource+":"+a] = true
		}
	}

	all := []string{ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionExecute}

	// admin: todo, incluida la administración de usuarios.
	for _, r := range append(businessResources, ResourceUser) {
		grant(entity.RoleAdmin, r, all...)
	}

	// manager: todo sobre recursos de negocio; solo lectura de usuarios.
	for _, r := range businessResources {
		grant(entity.RoleManager, r, all...)
	}
	grant(entity.RoleManager, ResourceUser, ActionRead)

	// user: opera (lee, crea, modifica, ejecuta) pero no elimina ni administra usuarios.
	for _, r := range businessResources {
		grant(entity.RoleUser, r, ActionRead, ActionCreate, ActionUpdate, ActionExecute)
	}

	// viewer: solo lectura de recursos de negocio.
	for _, r := range businessResources {
		grant(entity.RoleViewer, r, ActionRead)
	}
}

// Allowed responde si el rol autoriza la acción sobre el recurso.
// Los grants extra ("recurso:acción") amplían el rol, nunca lo recortan.
func Allowed(role, resource, action string, extraGrants ...string) bool {
	key := resource + ":" + action
	if grants, ok := matrix[role]; ok && grants[key] {
		return true
	}
	for _, g := range extraGrants {
		if g == key {
			return true
		}
	}
	return false
}
