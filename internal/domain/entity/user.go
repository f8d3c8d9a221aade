package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
	RoleViewer  = "viewer"
)

// Estados válidos para User. Los usuarios nunca se eliminan físicamente:
// un DELETE cambia el estado a inactive.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema.
type User struct {
	ID                  string
	Email               string
	PasswordHash        string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName           string
	LastName            string
	Role                string // admin, manager, user, viewer
	Status              string // active, inactive, suspended
	LastLoginAt         *time.Time
	ResetTokenHash      string     // sha256 del token de recuperación, vacío si no hay
	ResetTokenExpiresAt *time.Time
	Preferences         map[string]any // blob libre (jsonb): tema, idioma, extra_permissions...
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ValidRole indica si el rol pertenece al conjunto fijo soportado.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser, RoleViewer:
		return true
	}
	return false
}

// ExtraPermissions devuelve los grants explícitos ("recurso:acción") guardados
// en las preferencias del usuario. Solo amplían, nunca recortan, el rol.
func (u *User) ExtraPermissions() []string {
	raw, ok := u.Preferences["extra_permissions"]
	if !ok {
		return nil
	}
	switch vs := raw.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
