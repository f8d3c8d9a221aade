package entity

import "time"

// Session representa una sesión emitida en login: vincula el token de acceso
// (hasheado) a un usuario y a una expiración. Un usuario puede mantener varias
// sesiones concurrentes; logout o refresh eliminan/reemplazan la fila.
type Session struct {
	ID               string
	UserID           string
	TokenHash        string // sha256 hex del JWT de acceso
	RefreshTokenHash string // sha256 hex del refresh token opaco
	ExpiresAt        time.Time
	IPAddress        string
	UserAgent        string
	CreatedAt        time.Time
}

// Expired indica si la sesión ya venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
