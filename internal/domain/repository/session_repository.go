package repository

import (
	"context"

	"github.com/plataforma-app/erp-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para Session.
// Las sesiones se consultan en cada request autenticado, por eso el puerto
// recibe ctx explícito (a diferencia de los CRUD de negocio).
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)
	GetByRefreshTokenHash(ctx context.Context, refreshHash string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
