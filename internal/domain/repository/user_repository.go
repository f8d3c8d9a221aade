package repository

import "github.com/plataforma-app/erp-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Delete no existe a propósito: los usuarios se desactivan vía Update.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByResetTokenHash(hash string) (*entity.User, error)
	Update(user *entity.User) error
	List(params ListParams) ([]*entity.User, error)
}
