package usecase

import (
	"context"
	"time"

	"github.com/plataforma-app/erp-api/internal/application/auth"
	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
	"github.com/plataforma-app/erp-api/pkg/textutil"
)

// UserUseCase administración de usuarios. Los usuarios nunca se eliminan
// físicamente: Delete desactiva la cuenta y revoca sus sesiones.
type UserUseCase struct {
	repo        repository.UserRepository
	sessionRepo repository.SessionRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, sessionRepo repository.SessionRepository) *UserUseCase {
	return &UserUseCase{repo: repo, sessionRepo: sessionRepo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios con paginación, filtro por estado y búsqueda.
func (uc *UserUseCase) List(in dto.ListRequest) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(repository.ListParams{
		Status: in.Status,
		Search: textutil.Fold(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Update mutación parcial de un usuario (rol, estado, nombres).
// Suspender o desactivar revoca las sesiones vigentes.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	revoke := false
	if in.Status != nil && *in.Status != user.Status {
		user.Status = *in.Status
		revoke = user.Status != entity.UserStatusActive
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	if revoke {
		if err := uc.sessionRepo.DeleteByUser(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	return auth.ToUserResponse(user), nil
}

// Delete soft-delete: cambia el estado a inactive y revoca las sesiones.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	user.Status = entity.UserStatusInactive
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return err
	}
	return uc.sessionRepo.DeleteByUser(ctx, user.ID)
}
