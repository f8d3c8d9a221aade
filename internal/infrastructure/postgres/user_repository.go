package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, first_name, last_name, role, status,
		last_login_at, reset_token_hash, reset_token_expires_at, preferences, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	query := `
		INSERT INTO auth_users (id, email, password_hash, first_name, last_name, role, status,
			last_login_at, reset_token_hash, reset_token_expires_at, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13)`
	_, err = r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role, user.Status,
		user.LastLoginAt, user.ResetTokenHash, user.ResetTokenExpiresAt, prefs,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.queryOne(`SELECT `+userColumns+` FROM auth_users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.queryOne(`SELECT `+userColumns+` FROM auth_users WHERE email = $1`, email)
}

// GetByResetTokenHash obtiene un usuario por el hash de su token de recuperación.
func (r *UserRepo) GetByResetTokenHash(hash string) (*entity.User, error) {
	return r.queryOne(`SELECT `+userColumns+` FROM auth_users WHERE reset_token_hash = $1`, hash)
}

func (r *UserRepo) queryOne(query string, arg any) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), query, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	query := `
		UPDATE auth_users SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
			role = $6, status = $7, last_login_at = $8, reset_token_hash = NULLIF($9, ''),
			reset_token_expires_at = $10, preferences = $11, updated_at = $12
		WHERE id = $1`
	_, err = r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.Status, user.LastLoginAt, user.ResetTokenHash,
		user.ResetTokenExpiresAt, prefs, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista usuarios con filtros y paginación. El término de búsqueda llega
// ya plegado; las columnas se pliegan con foldExpr para comparar en igualdad
// de condiciones.
func (r *UserRepo) List(params repository.ListParams) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM auth_users
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR ` + foldExpr("email") + ` LIKE '%' || $2 || '%'
		       OR ` + foldExpr("first_name || ' ' || last_name") + ` LIKE '%' || $2 || '%')
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, params.Status, params.Search, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var resetHash *string
	var prefs []byte
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.Status,
		&u.LastLoginAt, &resetHash, &u.ResetTokenExpiresAt, &prefs, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if resetHash != nil {
		u.ResetTokenHash = *resetHash
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
			return nil, fmt.Errorf("unmarshal preferences: %w", err)
		}
	}
	return &u, nil
}
