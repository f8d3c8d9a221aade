package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Create(p *entity.Project) error {
	query := `
		INSERT INTO pro_projects (id, code, name, description, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Code, p.Name, p.Description, p.Status, p.StartDate, p.EndDate, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	return r.queryOne(`WHERE id = $1`, id)
}

func (r *ProjectRepo) GetByCode(code string) (*entity.Project, error) {
	return r.queryOne(`WHERE code = $1`, code)
}

func (r *ProjectRepo) queryOne(where string, arg any) (*entity.Project, error) {
	query := `
		SELECT id, code, name, description, status, start_date, end_date, created_at, updated_at
		FROM pro_projects ` + where
	var p entity.Project
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Status, &p.StartDate, &p.EndDate,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

func (r *ProjectRepo) Update(p *entity.Project) error {
	query := `
		UPDATE pro_projects SET code = $2, name = $3, description = $4, status = $5,
			start_date = $6, end_date = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Code, p.Name, p.Description, p.Status, p.StartDate, p.EndDate, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) List(params repository.ListParams) ([]*entity.Project, error) {
	query := `
		SELECT id, code, name, description, status, start_date, end_date, created_at, updated_at
		FROM pro_projects
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR ` + foldExpr("code") + ` LIKE '%' || $2 || '%'
		       OR ` + foldExpr("name") + ` LIKE '%' || $2 || '%')
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, params.Status, params.Search, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.Status,
			&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProjectRepo) Delete(id string) (bool, error) {
	// Las tareas caen por ON DELETE CASCADE; el use case ya validó que no haya abiertas.
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM pro_projects WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProjectRepo) CountByStatus() ([]repository.StatusCount, error) {
	return countByStatus(r.pool, "pro_projects")
}
