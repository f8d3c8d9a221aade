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

var _ repository.WorkCenterRepository = (*WorkCenterRepo)(nil)

// WorkCenterRepo implementación del puerto WorkCenterRepository sobre PostgreSQL.
type WorkCenterRepo struct {
	pool *pgxpool.Pool
}

func NewWorkCenterRepository(pool *pgxpool.Pool) *WorkCenterRepo {
	return &WorkCenterRepo{pool: pool}
}

func (r *WorkCenterRepo) Create(wc *entity.WorkCenter) error {
	query := `
		INSERT INTO prd_work_centers (id, code, name, description, hours_per_shift, shifts_per_day,
			efficiency, hours_per_unit, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		wc.ID, wc.Code, wc.Name, wc.Description, wc.HoursPerShift, wc.ShiftsPerDay,
		wc.Efficiency, wc.HoursPerUnit, wc.Status, wc.CreatedAt, wc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work center: %w", err)
	}
	return nil
}

func (r *WorkCenterRepo) GetByID(id string) (*entity.WorkCenter, error) {
	return r.queryOne(`WHERE id = $1`, id)
}

func (r *WorkCenterRepo) GetByCode(code string) (*entity.WorkCenter, error) {
	return r.queryOne(`WHERE code = $1`, code)
}

func (r *WorkCenterRepo) queryOne(where string, arg any) (*entity.WorkCenter, error) {
	query := `
		SELECT id, code, name, description, hours_per_shift, shifts_per_day, efficiency,
			hours_per_unit, status, created_at, updated_at
		FROM prd_work_centers ` + where
	var wc entity.WorkCenter
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&wc.ID, &wc.Code, &wc.Name, &wc.Description, &wc.HoursPerShift, &wc.ShiftsPerDay,
		&wc.Efficiency, &wc.HoursPerUnit, &wc.Status, &wc.CreatedAt, &wc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work center: %w", err)
	}
	return &wc, nil
}

func (r *WorkCenterRepo) Update(wc *entity.WorkCenter) error {
	query := `
		UPDATE prd_work_centers SET code = $2, name = $3, description = $4, hours_per_shift = $5,
			shifts_per_day = $6, efficiency = $7, hours_per_unit = $8, status = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		wc.ID, wc.Code, wc.Name, wc.Description, wc.HoursPerShift, wc.ShiftsPerDay,
		wc.Efficiency, wc.HoursPerUnit, wc.Status, wc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update work center: %w", err)
	}
	return nil
}

func (r *WorkCenterRepo) List(params repository.ListParams) ([]*entity.WorkCenter, error) {
	query := `
		SELECT id, code, name, description, hours_per_shift, shifts_per_day, efficiency,
			hours_per_unit, status, created_at, updated_at
		FROM prd_work_centers
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR ` + foldExpr("code") + ` LIKE '%' || $2 || '%'
		       OR ` + foldExpr("name") + ` LIKE '%' || $2 || '%')
		ORDER BY code LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, params.Status, params.Search, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list work centers: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkCenter
	for rows.Next() {
		var wc entity.WorkCenter
		if err := rows.Scan(&wc.ID, &wc.Code, &wc.Name, &wc.Description, &wc.HoursPerShift,
			&wc.ShiftsPerDay, &wc.Efficiency, &wc.HoursPerUnit, &wc.Status, &wc.CreatedAt,
			&wc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan work center: %w", err)
		}
		list = append(list, &wc)
	}
	return list, rows.Err()
}

func (r *WorkCenterRepo) Delete(id string) (bool, error) {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM prd_work_centers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrConflict
		}
		return false, fmt.Errorf("delete work center: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
