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

var _ repository.QualityRepository = (*QualityRepo)(nil)

const qcColumns = `id, code, production_order_id, COALESCE(inspector_id::text, ''), status,
		sample_size, defects_found, measurements, inspected_at, notes, created_at, updated_at`

// QualityRepo implementación del puerto QualityRepository sobre PostgreSQL.
type QualityRepo struct {
	pool *pgxpool.Pool
}

func NewQualityRepository(pool *pgxpool.Pool) *QualityRepo {
	return &QualityRepo{pool: pool}
}

func (r *QualityRepo) Create(qc *entity.QualityControl) error {
	measurements, err := json.Marshal(qc.Measurements)
	if err != nil {
		return fmt.Errorf("marshal measurements: %w", err)
	}
	query := `
		INSERT INTO prd_quality_controls (id, code, production_order_id, inspector_id, status,
			sample_size, defects_found, measurements, inspected_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.pool.Exec(context.Background(), query,
		qc.ID, qc.Code, qc.ProductionOrderID, qc.InspectorID, qc.Status,
		qc.SampleSize, qc.DefectsFound, measurements, qc.InspectedAt, qc.Notes, qc.CreatedAt, qc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quality control: %w", err)
	}
	return nil
}

func (r *QualityRepo) GetByID(id string) (*entity.QualityControl, error) {
	query := `SELECT ` + qcColumns + ` FROM prd_quality_controls WHERE id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	q, err := scanQC(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quality control: %w", err)
	}
	return q, nil
}

func (r *QualityRepo) Update(qc *entity.QualityControl) error {
	measurements, err := json.Marshal(qc.Measurements)
	if err != nil {
		return fmt.Errorf("marshal measurements: %w", err)
	}
	query := `
		UPDATE prd_quality_controls SET code = $2, production_order_id = $3,
			inspector_id = NULLIF($4, '')::uuid, status = $5, sample_size = $6, defects_found = $7,
			measurements = $8, inspected_at = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	_, err = r.pool.Exec(context.Background(), query,
		qc.ID, qc.Code, qc.ProductionOrderID, qc.InspectorID, qc.Status, qc.SampleSize,
		qc.DefectsFound, measurements, qc.InspectedAt, qc.Notes, qc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update quality control: %w", err)
	}
	return nil
}

func (r *QualityRepo) List(params repository.ListParams) ([]*entity.QualityControl, error) {
	query := `
		SELECT ` + qcColumns + `
		FROM prd_quality_controls
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR ` + foldExpr("code") + ` LIKE '%' || $2 || '%'
		       OR ` + foldExpr("notes") + ` LIKE '%' || $2 || '%')
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.queryMany(query, params.Status, params.Search, params.Limit, params.Offset)
}

// ListByOrder lista los controles de una orden de producción, sin paginar.
func (r *QualityRepo) ListByOrder(orderID string) ([]*entity.QualityControl, error) {
	query := `
		SELECT ` + qcColumns + `
		FROM prd_quality_controls WHERE production_order_id = $1 ORDER BY created_at`
	return r.queryMany(query, orderID)
}

func (r *QualityRepo) queryMany(query string, args ...any) ([]*entity.QualityControl, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quality controls: %w", err)
	}
	defer rows.Close()
	var list []*entity.QualityControl
	for rows.Next() {
		q, err := scanQC(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quality control: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

func (r *QualityRepo) Delete(id string) (bool, error) {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM prd_quality_controls WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete quality control: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *QualityRepo) CountByStatus() ([]repository.StatusCount, error) {
	return countByStatus(r.pool, "prd_quality_controls")
}

func scanQC(row pgx.Row) (*entity.QualityControl, error) {
	var q entity.QualityControl
	var measurements []byte
	err := row.Scan(
		&q.ID, &q.Code, &q.ProductionOrderID, &q.InspectorID, &q.Status,
		&q.SampleSize, &q.DefectsFound, &measurements, &q.InspectedAt, &q.Notes, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(measurements) > 0 {
		if err := json.Unmarshal(measurements, &q.Measurements); err != nil {
			return nil, fmt.Errorf("unmarshal measurements: %w", err)
		}
	}
	return &q, nil
}
