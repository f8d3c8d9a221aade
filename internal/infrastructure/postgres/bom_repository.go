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

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación del puerto BOMRepository sobre PostgreSQL.
// Cabecera e ítems se escriben siempre en la misma transacción.
type BOMRepo struct {
	pool *pgxpool.Pool
}

func NewBOMRepository(pool *pgxpool.Pool) *BOMRepo {
	return &BOMRepo{pool: pool}
}

func (r *BOMRepo) Create(bom *entity.BOM) error {
	ctx := context.Background()
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO prd_boms (id, code, name, product_name, version, status, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		if _, err := tx.Exec(ctx, query,
			bom.ID, bom.Code, bom.Name, bom.ProductName, bom.Version, bom.Status, bom.Notes,
			bom.CreatedAt, bom.UpdatedAt); err != nil {
			return err
		}
		return insertBOMItems(ctx, tx, bom.ID, bom.Items)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bom: %w", err)
	}
	return nil
}

func (r *BOMRepo) GetByID(id string) (*entity.BOM, error) {
	return r.queryOne(`WHERE id = $1`, id)
}

func (r *BOMRepo) GetByCode(code string) (*entity.BOM, error) {
	return r.queryOne(`WHERE code = $1`, code)
}

func (r *BOMRepo) queryOne(where string, arg any) (*entity.BOM, error) {
	ctx := context.Background()
	query := `
		SELECT id, code, name, product_name, version, status, notes, created_at, updated_at
		FROM prd_boms ` + where
	var b entity.BOM
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&b.ID, &b.Code, &b.Name, &b.ProductName, &b.Version, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom: %w", err)
	}
	items, err := r.loadItems(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return &b, nil
}

// Update reemplaza la cabecera y el conjunto completo de ítems.
func (r *BOMRepo) Update(bom *entity.BOM) error {
	ctx := context.Background()
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE prd_boms SET code = $2, name = $3, product_name = $4, version = $5,
				status = $6, notes = $7, updated_at = $8
			WHERE id = $1`
		if _, err := tx.Exec(ctx, query,
			bom.ID, bom.Code, bom.Name, bom.ProductName, bom.Version, bom.Status, bom.Notes,
			bom.UpdatedAt); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM prd_bom_items WHERE bom_id = $1`, bom.ID); err != nil {
			return err
		}
		return insertBOMItems(ctx, tx, bom.ID, bom.Items)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update bom: %w", err)
	}
	return nil
}

func (r *BOMRepo) List(params repository.ListParams) ([]*entity.BOM, error) {
	ctx := context.Background()
	query := `
		SELECT id, code, name, product_name, version, status, notes, created_at, updated_at
		FROM prd_boms
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR ` + foldExpr("code") + ` LIKE '%' || $2 || '%'
		       OR ` + foldExpr("name") + ` LIKE '%' || $2 || '%'
		       OR ` + foldExpr("product_name") + ` LIKE '%' || $2 || '%')
		ORDER BY code LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, params.Status, params.Search, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOM
	for rows.Next() {
		var b entity.BOM
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.ProductName, &b.Version, &b.Status,
			&b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, b := range list {
		items, err := r.loadItems(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		b.Items = items
	}
	return list, nil
}

func (r *BOMRepo) Delete(id string) (bool, error) {
	// Los ítems caen por ON DELETE CASCADE.
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM prd_boms WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrConflict
		}
		return false, fmt.Errorf("delete bom: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BOMRepo) CountByStatus() ([]repository.StatusCount, error) {
	return countByStatus(r.pool, "prd_boms")
}

func (r *BOMRepo) loadItems(ctx context.Context, bomID string) ([]entity.BOMItem, error) {
	query := `
		SELECT id, bom_id, component_code, component_name, quantity, unit, unit_cost,
			COALESCE(child_bom_id::text, '')
		FROM prd_bom_items WHERE bom_id = $1 ORDER BY component_code`
	rows, err := r.pool.Query(ctx, query, bomID)
	if err != nil {
		return nil, fmt.Errorf("list bom items: %w", err)
	}
	defer rows.Close()
	var items []entity.BOMItem
	for rows.Next() {
		var it entity.BOMItem
		if err := rows.Scan(&it.ID, &it.BOMID, &it.ComponentCode, &it.ComponentName,
			&it.Quantity, &it.Unit, &it.UnitCost, &it.ChildBOMID); err != nil {
			return nil, fmt.Errorf("scan bom item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func insertBOMItems(ctx context.Context, tx pgx.Tx, bomID string, items []entity.BOMItem) error {
	query := `
		INSERT INTO prd_bom_items (id, bom_id, component_code, component_name, quantity, unit, unit_cost, child_bom_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid)`
	for _, it := range items {
		if _, err := tx.Exec(ctx, query,
			it.ID, bomID, it.ComponentCode, it.ComponentName, it.Quantity, it.Unit, it.UnitCost, it.ChildBOMID); err != nil {
			return err
		}
	}
	return nil
}

// countByStatus agrupa filas por estado; compartido por los endpoints /stats.
func countByStatus(pool *pgxpool.Pool, table string) ([]repository.StatusCount, error) {
	rows, err := pool.Query(context.Background(),
		`SELECT status, COUNT(*) FROM `+table+` GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()
	var counts []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
