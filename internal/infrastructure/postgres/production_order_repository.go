package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/plataforma-app/erp-api/internal/domain"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

const orderColumns = `id, code, bom_id, work_center_id, quantity, status, priority,
		scheduled_at, started_at, finished_at, notes, created_at, updated_at`

// ProductionOrderRepo implementación del puerto ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepo struct {
	pool *pgxpool.Pool
}

func NewProductionOrderRepository(pool *pgxpool.Pool) *ProductionOrderRepo {
	return &ProductionOrderRepo{pool: pool}
}

func (r *ProductionOrderRepo) Create(order *entity.ProductionOrder) error {
	query := `
		INSERT INTO prd_production_orders (id, code, bom_id, work_center_id, quantity, status, priority,
			scheduled_at, started_at, finished_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(context.Background(), query,
		order.ID, order.Code, order.BOMID, order.WorkCenterID, order.Quantity, order.Status, order.Priority,
		order.ScheduledAt, order.StartedAt, order.FinishedAt, order.Notes, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	return r.queryOne(`WHERE id = $1`, id)
}

func (r *ProductionOrderRepo) GetByCode(code string) (*entity.ProductionOrder, error) {
	return r.queryOne(`WHERE code = $1`, code)
}

func (r *ProductionOrderRepo) queryOne(where string, arg any) (*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM prd_production_orders ` + where
	row := r.pool.QueryRow(context.Background(), query, arg)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return o, nil
}

func (r *ProductionOrderRepo) Update(order *entity.ProductionOrder) error {
	query := `
		UPDATE prd_production_orders SET code = $2, bom_id = $3, work_center_id = $4, quantity = $5,
			status = $6, priority = $7, scheduled_at = $8, started_at = $9, finished_at = $10,
			notes = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		order.ID, order.Code, order.BOMID, order.WorkCenterID, order.Quantity,
		order.Status, order.Priority, order.ScheduledAt, order.StartedAt, order.FinishedAt,
		order.Notes, order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update production order: %w", err)
	}
	return nil
}

func (r *ProductionOrderRepo) List(params repository.ListParams) ([]*entity.ProductionOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM prd_production_orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR ` + foldExpr("code") + ` LIKE '%' || $2 || '%'
		       OR ` + foldExpr("notes") + ` LIKE '%' || $2 || '%')
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(context.Background(), query, params.Status, params.Search, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *ProductionOrderRepo) Delete(id string) (bool, error) {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM prd_production_orders WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrConflict
		}
		return false, fmt.Errorf("delete production order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProductionOrderRepo) CountByStatus() ([]repository.StatusCount, error) {
	return countByStatus(r.pool, "prd_production_orders")
}

// PendingQuantityByWorkCenter suma las cantidades de órdenes no terminales del centro.
func (r *ProductionOrderRepo) PendingQuantityByWorkCenter(workCenterID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM prd_production_orders
		WHERE work_center_id = $1 AND status NOT IN ($2, $3)`
	var total decimal.Decimal
	err := r.pool.QueryRow(context.Background(), query,
		workCenterID, entity.OrderStatusFinished, entity.OrderStatusCancelled).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("pending quantity: %w", err)
	}
	return total, nil
}

func scanOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := row.Scan(
		&o.ID, &o.Code, &o.BOMID, &o.WorkCenterID, &o.Quantity, &o.Status, &o.Priority,
		&o.ScheduledAt, &o.StartedAt, &o.FinishedAt, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
