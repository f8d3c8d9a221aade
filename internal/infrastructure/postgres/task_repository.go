package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plataforma-app/erp-api/internal/domain/entity"
	"github.com/plataforma-app/erp-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `id, project_id, title, description, status, priority,
		COALESCE(assignee_id::text, ''), due_date, created_at, updated_at`

// TaskRepo implementación del puerto TaskRepository sobre PostgreSQL.
// Tarea y dependencias se escriben siempre en la misma transacción.
type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(t *entity.Task) error {
	ctx := context.Background()
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO pro_tasks (id, project_id, title, description, status, priority, assignee_id,
				due_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8, $9, $10)`
		if _, err := tx.Exec(ctx, query,
			t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.AssigneeID,
			t.DueDate, t.CreatedAt, t.UpdatedAt); err != nil {
			return err
		}
		return insertDependencies(ctx, tx, t.ID, t.DependsOn)
	})
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(id string) (*entity.Task, error) {
	ctx := context.Background()
	query := `SELECT ` + taskColumns + ` FROM pro_tasks WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	deps, err := r.loadDependencies(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.DependsOn = deps
	return t, nil
}

// Update reemplaza la tarea y el conjunto completo de dependencias.
func (r *TaskRepo) Update(t *entity.Task) error {
	ctx := context.Background()
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE pro_tasks SET title = $2, description = $3, status = $4, priority = $5,
				assignee_id = NULLIF($6, '')::uuid, due_date = $7, updated_at = $8
			WHERE id = $1`
		if _, err := tx.Exec(ctx, query,
			t.ID, t.Title, t.Description, t.Status, t.Priority, t.AssigneeID,
			t.DueDate, t.UpdatedAt); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM pro_task_dependencies WHERE task_id = $1`, t.ID); err != nil {
			return err
		}
		return insertDependencies(ctx, tx, t.ID, t.DependsOn)
	})
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepo) List(params repository.ListParams) ([]*entity.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM pro_tasks
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR ` + foldExpr("title") + ` LIKE '%' || $2 || '%'
		       OR ` + foldExpr("description") + ` LIKE '%' || $2 || '%')
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.queryMany(query, params.Status, params.Search, params.Limit, params.Offset)
}

// ListByProject lista todas las tareas de un proyecto, sin paginar.
func (r *TaskRepo) ListByProject(projectID string) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM pro_tasks WHERE project_id = $1 ORDER BY created_at`
	return r.queryMany(query, projectID)
}

func (r *TaskRepo) queryMany(query string, args ...any) ([]*entity.Task, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		deps, err := r.loadDependencies(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.DependsOn = deps
	}
	return list, nil
}

func (r *TaskRepo) Delete(id string) (bool, error) {
	ctx := context.Background()
	var deleted bool
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		// También se eliminan las dependencias de otras tareas que apuntaban a esta.
		if _, err := tx.Exec(ctx,
			`DELETE FROM pro_task_dependencies WHERE task_id = $1 OR depends_on_task_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM pro_tasks WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return deleted, nil
}

func (r *TaskRepo) loadDependencies(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT depends_on_task_id FROM pro_task_dependencies WHERE task_id = $1 ORDER BY depends_on_task_id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list task dependencies: %w", err)
	}
	defer rows.Close()
	var deps []string
	for rows.Next() {
		var dep string
		if err := rows.Scan(&dep); err != nil {
			return nil, fmt.Errorf("scan task dependency: %w", err)
		}
		deps = append(deps, dep)
	}
	return deps, rows.Err()
}

func insertDependencies(ctx context.Context, tx pgx.Tx, taskID string, deps []string) error {
	for _, dep := range deps {
		if _, err := tx.Exec(ctx,
			`INSERT INTO pro_task_dependencies (task_id, depends_on_task_id) VALUES ($1, $2)`, taskID, dep); err != nil {
			return err
		}
	}
	return nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssigneeID, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
