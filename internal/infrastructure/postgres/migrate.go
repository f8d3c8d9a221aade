package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plataforma-app/erp-api/pkg/logger"
)

//go:embed migrations/001_initial.up.sql
var initialMigrationSQL string

var requiredTables = []string{
	"auth_users",
	"auth_sessions",
	"prd_work_centers",
	"prd_boms",
	"prd_bom_items",
	"prd_production_orders",
	"prd_quality_controls",
	"pro_projects",
	"pro_tasks",
	"pro_task_dependencies",
}

// EnsureSchema aplica la migración inicial si faltan tablas. El SQL usa
// IF NOT EXISTS, así que es seguro re-ejecutarlo.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	exists, err := hasAllRequiredTables(ctx, pool)
	if err != nil {
		return fmt.Errorf("check existing tables: %w", err)
	}
	if exists {
		return nil
	}

	log.Info().Msg("Faltan tablas en el esquema; aplicando migración inicial")
	if _, err := pool.Exec(ctx, initialMigrationSQL); err != nil {
		return fmt.Errorf("apply initial migration: %w", err)
	}

	exists, err = hasAllRequiredTables(ctx, pool)
	if err != nil {
		return fmt.Errorf("re-check tables after migration: %w", err)
	}
	if !exists {
		return fmt.Errorf("esquema incompleto: faltan tablas requeridas después de migrar")
	}
	log.Info().Msg("Esquema de base de datos listo")
	return nil
}

func hasAllRequiredTables(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var count int
	err := pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name = ANY($1)
	`, requiredTables).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == len(requiredTables), nil
}
