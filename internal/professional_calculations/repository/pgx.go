package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool the repositories use
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type scanner interface {
	Scan(dest ...any) error
}

const equipmentColumns = `
  e.id, e.name, e.type, coalesce(e.category, ''), coalesce(e.brand, ''), coalesce(e.model, ''),
  coalesce(e.power, 0), coalesce(e.voltage, 0), e.price_per_unit,
  coalesce(e.flow_rate, 0), coalesce(e.max_head, 0), coalesce(e.consumption, 0),
  coalesce(e.connection_size, ''), coalesce(e.filter_area, 0), coalesce(e.filter_diameter, 0),
  coalesce(e.sand_required, 0), coalesce(e.min_pool_volume, 0), coalesce(e.max_pool_volume, 0),
  coalesce(e.description, ''), e.is_active`
