package repo

import (
	"context"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens a *pgxpool.Pool for the given DSN with the shopspring decimal
// codec registered on every connection, so numeric columns scan directly into
// decimal.Decimal values.
//
// All production and test code should obtain pools through this function;
// a pool without the codec will fail to scan the money and coordinate columns.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.NewPool: parse config: %w", err)
	}

	cfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("repo.NewPool: %w", err)
	}
	return pool, nil
}
