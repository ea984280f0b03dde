package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cobible/internal/config"
)

// DBTX abstracts *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
	DriverName() string
}

// limitClause returns the row limiting clause of the driver's SQL dialect.
func limitClause(driverName string, n int) string {
	if driverName == config.DriverOracle {
		return fmt.Sprintf("FETCH FIRST %d ROWS ONLY", n)
	}
	return fmt.Sprintf("LIMIT %d", n)
}
