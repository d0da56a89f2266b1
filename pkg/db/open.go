package db

import (
	"context"
	"fmt"

	"github.com/jakechorley/workforce-scheduler/pkg/postgres"
	"github.com/jakechorley/workforce-scheduler/pkg/sqlite"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	_ Database = (*postgres.DB)(nil)
	_ Database = (*sqlite.DB)(nil)
)

// Open connects to the configured backend. target is a connection URL for postgres
// and a file path (or ":memory:") for sqlite.
func Open(ctx context.Context, driver, target string) (Database, error) {
	switch driver {
	case DriverPostgres:
		d, err := postgres.NewDB(ctx, target)
		if err != nil {
			return nil, err
		}
		return d, nil
	case DriverSQLite:
		d, err := sqlite.NewDB(ctx, target)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
