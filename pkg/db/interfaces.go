package db

import (
	"context"

	"github.com/jakechorley/workforce-scheduler/pkg/audit"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
)

// Database defines the interface for all database operations.
// Both postgres.DB and sqlite.DB implement this interface.
type Database interface {
	scheduler.Repository
	audit.Sink

	ListAuditEntries(ctx context.Context) ([]audit.Entry, error)
	RunMigrations(ctx context.Context) error
	Close() error
}
