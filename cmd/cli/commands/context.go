package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/internal/config"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/workforce-scheduler/pkg/db"
	"github.com/jakechorley/workforce-scheduler/pkg/runlock"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Oracle   scheduler.ComplianceOracle
	Locker   runlock.Locker // nil when no Redis is configured
	Logger   *zap.Logger
	Ctx      context.Context
}
