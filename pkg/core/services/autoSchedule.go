package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/internal/config"
	"github.com/jakechorley/workforce-scheduler/pkg/audit"
	"github.com/jakechorley/workforce-scheduler/pkg/compliance"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler/criteria"
	"github.com/jakechorley/workforce-scheduler/pkg/runlock"
)

// ErrInvalidRequest is returned for requests that cannot be scheduled as given
var ErrInvalidRequest = errors.New("invalid auto-schedule request")

// AutoScheduleStore defines the database operations needed by RunAutoSchedule
type AutoScheduleStore interface {
	scheduler.Repository
	audit.Sink
}

// AutoScheduleRequest describes one run. Nil optional fields fall back to the config.
type AutoScheduleRequest struct {
	OrganizationID      string
	WeekStart           time.Time
	LocationIDs         []string
	RespectAvailability *bool
	MaxHoursPerEmployee *float64
}

// AutoScheduleResult is the scheduler's report plus the closures applied to the week
type AutoScheduleResult struct {
	*scheduler.Result
	WeekStart   string       `json:"weekStart"`
	ClosedDates []ClosedDate `json:"closedDates"`
}

// NewComplianceOracle builds the rule-based compliance validator from the config
func NewComplianceOracle(cfg *config.Config, store compliance.ShiftLister, logger *zap.Logger) *compliance.Validator {
	rules := compliance.DefaultRules()
	if cfg.Compliance != nil {
		rules = compliance.Rules{
			MaxShiftHours:  cfg.Compliance.MaxShiftHours,
			MaxDailyHours:  cfg.Compliance.MaxDailyHours,
			MaxWeeklyHours: cfg.Compliance.MaxWeeklyHours,
			MinRestHours:   cfg.Compliance.MinRestHours,
		}
	}
	return compliance.NewValidator(store, rules, logger)
}

// RunAutoSchedule fills an organization's week with draft shifts.
// It applies the configured closures, holds the run lock for the organization's week
// when a locker is given, and records every created shift in the audit chain.
func RunAutoSchedule(
	ctx context.Context,
	database AutoScheduleStore,
	oracle scheduler.ComplianceOracle,
	locker runlock.Locker,
	cfg *config.Config,
	logger *zap.Logger,
	req AutoScheduleRequest,
) (*AutoScheduleResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if req.OrganizationID == "" {
		return nil, fmt.Errorf("%w: organization id is required", ErrInvalidRequest)
	}
	if req.WeekStart.IsZero() {
		return nil, fmt.Errorf("%w: week start is required", ErrInvalidRequest)
	}
	if req.MaxHoursPerEmployee != nil && *req.MaxHoursPerEmployee < 0 {
		return nil, fmt.Errorf("%w: max hours per employee must not be negative", ErrInvalidRequest)
	}

	params := scheduler.Params{
		OrganizationID:      req.OrganizationID,
		WeekStart:           req.WeekStart,
		LocationIDs:         req.LocationIDs,
		RespectAvailability: cfg.RespectAvailability(),
		MaxHoursPerEmployee: cfg.Scheduler.MaxHoursPerEmployee,
	}
	if req.RespectAvailability != nil {
		params.RespectAvailability = *req.RespectAvailability
	}
	if req.MaxHoursPerEmployee != nil {
		params.MaxHoursPerEmployee = *req.MaxHoursPerEmployee
	}

	weekKey := scheduler.DateKey(req.WeekStart)
	logger = logger.With(zap.String("organization_id", req.OrganizationID), zap.String("week_start", weekKey))

	logger.Info("Starting auto-schedule run",
		zap.Strings("location_ids", params.LocationIDs),
		zap.Bool("respect_availability", params.RespectAvailability),
		zap.Float64("max_hours_per_employee", params.MaxHours()))

	closed, closedDates, err := resolveClosures(cfg.Closures, req.WeekStart, logger)
	if err != nil {
		return nil, err
	}
	params.ClosedDates = closed
	if len(closedDates) > 0 {
		logger.Info("Closures apply to this week", zap.Int("closed_dates", len(closedDates)))
	}

	if locker != nil {
		key := runlock.Key(req.OrganizationID, req.WeekStart)
		release, err := locker.Acquire(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire run lock: %w", err)
		}
		defer func() {
			// The run's context may already be cancelled
			if err := release(context.Background()); err != nil {
				logger.Warn("Failed to release run lock", zap.String("key", key), zap.Error(err))
			}
		}()
		logger.Debug("Acquired run lock", zap.String("key", key))
	}

	result, err := scheduler.Run(ctx, scheduler.RunConfig{
		Params:     params,
		Criteria:   criteria.Default(),
		Repository: audit.NewRecorder(database, database, logger),
		Oracle:     oracle,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("auto-schedule run failed: %w", err)
	}

	logger.Info("Auto-schedule run complete",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("pre_filled", result.PreFilled),
		zap.Strings("warnings", result.Warnings))

	if closedDates == nil {
		closedDates = []ClosedDate{}
	}

	return &AutoScheduleResult{
		Result:      result,
		WeekStart:   weekKey,
		ClosedDates: closedDates,
	}, nil
}
