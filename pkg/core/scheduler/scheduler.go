package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// Warnings returned when a run has nothing to work with
const (
	WarningNoTemplates = "No active shift templates found"
	WarningNoEmployees = "No eligible employees found"
)

// Scheduler fills a week's slots one at a time with the best compliant candidate
type Scheduler struct {
	criteria   []Criterion
	repository Repository
	oracle     ComplianceOracle
	logger     *zap.Logger
	state      *RunState
}

// RunConfig contains everything needed for one scheduling run
type RunConfig struct {
	Params Params

	// Criteria form the candidate scorer, applied in order
	Criteria []Criterion

	Repository Repository
	Oracle     ComplianceOracle

	// Logger is optional
	Logger *zap.Logger
}

// Run loads the scheduling context for the configured week and assigns every open slot.
// Business outcomes (nothing to schedule, unfillable slots) are reported in the result;
// only repository failures while loading are returned as errors.
func Run(ctx context.Context, config RunConfig) (*Result, error) {
	if config.Repository == nil {
		return nil, errors.New("scheduler: repository is required")
	}
	if config.Oracle == nil {
		return nil, errors.New("scheduler: compliance oracle is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sc, err := LoadContext(ctx, config.Repository, config.Params)
	if err != nil {
		return nil, err
	}

	if len(sc.Templates) == 0 {
		logger.Info("No active shift templates, nothing to schedule")
		return emptyResult(WarningNoTemplates), nil
	}
	if len(sc.EmployeeIDs) == 0 {
		logger.Info("No eligible employees, nothing to schedule")
		return emptyResult(WarningNoEmployees), nil
	}

	s := &Scheduler{
		criteria:   config.Criteria,
		repository: config.Repository,
		oracle:     config.Oracle,
		logger:     logger,
		state:      NewRunState(sc, config.Params),
	}

	return s.assignSlots(ctx)
}

// assignSlots is the main assignment loop. Slots are never revisited once decided.
// A cancelled context stops the loop; shifts already committed stay committed.
func (s *Scheduler) assignSlots(ctx context.Context) (*Result, error) {
	sc := s.state.Context
	slots := GenerateSlots(sc.Templates, sc.WeekDates, s.state.Params.ClosedDates)

	s.logger.Debug("Generated slots",
		zap.Int("slots", len(slots)),
		zap.Int("templates", len(sc.Templates)),
		zap.Int("employees", len(sc.EmployeeIDs)))

	createdIDs := make([]string, 0)
	unfilled := make([]UnfilledSlot, 0)
	preFilled := 0

	for _, slot := range slots {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scheduling run interrupted after %d shifts: %w", len(createdIDs), err)
		}

		if sc.IsSlotFilled(slot) {
			preFilled++
			continue
		}

		candidates := ScoreCandidates(s.state, slot, s.criteria)
		if len(candidates) == 0 {
			unfilled = append(unfilled, newUnfilledSlot(slot, ReasonNoEligibleEmployees))
			continue
		}

		shiftID, assigned := s.tryCandidates(ctx, slot, candidates)
		if !assigned {
			unfilled = append(unfilled, newUnfilledSlot(slot, ReasonComplianceFailed))
			continue
		}
		createdIDs = append(createdIDs, shiftID)
	}

	s.logger.Debug("Assignment loop finished",
		zap.Int("created", len(createdIDs)),
		zap.Int("unfilled", len(unfilled)),
		zap.Int("pre_filled", preFilled))

	return buildResult(s.state, createdIDs, unfilled, preFilled), nil
}

// tryCandidates offers the slot to each candidate in score order and commits the first
// one the compliance oracle accepts and the repository persists
func (s *Scheduler) tryCandidates(ctx context.Context, slot Slot, candidates []CandidateScore) (string, bool) {
	start, end := slot.Times()

	for _, candidate := range candidates {
		proposal := model.ShiftProposal{
			OrganizationID: s.state.Params.OrganizationID,
			EmployeeID:     candidate.EmployeeID,
			Start:          start,
			End:            end,
			BreakMinutes:   slot.Template.BreakMinutes,
		}

		valid, err := s.oracle.Validate(ctx, proposal)
		if err != nil {
			s.logger.Warn("Compliance check failed, trying next candidate",
				zap.String("employee_id", candidate.EmployeeID),
				zap.String("template", slot.Template.Name),
				zap.String("date", slot.DateKey()),
				zap.Error(err))
			continue
		}
		if !valid {
			s.logger.Debug("Candidate rejected by compliance",
				zap.String("employee_id", candidate.EmployeeID),
				zap.String("template", slot.Template.Name),
				zap.String("date", slot.DateKey()))
			continue
		}

		shiftID, err := s.repository.CreateShift(ctx, s.buildShift(slot, candidate.EmployeeID, start, end))
		if err != nil || shiftID == "" {
			// Persistence failures are not told apart from rejections
			s.logger.Warn("Failed to create shift, trying next candidate",
				zap.String("employee_id", candidate.EmployeeID),
				zap.String("template", slot.Template.Name),
				zap.String("date", slot.DateKey()),
				zap.Error(err))
			continue
		}

		s.state.Commit(candidate.EmployeeID, slot)

		s.logger.Debug("Assigned slot",
			zap.String("shift_id", shiftID),
			zap.String("employee_id", candidate.EmployeeID),
			zap.String("template", slot.Template.Name),
			zap.String("date", slot.DateKey()),
			zap.Float64("score", candidate.Score),
			zap.Strings("reasons", candidate.Reasons))

		return shiftID, true
	}

	return "", false
}

// buildShift creates the draft shift committed for an assignment
func (s *Scheduler) buildShift(slot Slot, employeeID string, start, end time.Time) model.Shift {
	locationID := slot.Template.LocationID
	if locationID == "" {
		locationID = s.state.Params.OrganizationID
	}

	return model.Shift{
		OrganizationID:  s.state.Params.OrganizationID,
		EmployeeID:      employeeID,
		LocationID:      locationID,
		TemplateID:      slot.Template.ID,
		StartTime:       start,
		EndTime:         end,
		BreakMinutes:    slot.Template.BreakMinutes,
		Status:          model.ShiftStatusDraft,
		IsPublished:     false,
		Color:           slot.Template.Color,
		RequiredSkillID: slot.Template.RequiredSkillID,
		CreatedBy:       model.AutoSchedulerCreator,
	}
}

func newUnfilledSlot(slot Slot, reason string) UnfilledSlot {
	return UnfilledSlot{
		TemplateID:   slot.Template.ID,
		TemplateName: slot.Template.Name,
		Date:         slot.DateKey(),
		Reason:       reason,
	}
}
