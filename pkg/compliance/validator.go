package compliance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// lookaround is how far either side of a proposal existing shifts are read
const lookaround = 8 * 24 * time.Hour

// ShiftLister reads an organization's shifts starting within [start, end)
type ShiftLister interface {
	ListShiftsInRange(ctx context.Context, organizationID string, start, end time.Time) ([]model.Shift, error)
}

// Validator is the rule-based compliance oracle.
// It reads the employee's persisted shifts on every call, so shifts created earlier in
// the same scheduling run are taken into account.
type Validator struct {
	store  ShiftLister
	rules  Rules
	logger *zap.Logger
}

func NewValidator(store ShiftLister, rules Rules, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{store: store, rules: rules, logger: logger}
}

// Validate reports whether the proposal breaks no rule
func (v *Validator) Validate(ctx context.Context, proposal model.ShiftProposal) (bool, error) {
	violations, err := v.Evaluate(ctx, proposal)
	if err != nil {
		return false, err
	}

	if len(violations) > 0 {
		rules := make([]string, len(violations))
		for i, violation := range violations {
			rules[i] = violation.Rule
		}
		v.logger.Debug("Proposal violates compliance rules",
			zap.String("employee_id", proposal.EmployeeID),
			zap.Time("start", proposal.Start),
			zap.Strings("rules", rules))
		return false, nil
	}

	return true, nil
}

// Evaluate returns every rule the proposal breaks against the employee's existing shifts
func (v *Validator) Evaluate(ctx context.Context, proposal model.ShiftProposal) ([]Violation, error) {
	var violations []Violation

	proposed := paidHours(proposal.Start, proposal.End, proposal.BreakMinutes)
	if v.rules.MaxShiftHours > 0 && proposed > v.rules.MaxShiftHours {
		violations = append(violations, Violation{
			Rule:    RuleMaxShiftHours,
			Message: fmt.Sprintf("shift is %.1fh, limit is %.1fh", proposed, v.rules.MaxShiftHours),
		})
	}

	shifts, err := v.store.ListShiftsInRange(ctx, proposal.OrganizationID, proposal.Start.Add(-lookaround), proposal.End.Add(lookaround))
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for compliance check: %w", err)
	}
	shifts = employeeShifts(shifts, proposal.EmployeeID)

	for _, shift := range shifts {
		if shift.StartTime.Before(proposal.End) && proposal.Start.Before(shift.EndTime) {
			violations = append(violations, Violation{
				Rule:    RuleOverlap,
				Message: fmt.Sprintf("overlaps shift %s starting %s", shift.ID, shift.StartTime.Format(time.RFC3339)),
			})
			// Rest between overlapping shifts is meaningless
			continue
		}

		if v.rules.MinRestHours <= 0 {
			continue
		}
		var rest time.Duration
		if !shift.EndTime.After(proposal.Start) {
			rest = proposal.Start.Sub(shift.EndTime)
		} else {
			rest = shift.StartTime.Sub(proposal.End)
		}
		if rest.Hours() < v.rules.MinRestHours {
			violations = append(violations, Violation{
				Rule:    RuleMinRest,
				Message: fmt.Sprintf("only %.1fh rest next to shift %s, minimum is %.1fh", rest.Hours(), shift.ID, v.rules.MinRestHours),
			})
		}
	}

	if v.rules.MaxDailyHours > 0 {
		day := dayStart(proposal.Start)
		total := proposed + hoursStartingIn(shifts, day, day.AddDate(0, 0, 1))
		if total > v.rules.MaxDailyHours {
			violations = append(violations, Violation{
				Rule:    RuleMaxDailyHours,
				Message: fmt.Sprintf("%.1fh on %s, limit is %.1fh", total, day.Format("2006-01-02"), v.rules.MaxDailyHours),
			})
		}
	}

	if v.rules.MaxWeeklyHours > 0 {
		week := weekStart(proposal.Start)
		total := proposed + hoursStartingIn(shifts, week, week.AddDate(0, 0, 7))
		if total > v.rules.MaxWeeklyHours {
			violations = append(violations, Violation{
				Rule:    RuleMaxWeeklyHours,
				Message: fmt.Sprintf("%.1fh in week of %s, limit is %.1fh", total, week.Format("2006-01-02"), v.rules.MaxWeeklyHours),
			})
		}
	}

	return violations, nil
}

// employeeShifts keeps the employee's shifts that still count towards working time
func employeeShifts(shifts []model.Shift, employeeID string) []model.Shift {
	var out []model.Shift
	for _, shift := range shifts {
		if shift.EmployeeID != employeeID || shift.Status == model.ShiftStatusCancelled {
			continue
		}
		out = append(out, shift)
	}
	return out
}

func hoursStartingIn(shifts []model.Shift, from, to time.Time) float64 {
	total := 0.0
	for _, shift := range shifts {
		if !shift.StartTime.Before(from) && shift.StartTime.Before(to) {
			total += shift.DurationHours()
		}
	}
	return total
}

func paidHours(start, end time.Time, breakMinutes int) float64 {
	return max(end.Sub(start).Hours()-float64(breakMinutes)/60, 0)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart returns the Monday starting t's week
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return dayStart(t).AddDate(0, 0, -offset)
}
