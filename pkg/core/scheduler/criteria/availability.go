package criteria

import (
	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
)

// AvailabilityCriterion applies employees' weekly availability.
//
// Validity (only when the run respects availability):
//   - Invalid if any row for the slot's weekday is "unavailable"
//   - Invalid if rows exist for the weekday but none is "available" or "preferred"
//
// Score:
//   - preferred: +20, available: +10, otherwise +5 (no rows, or availability ignored)
//
// Rows are matched on weekday only; their time windows are not compared with the shift.
type AvailabilityCriterion struct{}

func NewAvailabilityCriterion() *AvailabilityCriterion {
	return &AvailabilityCriterion{}
}

func (c *AvailabilityCriterion) Name() string {
	return "Availability"
}

func (c *AvailabilityCriterion) IsCandidateValid(state *scheduler.RunState, slot scheduler.Slot, employeeID string) bool {
	if !state.Params.RespectAvailability {
		return true
	}

	rows := state.Context.AvailabilityFor(employeeID, slot.DayOfWeek)
	if len(rows) == 0 {
		return true
	}

	if hasKind(rows, model.AvailabilityUnavailable) {
		return false
	}

	return hasKind(rows, model.AvailabilityAvailable) || hasKind(rows, model.AvailabilityPreferred)
}

func (c *AvailabilityCriterion) Score(state *scheduler.RunState, slot scheduler.Slot, employeeID string) (float64, []string) {
	if state.Params.RespectAvailability {
		rows := state.Context.AvailabilityFor(employeeID, slot.DayOfWeek)
		if hasKind(rows, model.AvailabilityPreferred) {
			return ScorePreferred, []string{ReasonPreferred}
		}
		if hasKind(rows, model.AvailabilityAvailable) {
			return ScoreAvailable, []string{ReasonAvailable}
		}
	}

	return ScoreNoPreference, []string{ReasonNoPreference}
}

func hasKind(rows []model.Availability, kind model.AvailabilityKind) bool {
	for _, row := range rows {
		if row.Kind == kind {
			return true
		}
	}
	return false
}
