package criteria

import "github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"

// HoursCapCriterion excludes employees whose running weekly hours plus the slot's
// duration would exceed the run's maximum
type HoursCapCriterion struct{}

func NewHoursCapCriterion() *HoursCapCriterion {
	return &HoursCapCriterion{}
}

func (c *HoursCapCriterion) Name() string {
	return "HoursCap"
}

func (c *HoursCapCriterion) IsCandidateValid(state *scheduler.RunState, slot scheduler.Slot, employeeID string) bool {
	return state.CurrentHours(employeeID)+slot.DurationHours() <= state.Params.MaxHours()
}

func (c *HoursCapCriterion) Score(state *scheduler.RunState, slot scheduler.Slot, employeeID string) (float64, []string) {
	return 0, nil
}
