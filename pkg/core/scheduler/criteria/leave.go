package criteria

import "github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"

// LeaveCriterion excludes employees with approved leave on the slot's date
type LeaveCriterion struct{}

func NewLeaveCriterion() *LeaveCriterion {
	return &LeaveCriterion{}
}

func (c *LeaveCriterion) Name() string {
	return "Leave"
}

func (c *LeaveCriterion) IsCandidateValid(state *scheduler.RunState, slot scheduler.Slot, employeeID string) bool {
	return !state.Context.IsOnLeave(employeeID, slot.DateKey())
}

func (c *LeaveCriterion) Score(state *scheduler.RunState, slot scheduler.Slot, employeeID string) (float64, []string) {
	return 0, nil
}
