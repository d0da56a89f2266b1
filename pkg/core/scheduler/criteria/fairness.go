package criteria

import (
	"fmt"

	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
)

// FairnessCriterion favours employees with fewer hours so far this week.
//
// The bonus falls linearly from 20 at zero hours to 0 at the weekly cap:
//
//	bonus = max(0, 20 - hours/maxHours*20)
//
// Examples with a 40h cap:
//   - 0h worked  → 20
//   - 16h worked → 12
//   - 40h worked → 0
type FairnessCriterion struct{}

func NewFairnessCriterion() *FairnessCriterion {
	return &FairnessCriterion{}
}

func (c *FairnessCriterion) Name() string {
	return "Fairness"
}

func (c *FairnessCriterion) IsCandidateValid(state *scheduler.RunState, slot scheduler.Slot, employeeID string) bool {
	return true
}

func (c *FairnessCriterion) Score(state *scheduler.RunState, slot scheduler.Slot, employeeID string) (float64, []string) {
	hours := state.CurrentHours(employeeID)
	bonus := max(0, MaxFairnessBonus-(hours/state.Params.MaxHours())*MaxFairnessBonus)
	return bonus, []string{fmt.Sprintf("hours:%.1f", hours)}
}
