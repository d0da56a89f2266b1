package criteria

import "github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"

// DoubleBookingCriterion prevents giving an employee two shifts that start at the
// same time on the same date.
//
// Only the start time-of-day is compared. Shifts that overlap without sharing a
// start time are left to the compliance oracle.
type DoubleBookingCriterion struct{}

func NewDoubleBookingCriterion() *DoubleBookingCriterion {
	return &DoubleBookingCriterion{}
}

func (c *DoubleBookingCriterion) Name() string {
	return "DoubleBooking"
}

func (c *DoubleBookingCriterion) IsCandidateValid(state *scheduler.RunState, slot scheduler.Slot, employeeID string) bool {
	return !state.IsBookedAt(employeeID, slot)
}

func (c *DoubleBookingCriterion) Score(state *scheduler.RunState, slot scheduler.Slot, employeeID string) (float64, []string) {
	return 0, nil
}
