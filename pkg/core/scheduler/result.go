package scheduler

import "fmt"

// UnfilledSlot is a slot the run could not assign
type UnfilledSlot struct {
	TemplateID   string `json:"templateId"`
	TemplateName string `json:"templateName"`
	Date         string `json:"date"`
	Reason       string `json:"reason"`
}

// EmployeeAssignment summarises one employee's week after the run
type EmployeeAssignment struct {
	EmployeeID string `json:"employeeId"`

	// ShiftCount is not tracked per employee and is always reported as zero
	ShiftCount int `json:"shiftCount"`

	TotalHours float64 `json:"totalHours"`
}

// Result is the report returned by a scheduling run
type Result struct {
	Created         int                  `json:"created"`
	Skipped         int                  `json:"skipped"`
	PreFilled       int                  `json:"preFilled"`
	CreatedShiftIDs []string             `json:"createdShiftIds"`
	UnfilledSlots   []UnfilledSlot       `json:"unfilledSlots"`
	Assignments     []EmployeeAssignment `json:"assignments"`
	Warnings        []string             `json:"warnings"`
}

func newResult() *Result {
	// Empty slices (not nil) so callers and JSON consumers see []
	return &Result{
		CreatedShiftIDs: []string{},
		UnfilledSlots:   []UnfilledSlot{},
		Assignments:     []EmployeeAssignment{},
		Warnings:        []string{},
	}
}

// emptyResult is returned when there is nothing to schedule
func emptyResult(warning string) *Result {
	result := newResult()
	result.Warnings = append(result.Warnings, warning)
	return result
}

// buildResult aggregates the run's created shifts, unfilled slots and employee hours
func buildResult(state *RunState, createdIDs []string, unfilled []UnfilledSlot, preFilled int) *Result {
	result := newResult()
	result.Created = len(createdIDs)
	result.CreatedShiftIDs = append(result.CreatedShiftIDs, createdIDs...)
	result.UnfilledSlots = append(result.UnfilledSlots, unfilled...)
	result.Skipped = len(result.UnfilledSlots)
	result.PreFilled = preFilled

	for _, employeeID := range state.Context.EmployeeIDs {
		hours := state.HoursWorked[employeeID]
		if hours <= 0 {
			continue
		}
		result.Assignments = append(result.Assignments, EmployeeAssignment{
			EmployeeID: employeeID,
			ShiftCount: 0,
			TotalHours: hours,
		})
	}

	if len(result.UnfilledSlots) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d shift slots could not be filled", len(result.UnfilledSlots)))
	}

	return result
}
