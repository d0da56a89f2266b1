package criteria

import (
	"time"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
)

// Type aliases to avoid prefixing everything with scheduler.
type (
	RunState          = scheduler.RunState
	SchedulingContext = scheduler.SchedulingContext
	Slot              = scheduler.Slot
	Params            = scheduler.Params
	AvailabilityKey   = scheduler.AvailabilityKey
	DayKey            = scheduler.DayKey
)

// monday is 2025-01-06
var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

// newTestState builds a run state over an empty context with the given employees
func newTestState(params Params, employeeIDs ...string) *RunState {
	sc := &SchedulingContext{
		WeekDates:      scheduler.WeekDates(monday),
		EmployeeIDs:    employeeIDs,
		Availability:   map[AvailabilityKey][]model.Availability{},
		Skills:         map[string]map[string]bool{},
		ExistingHours:  map[string]float64{},
		ExistingStarts: map[DayKey]map[string]bool{},
		Leave:          map[string]map[string]bool{},
	}
	return scheduler.NewRunState(sc, params)
}

// newTestSlot builds a slot for the template on the given weekday offset from monday
func newTestSlot(tmpl model.ShiftTemplate, dayOffset int) Slot {
	date := monday.AddDate(0, 0, dayOffset)
	return Slot{Template: tmpl, Date: date, DayOfWeek: int(date.Weekday())}
}

func dayTemplate() model.ShiftTemplate {
	return model.ShiftTemplate{ID: "tmpl-day", Name: "Day", StartTime: "09:00", EndTime: "17:00", IsActive: true}
}

func addAvailability(state *RunState, employeeID string, dayOfWeek int, kinds ...model.AvailabilityKind) {
	key := AvailabilityKey{EmployeeID: employeeID, DayOfWeek: dayOfWeek}
	for _, kind := range kinds {
		state.Context.Availability[key] = append(state.Context.Availability[key], model.Availability{
			EmployeeID: employeeID,
			DayOfWeek:  dayOfWeek,
			StartTime:  "00:00",
			EndTime:    "23:59",
			Kind:       kind,
		})
	}
}
