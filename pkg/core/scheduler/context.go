package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// AvailabilityKey indexes availability rows by employee and weekday
type AvailabilityKey struct {
	EmployeeID string
	DayOfWeek  int
}

// DayKey identifies one employee on one ISO date
type DayKey struct {
	EmployeeID string
	Date       string
}

// SlotKey identifies a template on an ISO date
type SlotKey struct {
	TemplateID string
	Date       string
}

// SchedulingContext is everything a run needs, indexed for constant-time lookups.
// It is read-only once loaded.
type SchedulingContext struct {
	OrganizationID string
	WeekDates      [7]time.Time

	Templates []model.ShiftTemplate

	// EmployeeIDs preserves repository order, which decides score ties
	EmployeeIDs []string

	Availability map[AvailabilityKey][]model.Availability
	Skills       map[string]map[string]bool

	ExistingShifts []model.Shift

	// FilledSlots marks template/date pairs that already have a shift
	FilledSlots map[SlotKey]bool

	// ExistingHours is each employee's already-scheduled hours this week
	ExistingHours map[string]float64

	// ExistingStarts holds the start times-of-day already committed per employee and date
	ExistingStarts map[DayKey]map[string]bool

	// Leave maps employee ID to the ISO dates this week covered by approved leave
	Leave map[string]map[string]bool
}

// IsSlotFilled reports whether a shift already exists for the slot's template and date
func (sc *SchedulingContext) IsSlotFilled(slot Slot) bool {
	return sc.FilledSlots[SlotKey{TemplateID: slot.Template.ID, Date: slot.DateKey()}]
}

// AvailabilityFor returns the availability rows for an employee on a weekday
func (sc *SchedulingContext) AvailabilityFor(employeeID string, dayOfWeek int) []model.Availability {
	return sc.Availability[AvailabilityKey{EmployeeID: employeeID, DayOfWeek: dayOfWeek}]
}

// HasSkill reports whether the employee holds the skill
func (sc *SchedulingContext) HasSkill(employeeID, skillID string) bool {
	return sc.Skills[employeeID][skillID]
}

// IsOnLeave reports whether approved leave covers the employee on the ISO date
func (sc *SchedulingContext) IsOnLeave(employeeID, date string) bool {
	return sc.Leave[employeeID][date]
}

// LoadContext gathers templates, members, availability, skills, existing shifts and
// approved leave for one organization and week.
// Loading stops early when there are no templates or no eligible employees; the
// returned context is then incomplete and the scheduler reports it as a warning.
func LoadContext(ctx context.Context, repo Repository, params Params) (*SchedulingContext, error) {
	weekDates := WeekDates(params.WeekStart)
	weekStart := weekDates[0]
	weekEnd := weekDates[6]

	sc := &SchedulingContext{
		OrganizationID: params.OrganizationID,
		WeekDates:      weekDates,
		Availability:   make(map[AvailabilityKey][]model.Availability),
		Skills:         make(map[string]map[string]bool),
		FilledSlots:    make(map[SlotKey]bool),
		ExistingHours:  make(map[string]float64),
		ExistingStarts: make(map[DayKey]map[string]bool),
		Leave:          make(map[string]map[string]bool),
	}

	templates, err := repo.ListActiveTemplates(ctx, params.OrganizationID, params.LocationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}
	for _, tmpl := range templates {
		if tmpl.IsActive {
			sc.Templates = append(sc.Templates, tmpl)
		}
	}
	if len(sc.Templates) == 0 {
		return sc, nil
	}

	members, err := repo.ListEligibleMembers(ctx, params.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	seen := make(map[string]bool, len(members))
	for _, member := range members {
		if !member.Role.CanBeScheduled() || seen[member.EmployeeID] {
			continue
		}
		seen[member.EmployeeID] = true
		sc.EmployeeIDs = append(sc.EmployeeIDs, member.EmployeeID)
	}
	if len(sc.EmployeeIDs) == 0 {
		return sc, nil
	}

	availability, err := repo.ListAvailability(ctx, params.OrganizationID, sc.EmployeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	for _, row := range availability {
		key := AvailabilityKey{EmployeeID: row.EmployeeID, DayOfWeek: row.DayOfWeek}
		sc.Availability[key] = append(sc.Availability[key], row)
	}

	skills, err := repo.ListSkills(ctx, sc.EmployeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list member skills: %w", err)
	}
	for _, skill := range skills {
		if sc.Skills[skill.EmployeeID] == nil {
			sc.Skills[skill.EmployeeID] = make(map[string]bool)
		}
		sc.Skills[skill.EmployeeID][skill.SkillID] = true
	}

	shifts, err := repo.ListShiftsInRange(ctx, params.OrganizationID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("failed to list existing shifts: %w", err)
	}
	sc.ExistingShifts = shifts
	loc := weekStart.Location()
	for _, shift := range shifts {
		start := shift.StartTime.In(loc)
		date := DateKey(start)

		if shift.TemplateID != "" {
			sc.FilledSlots[SlotKey{TemplateID: shift.TemplateID, Date: date}] = true
		}
		if shift.EmployeeID == "" {
			continue
		}

		sc.ExistingHours[shift.EmployeeID] += shift.DurationHours()

		key := DayKey{EmployeeID: shift.EmployeeID, Date: date}
		if sc.ExistingStarts[key] == nil {
			sc.ExistingStarts[key] = make(map[string]bool)
		}
		sc.ExistingStarts[key][start.Format("15:04")] = true
	}

	leave, err := repo.ListApprovedLeave(ctx, params.OrganizationID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	for _, req := range leave {
		if req.Status != model.LeaveStatusApproved {
			continue
		}
		from := DateKey(req.StartDate)
		to := DateKey(req.EndDate)
		for _, d := range weekDates {
			date := DateKey(d)
			if date < from || date > to {
				continue
			}
			if sc.Leave[req.EmployeeID] == nil {
				sc.Leave[req.EmployeeID] = make(map[string]bool)
			}
			sc.Leave[req.EmployeeID][date] = true
		}
	}

	return sc, nil
}

// RunState is the mutable state of one scheduling run.
// It is created per run and never shared between runs.
type RunState struct {
	Context *SchedulingContext
	Params  Params

	// HoursWorked is existing plus newly committed hours per employee
	HoursWorked map[string]float64

	// DayAssignments holds committed start times-of-day per employee and date
	DayAssignments map[DayKey]map[string]bool
}

// NewRunState seeds running hours and day assignments from the context's existing shifts
func NewRunState(sc *SchedulingContext, params Params) *RunState {
	state := &RunState{
		Context:        sc,
		Params:         params,
		HoursWorked:    make(map[string]float64, len(sc.ExistingHours)),
		DayAssignments: make(map[DayKey]map[string]bool, len(sc.ExistingStarts)),
	}
	for employeeID, hours := range sc.ExistingHours {
		state.HoursWorked[employeeID] = hours
	}
	for key, starts := range sc.ExistingStarts {
		copied := make(map[string]bool, len(starts))
		for start := range starts {
			copied[start] = true
		}
		state.DayAssignments[key] = copied
	}
	return state
}

// CurrentHours returns the employee's running weekly hours
func (rs *RunState) CurrentHours(employeeID string) float64 {
	return rs.HoursWorked[employeeID]
}

// IsBookedAt reports whether the employee already starts a shift at this slot's time on its date
func (rs *RunState) IsBookedAt(employeeID string, slot Slot) bool {
	return rs.DayAssignments[DayKey{EmployeeID: employeeID, Date: slot.DateKey()}][slot.StartKey()]
}

// Commit records a successful assignment of the slot to the employee
func (rs *RunState) Commit(employeeID string, slot Slot) {
	rs.HoursWorked[employeeID] += slot.DurationHours()

	key := DayKey{EmployeeID: employeeID, Date: slot.DateKey()}
	if rs.DayAssignments[key] == nil {
		rs.DayAssignments[key] = make(map[string]bool)
	}
	rs.DayAssignments[key][slot.StartKey()] = true
}
