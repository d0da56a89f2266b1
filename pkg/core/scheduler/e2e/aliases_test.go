package e2e

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler/criteria"
)

// Type aliases to avoid prefixing everything with scheduler.
type (
	Params    = scheduler.Params
	RunConfig = scheduler.RunConfig
	Result    = scheduler.Result
)

// Function aliases
var (
	Run             = scheduler.Run
	DefaultCriteria = criteria.Default
)

// monday is 2025-01-06
var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

// memoryRepository is an in-memory Repository. Created shifts are visible to later reads.
type memoryRepository struct {
	templates    []model.ShiftTemplate
	members      []model.Member
	availability []model.Availability
	skills       []model.MemberSkill
	shifts       []model.Shift
	leave        []model.LeaveRequest

	// failCreateFor makes CreateShift fail for these employees
	failCreateFor map[string]bool

	// emptyIDFor makes CreateShift return an empty id for these employees
	emptyIDFor map[string]bool

	created []model.Shift
	nextID  int
}

func (r *memoryRepository) ListActiveTemplates(ctx context.Context, organizationID string, locationIDs []string) ([]model.ShiftTemplate, error) {
	return r.templates, nil
}

func (r *memoryRepository) ListEligibleMembers(ctx context.Context, organizationID string) ([]model.Member, error) {
	return r.members, nil
}

func (r *memoryRepository) ListAvailability(ctx context.Context, organizationID string, employeeIDs []string) ([]model.Availability, error) {
	return r.availability, nil
}

func (r *memoryRepository) ListSkills(ctx context.Context, employeeIDs []string) ([]model.MemberSkill, error) {
	return r.skills, nil
}

func (r *memoryRepository) ListShiftsInRange(ctx context.Context, organizationID string, start, end time.Time) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range r.shifts {
		if !s.StartTime.Before(start) && s.StartTime.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryRepository) ListApprovedLeave(ctx context.Context, organizationID string, start, end time.Time) ([]model.LeaveRequest, error) {
	return r.leave, nil
}

func (r *memoryRepository) CreateShift(ctx context.Context, shift model.Shift) (string, error) {
	if r.failCreateFor[shift.EmployeeID] {
		return "", errors.New("insert failed")
	}
	if r.emptyIDFor[shift.EmployeeID] {
		return "", nil
	}
	r.nextID++
	shift.ID = fmt.Sprintf("shift-%d", r.nextID)
	r.shifts = append(r.shifts, shift)
	r.created = append(r.created, shift)
	return shift.ID, nil
}

// oracleFunc adapts a function to scheduler.ComplianceOracle
type oracleFunc func(proposal model.ShiftProposal) (bool, error)

func (f oracleFunc) Validate(ctx context.Context, proposal model.ShiftProposal) (bool, error) {
	return f(proposal)
}

// recordingOracle approves everything and records every call
type recordingOracle struct {
	calls []model.ShiftProposal
	deny  map[string]bool
}

func (o *recordingOracle) Validate(ctx context.Context, proposal model.ShiftProposal) (bool, error) {
	o.calls = append(o.calls, proposal)
	return !o.deny[proposal.EmployeeID], nil
}

func alwaysValid() oracleFunc {
	return func(model.ShiftProposal) (bool, error) { return true, nil }
}

func dayTemplate() model.ShiftTemplate {
	return model.ShiftTemplate{
		ID:             "tmpl-day",
		OrganizationID: "org-1",
		Name:           "Day",
		StartTime:      "09:00",
		EndTime:        "17:00",
		IsActive:       true,
		Color:          "#22c55e",
	}
}

func employees(ids ...string) []model.Member {
	members := make([]model.Member, len(ids))
	for i, id := range ids {
		members[i] = model.Member{EmployeeID: id, Role: model.RoleEmployee}
	}
	return members
}

func availableOn(employeeID string, kind model.AvailabilityKind, days ...time.Weekday) []model.Availability {
	rows := make([]model.Availability, len(days))
	for i, day := range days {
		rows[i] = model.Availability{
			OrganizationID: "org-1",
			EmployeeID:     employeeID,
			DayOfWeek:      int(day),
			StartTime:      "08:00",
			EndTime:        "18:00",
			Kind:           kind,
		}
	}
	return rows
}

var (
	weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	allDays  = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
)

func runWith(repo *memoryRepository, oracle scheduler.ComplianceOracle, params Params) (*Result, error) {
	if params.OrganizationID == "" {
		params.OrganizationID = "org-1"
	}
	if params.WeekStart.IsZero() {
		params.WeekStart = monday
	}
	return Run(context.Background(), RunConfig{
		Params:     params,
		Criteria:   DefaultCriteria(),
		Repository: repo,
		Oracle:     oracle,
	})
}
