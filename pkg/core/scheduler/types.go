package scheduler

import (
	"context"
	"time"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// DefaultMaxHoursPerEmployee is used when a run does not set a weekly cap
const DefaultMaxHoursPerEmployee = 40.0

// Reasons recorded against slots that could not be filled
const (
	ReasonNoEligibleEmployees = "No eligible employees available"
	ReasonComplianceFailed    = "All candidates failed compliance validation"
)

// Params describes one scheduling run
type Params struct {
	OrganizationID string

	// WeekStart is expected to already be aligned to the organization's week boundary
	WeekStart time.Time

	// LocationIDs optionally restricts templates to these locations
	LocationIDs []string

	RespectAvailability bool

	// MaxHoursPerEmployee caps existing plus newly created hours per employee (0 = default)
	MaxHoursPerEmployee float64

	// ClosedDates are ISO dates on which no slots are generated
	ClosedDates map[string]bool
}

// MaxHours returns the effective weekly cap
func (p Params) MaxHours() float64 {
	if p.MaxHoursPerEmployee <= 0 {
		return DefaultMaxHoursPerEmployee
	}
	return p.MaxHoursPerEmployee
}

// Repository is the persistence collaborator the scheduler reads its context from and
// commits shifts through
type Repository interface {
	ListActiveTemplates(ctx context.Context, organizationID string, locationIDs []string) ([]model.ShiftTemplate, error)
	ListEligibleMembers(ctx context.Context, organizationID string) ([]model.Member, error)
	ListAvailability(ctx context.Context, organizationID string, employeeIDs []string) ([]model.Availability, error)
	ListSkills(ctx context.Context, employeeIDs []string) ([]model.MemberSkill, error)
	ListShiftsInRange(ctx context.Context, organizationID string, start, end time.Time) ([]model.Shift, error)
	ListApprovedLeave(ctx context.Context, organizationID string, start, end time.Time) ([]model.LeaveRequest, error)
	CreateShift(ctx context.Context, shift model.Shift) (string, error)
}

// ComplianceOracle decides whether a concrete assignment satisfies labour-law rules
type ComplianceOracle interface {
	Validate(ctx context.Context, proposal model.ShiftProposal) (bool, error)
}

// Slot is one (template, date) pair awaiting an assignment decision
type Slot struct {
	Template  model.ShiftTemplate
	Date      time.Time
	DayOfWeek int
}

// DateKey returns the slot's ISO date
func (s Slot) DateKey() string {
	return DateKey(s.Date)
}

// StartKey returns the slot's normalised start time-of-day
func (s Slot) StartKey() string {
	return clockKey(s.Template.StartTime)
}

// DurationHours returns the paid length of the slot
func (s Slot) DurationHours() float64 {
	return ShiftDurationHours(s.Template.StartTime, s.Template.EndTime, s.Template.BreakMinutes)
}

// Times returns the concrete start and end of the slot
func (s Slot) Times() (time.Time, time.Time) {
	return ShiftTimes(s.Date, s.Template.StartTime, s.Template.EndTime)
}

// CandidateScore is an eligible employee's desirability for one slot
type CandidateScore struct {
	EmployeeID string
	Score      float64
	Reasons    []string
}

// Criterion is one rule of the candidate scorer.
// Every criterion may veto a candidate and may contribute to its score.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsCandidateValid returns false to exclude the employee from the slot entirely
	IsCandidateValid(state *RunState, slot Slot, employeeID string) bool

	// Score returns the criterion's additive contribution and the reason tags explaining it.
	// Only called for candidates that passed every criterion's validity check.
	Score(state *RunState, slot Slot, employeeID string) (float64, []string)
}
