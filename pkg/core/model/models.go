package model

import "time"

type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// CanBeScheduled reports whether members with this role may receive auto-scheduled shifts
func (r Role) CanBeScheduled() bool {
	return r == RoleEmployee || r == RoleManager
}

type AvailabilityKind string

const (
	AvailabilityAvailable   AvailabilityKind = "available"
	AvailabilityUnavailable AvailabilityKind = "unavailable"
	AvailabilityPreferred   AvailabilityKind = "preferred"
)

type ShiftStatus string

const (
	ShiftStatusDraft     ShiftStatus = "draft"
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// AutoSchedulerCreator is recorded as the creator of every shift the scheduler commits
const AutoSchedulerCreator = "auto-scheduler"

// ShiftTemplate is a recurring shift definition. StartTime and EndTime are
// "HH:MM" wall-clock times; an EndTime earlier than StartTime is overnight.
type ShiftTemplate struct {
	ID              string `json:"id"`
	OrganizationID  string `json:"organizationId"`
	Name            string `json:"name"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	BreakMinutes    int    `json:"breakMinutes"`
	LocationID      string `json:"locationId,omitempty"`      // Empty when the template has no default location
	RequiredSkillID string `json:"requiredSkillId,omitempty"` // Empty when no skill is required
	IsActive        bool   `json:"isActive"`
	Color           string `json:"color,omitempty"`
}

// Member is an organization member as seen by the scheduler
type Member struct {
	EmployeeID string
	Role       Role
}

// Availability is one weekly availability row. DayOfWeek follows time.Weekday (0 = Sunday).
type Availability struct {
	OrganizationID string
	EmployeeID     string
	DayOfWeek      int
	StartTime      string
	EndTime        string
	Kind           AvailabilityKind
}

// MemberSkill records that a member holds a skill
type MemberSkill struct {
	EmployeeID string
	SkillID    string
}

// LeaveRequest is an employee absence covering StartDate..EndDate inclusive
type LeaveRequest struct {
	ID             string
	EmployeeID     string
	OrganizationID string
	Status         LeaveStatus
	StartDate      time.Time
	EndDate        time.Time
}

// Shift is a persisted shift, whatever created it
type Shift struct {
	ID              string      `json:"id"`
	OrganizationID  string      `json:"organizationId"`
	EmployeeID      string      `json:"employeeId"`
	LocationID      string      `json:"locationId"`
	TemplateID      string      `json:"templateId,omitempty"` // Empty for shifts not created from a template
	StartTime       time.Time   `json:"startTime"`
	EndTime         time.Time   `json:"endTime"`
	BreakMinutes    int         `json:"breakMinutes"`
	Status          ShiftStatus `json:"status"`
	IsPublished     bool        `json:"isPublished"`
	Color           string      `json:"color,omitempty"`
	RequiredSkillID string      `json:"requiredSkillId,omitempty"`
	CreatedBy       string      `json:"createdBy"`
}

// DurationHours returns the worked hours of the shift (break excluded, never negative)
func (s Shift) DurationHours() float64 {
	hours := s.EndTime.Sub(s.StartTime).Hours() - float64(s.BreakMinutes)/60
	return max(hours, 0)
}

// ShiftProposal is a concrete assignment submitted to the compliance oracle
type ShiftProposal struct {
	OrganizationID string
	EmployeeID     string
	Start          time.Time
	End            time.Time
	BreakMinutes   int
}
