package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/workforce-scheduler/pkg/audit"
	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// ListActiveTemplates returns the organization's active shift templates,
// restricted to locationIDs when any are given
func (d *DB) ListActiveTemplates(ctx context.Context, organizationID string, locationIDs []string) ([]model.ShiftTemplate, error) {
	query := `SELECT id, organization_id, name, start_time, end_time, break_minutes,
			location_id, required_skill_id, is_active, color
		FROM shift_templates
		WHERE organization_id = ? AND is_active = 1`
	args := []any{organizationID}
	if len(locationIDs) > 0 {
		placeholders, locationArgs := inClause(locationIDs)
		query += ` AND location_id IN (` + placeholders + `)`
		args = append(args, locationArgs...)
	}
	query += ` ORDER BY start_time, id`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	var templates []model.ShiftTemplate
	for rows.Next() {
		var t model.ShiftTemplate
		var locationID, skillID sql.NullString
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Name, &t.StartTime, &t.EndTime, &t.BreakMinutes,
			&locationID, &skillID, &t.IsActive, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		t.LocationID = locationID.String
		t.RequiredSkillID = skillID.String
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift templates: %w", err)
	}

	return templates, nil
}

// ListEligibleMembers returns the organization's members that can be scheduled, in join order
func (d *DB) ListEligibleMembers(ctx context.Context, organizationID string) ([]model.Member, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT employee_id, role
		FROM organization_members
		WHERE organization_id = ? AND role IN ('employee', 'manager')
		ORDER BY joined_at, employee_id`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.EmployeeID, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// ListAvailability returns the weekly availability rows for the given employees
func (d *DB) ListAvailability(ctx context.Context, organizationID string, employeeIDs []string) ([]model.Availability, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	placeholders, employeeArgs := inClause(employeeIDs)
	rows, err := d.db.QueryContext(ctx, `SELECT organization_id, employee_id, day_of_week, start_time, end_time, kind
		FROM availability
		WHERE organization_id = ? AND employee_id IN (`+placeholders+`)`,
		append([]any{organizationID}, employeeArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var availability []model.Availability
	for rows.Next() {
		var a model.Availability
		if err := rows.Scan(&a.OrganizationID, &a.EmployeeID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		availability = append(availability, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability: %w", err)
	}

	return availability, nil
}

// ListSkills returns the skills held by the given employees
func (d *DB) ListSkills(ctx context.Context, employeeIDs []string) ([]model.MemberSkill, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	placeholders, args := inClause(employeeIDs)
	rows, err := d.db.QueryContext(ctx, `SELECT employee_id, skill_id
		FROM member_skills
		WHERE employee_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query member skills: %w", err)
	}
	defer rows.Close()

	var skills []model.MemberSkill
	for rows.Next() {
		var s model.MemberSkill
		if err := rows.Scan(&s.EmployeeID, &s.SkillID); err != nil {
			return nil, fmt.Errorf("failed to scan member skill: %w", err)
		}
		skills = append(skills, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member skills: %w", err)
	}

	return skills, nil
}

// ListShiftsInRange returns the organization's shifts of any status starting within [start, end)
func (d *DB) ListShiftsInRange(ctx context.Context, organizationID string, start, end time.Time) ([]model.Shift, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, organization_id, employee_id, location_id, template_id,
			start_time, end_time, break_minutes, status, is_published, color, required_skill_id, created_by
		FROM shifts
		WHERE organization_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time, id`,
		organizationID, formatTimestamp(start), formatTimestamp(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var s model.Shift
		var employeeID, templateID, skillID sql.NullString
		var startStr, endStr string
		if err := rows.Scan(&s.ID, &s.OrganizationID, &employeeID, &s.LocationID, &templateID,
			&startStr, &endStr, &s.BreakMinutes, &s.Status, &s.IsPublished, &s.Color, &skillID, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.EmployeeID = employeeID.String
		s.TemplateID = templateID.String
		s.RequiredSkillID = skillID.String

		if s.StartTime, err = parseTimestamp(startStr); err != nil {
			return nil, fmt.Errorf("failed to parse start time of shift %s: %w", s.ID, err)
		}
		if s.EndTime, err = parseTimestamp(endStr); err != nil {
			return nil, fmt.Errorf("failed to parse end time of shift %s: %w", s.ID, err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// ListApprovedLeave returns approved leave overlapping the dates start..end
func (d *DB) ListApprovedLeave(ctx context.Context, organizationID string, start, end time.Time) ([]model.LeaveRequest, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, organization_id, employee_id, status, start_date, end_date
		FROM leave_requests
		WHERE organization_id = ? AND status = 'approved' AND start_date <= ? AND end_date >= ?`,
		organizationID, end.Format(dateLayout), start.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var leave []model.LeaveRequest
	for rows.Next() {
		var l model.LeaveRequest
		var startStr, endStr string
		if err := rows.Scan(&l.ID, &l.OrganizationID, &l.EmployeeID, &l.Status, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		if l.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
			return nil, fmt.Errorf("failed to parse start date of leave %s: %w", l.ID, err)
		}
		if l.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
			return nil, fmt.Errorf("failed to parse end date of leave %s: %w", l.ID, err)
		}
		leave = append(leave, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave requests: %w", err)
	}

	return leave, nil
}

// CreateShift inserts the shift under a new id and returns the id
func (d *DB) CreateShift(ctx context.Context, shift model.Shift) (string, error) {
	id := uuid.New().String()

	_, err := d.db.ExecContext(ctx, `INSERT INTO shifts (id, organization_id, employee_id, location_id, template_id,
			start_time, end_time, break_minutes, status, is_published, color, required_skill_id, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, shift.OrganizationID, nullable(shift.EmployeeID), shift.LocationID, nullable(shift.TemplateID),
		formatTimestamp(shift.StartTime), formatTimestamp(shift.EndTime), shift.BreakMinutes, shift.Status,
		shift.IsPublished, shift.Color, nullable(shift.RequiredSkillID), shift.CreatedBy)
	if err != nil {
		return "", fmt.Errorf("failed to insert shift: %w", err)
	}

	return id, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func lastAuditHash(ctx context.Context, q rowQuerier) (string, error) {
	var hash string
	err := q.QueryRowContext(ctx, `SELECT hash FROM audit_log ORDER BY seq DESC LIMIT 1`).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query last audit hash: %w", err)
	}
	return hash, nil
}

// LastAuditHash returns the hash of the newest audit entry, or "" for an empty log
func (d *DB) LastAuditHash(ctx context.Context) (string, error) {
	return lastAuditHash(ctx, d.db)
}

// AppendAuditEntry links entry to the newest audit entry and inserts it in one
// IMMEDIATE transaction, which holds the database write lock from the read onwards.
func (d *DB) AppendAuditEntry(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return audit.Entry{}, fmt.Errorf("failed to begin audit transaction: %w", err)
	}

	stored, err := appendAuditEntry(ctx, conn, entry)
	if err == nil {
		_, err = conn.ExecContext(ctx, "COMMIT")
	}
	if err != nil {
		// The context may already be done and the transaction must still be closed
		_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		return audit.Entry{}, err
	}

	return stored, nil
}

func appendAuditEntry(ctx context.Context, conn *sql.Conn, entry audit.Entry) (audit.Entry, error) {
	prevHash, err := lastAuditHash(ctx, conn)
	if err != nil {
		return audit.Entry{}, err
	}
	stored := audit.Link(prevHash, entry)

	_, err = conn.ExecContext(ctx, `INSERT INTO audit_log (id, organization_id, action, entity_id, payload, prev_hash, hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.OrganizationID, stored.Action, stored.EntityID, stored.Payload, stored.PrevHash, stored.Hash,
		stored.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return stored, nil
}

// ListAuditEntries returns the whole audit log, oldest first
func (d *DB) ListAuditEntries(ctx context.Context) ([]audit.Entry, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, organization_id, action, entity_id, payload, prev_hash, hash, created_at
		FROM audit_log
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Action, &e.EntityID, &e.Payload, &e.PrevHash, &e.Hash, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse audit timestamp of %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log: %w", err)
	}

	return entries, nil
}
