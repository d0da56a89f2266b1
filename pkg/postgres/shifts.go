package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// ListShiftsInRange returns the organization's shifts of any status starting within [start, end)
func (d *DB) ListShiftsInRange(ctx context.Context, organizationID string, start, end time.Time) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, employee_id, location_id, template_id, start_time, end_time,
		       break_minutes, status, is_published, color, required_skill_id, created_by
		FROM shifts
		WHERE organization_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time, id
	`, organizationID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var s model.Shift
		var employeeID, templateID, skillID *string
		if err := rows.Scan(&s.ID, &s.OrganizationID, &employeeID, &s.LocationID, &templateID, &s.StartTime, &s.EndTime,
			&s.BreakMinutes, &s.Status, &s.IsPublished, &s.Color, &skillID, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.EmployeeID = deref(employeeID)
		s.TemplateID = deref(templateID)
		s.RequiredSkillID = deref(skillID)
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// CreateShift inserts the shift under a new id and returns the id
func (d *DB) CreateShift(ctx context.Context, shift model.Shift) (string, error) {
	id := uuid.New().String()

	_, err := d.pool.Exec(ctx, `
		INSERT INTO shifts (id, organization_id, employee_id, location_id, template_id, start_time, end_time,
		                    break_minutes, status, is_published, color, required_skill_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, id, shift.OrganizationID, nullable(shift.EmployeeID), shift.LocationID, nullable(shift.TemplateID),
		shift.StartTime, shift.EndTime, shift.BreakMinutes, shift.Status, shift.IsPublished, shift.Color,
		nullable(shift.RequiredSkillID), shift.CreatedBy)
	if err != nil {
		return "", fmt.Errorf("failed to insert shift: %w", err)
	}

	return id, nil
}
