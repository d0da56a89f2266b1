package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// ListAvailability returns the weekly availability rows for the given employees
func (d *DB) ListAvailability(ctx context.Context, organizationID string, employeeIDs []string) ([]model.Availability, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT organization_id, employee_id, day_of_week, start_time, end_time, kind
		FROM availability
		WHERE organization_id = $1 AND employee_id = ANY($2)
	`, organizationID, employeeIDs)
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

// ListApprovedLeave returns approved leave overlapping the dates start..end
func (d *DB) ListApprovedLeave(ctx context.Context, organizationID string, start, end time.Time) ([]model.LeaveRequest, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, employee_id, status, start_date, end_date
		FROM leave_requests
		WHERE organization_id = $1 AND status = 'approved'
		  AND start_date <= $3 AND end_date >= $2
	`, organizationID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var leave []model.LeaveRequest
	for rows.Next() {
		var l model.LeaveRequest
		if err := rows.Scan(&l.ID, &l.OrganizationID, &l.EmployeeID, &l.Status, &l.StartDate, &l.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leave = append(leave, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave requests: %w", err)
	}

	return leave, nil
}
