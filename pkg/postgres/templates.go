package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// ListActiveTemplates returns the organization's active shift templates,
// restricted to locationIDs when any are given
func (d *DB) ListActiveTemplates(ctx context.Context, organizationID string, locationIDs []string) ([]model.ShiftTemplate, error) {
	query := `
		SELECT id, organization_id, name, start_time, end_time, break_minutes,
		       location_id, required_skill_id, is_active, color
		FROM shift_templates
		WHERE organization_id = $1 AND is_active
	`
	args := []any{organizationID}
	if len(locationIDs) > 0 {
		query += ` AND location_id = ANY($2)`
		args = append(args, locationIDs)
	}
	query += ` ORDER BY start_time, id`

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	var templates []model.ShiftTemplate
	for rows.Next() {
		var t model.ShiftTemplate
		var locationID, skillID *string
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Name, &t.StartTime, &t.EndTime, &t.BreakMinutes,
			&locationID, &skillID, &t.IsActive, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		t.LocationID = deref(locationID)
		t.RequiredSkillID = deref(skillID)
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift templates: %w", err)
	}

	return templates, nil
}
