package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// ListEligibleMembers returns the organization's members that can be scheduled, in join order
func (d *DB) ListEligibleMembers(ctx context.Context, organizationID string) ([]model.Member, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, role
		FROM organization_members
		WHERE organization_id = $1 AND role IN ('employee', 'manager')
		ORDER BY joined_at, employee_id
	`, organizationID)
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

// ListSkills returns the skills held by the given employees
func (d *DB) ListSkills(ctx context.Context, employeeIDs []string) ([]model.MemberSkill, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, skill_id
		FROM member_skills
		WHERE employee_id = ANY($1)
	`, employeeIDs)
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
