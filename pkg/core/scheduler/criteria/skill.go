package criteria

import "github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"

// SkillCriterion rewards employees holding the template's required skill and
// penalises those who don't. A missing skill never excludes a candidate.
type SkillCriterion struct{}

func NewSkillCriterion() *SkillCriterion {
	return &SkillCriterion{}
}

func (c *SkillCriterion) Name() string {
	return "Skill"
}

func (c *SkillCriterion) IsCandidateValid(state *scheduler.RunState, slot scheduler.Slot, employeeID string) bool {
	return true
}

func (c *SkillCriterion) Score(state *scheduler.RunState, slot scheduler.Slot, employeeID string) (float64, []string) {
	skillID := slot.Template.RequiredSkillID
	if skillID == "" {
		return 0, nil
	}

	if state.Context.HasSkill(employeeID, skillID) {
		return ScoreSkillMatch, []string{ReasonSkillMatch}
	}
	return ScoreNoSkill, []string{ReasonNoSkill}
}
