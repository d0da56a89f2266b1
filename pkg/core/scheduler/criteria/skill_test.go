package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillCriterion_Name(t *testing.T) {
	assert.Equal(t, "Skill", NewSkillCriterion().Name())
}

func TestSkillCriterion_NeverExcludes(t *testing.T) {
	tmpl := dayTemplate()
	tmpl.RequiredSkillID = "forklift"
	state := newTestState(Params{}, "alice")

	assert.True(t, NewSkillCriterion().IsCandidateValid(state, newTestSlot(tmpl, 0), "alice"))
}

func TestSkillCriterion_Score(t *testing.T) {
	criterion := NewSkillCriterion()
	state := newTestState(Params{}, "alice", "bob")
	state.Context.Skills["alice"] = map[string]bool{"forklift": true}

	tmpl := dayTemplate()
	tmpl.RequiredSkillID = "forklift"
	slot := newTestSlot(tmpl, 0)

	score, reasons := criterion.Score(state, slot, "alice")
	assert.Equal(t, 15.0, score)
	assert.Equal(t, []string{"skill_match"}, reasons)

	score, reasons = criterion.Score(state, slot, "bob")
	assert.Equal(t, -10.0, score)
	assert.Equal(t, []string{"no_skill"}, reasons)
}

func TestSkillCriterion_NoRequirement(t *testing.T) {
	state := newTestState(Params{}, "alice")

	score, reasons := NewSkillCriterion().Score(state, newTestSlot(dayTemplate(), 0), "alice")
	assert.Equal(t, 0.0, score)
	assert.Empty(t, reasons)
}
