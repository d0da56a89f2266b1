package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
)

func TestDefault_Order(t *testing.T) {
	names := make([]string, 0)
	for _, criterion := range Default() {
		names = append(names, criterion.Name())
	}
	assert.Equal(t, []string{"Leave", "DoubleBooking", "Availability", "HoursCap", "Skill", "Fairness"}, names)
}

func TestDefault_CombinedScoreAndReasons(t *testing.T) {
	tmpl := dayTemplate()
	tmpl.RequiredSkillID = "first-aid"
	slot := newTestSlot(tmpl, 0)

	state := newTestState(Params{RespectAvailability: true, MaxHoursPerEmployee: 40}, "alice")
	addAvailability(state, "alice", slot.DayOfWeek, model.AvailabilityPreferred)
	state.Context.Skills["alice"] = map[string]bool{"first-aid": true}
	state.HoursWorked["alice"] = 8

	candidate, ok := scheduler.EvaluateCandidate(state, slot, "alice", Default())
	require.True(t, ok)

	// 20 (preferred) + 15 (skill) + 16 (fairness at 8/40)
	assert.InDelta(t, 51.0, candidate.Score, 1e-9)
	assert.Equal(t, []string{"preferred", "skill_match", "hours:8.0"}, candidate.Reasons)
}

func TestDefault_MissingSkillStillCandidate(t *testing.T) {
	tmpl := dayTemplate()
	tmpl.RequiredSkillID = "first-aid"
	slot := newTestSlot(tmpl, 0)

	state := newTestState(Params{RespectAvailability: true, MaxHoursPerEmployee: 40}, "bob")

	candidate, ok := scheduler.EvaluateCandidate(state, slot, "bob", Default())
	require.True(t, ok)

	// 5 (no preference) - 10 (no skill) + 20 (fairness)
	assert.InDelta(t, 15.0, candidate.Score, 1e-9)
	assert.Equal(t, []string{"no_preference", "no_skill", "hours:0.0"}, candidate.Reasons)
}

func TestScoreCandidates_TiesKeepEmployeeOrder(t *testing.T) {
	state := newTestState(Params{MaxHoursPerEmployee: 40}, "carol", "alice", "bob")
	slot := newTestSlot(dayTemplate(), 0)

	candidates := scheduler.ScoreCandidates(state, slot, Default())
	require.Len(t, candidates, 3)
	assert.Equal(t, "carol", candidates[0].EmployeeID)
	assert.Equal(t, "alice", candidates[1].EmployeeID)
	assert.Equal(t, "bob", candidates[2].EmployeeID)
}

func TestScoreCandidates_SortedByScoreAndExcludesVetoed(t *testing.T) {
	state := newTestState(Params{RespectAvailability: true, MaxHoursPerEmployee: 40}, "alice", "bob", "carol", "dave")
	slot := newTestSlot(dayTemplate(), 0)

	addAvailability(state, "bob", slot.DayOfWeek, model.AvailabilityPreferred)
	addAvailability(state, "carol", slot.DayOfWeek, model.AvailabilityUnavailable)
	state.HoursWorked["alice"] = 20
	state.Context.Leave["dave"] = map[string]bool{slot.DateKey(): true}

	candidates := scheduler.ScoreCandidates(state, slot, Default())
	require.Len(t, candidates, 2)

	// bob: 20 + 20 = 40, alice: 5 + 10 = 15
	assert.Equal(t, "bob", candidates[0].EmployeeID)
	assert.InDelta(t, 40.0, candidates[0].Score, 1e-9)
	assert.Equal(t, "alice", candidates[1].EmployeeID)
	assert.InDelta(t, 15.0, candidates[1].Score, 1e-9)
}
