package criteria

import "github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"

// Score contributions
const (
	ScorePreferred    = 20.0
	ScoreAvailable    = 10.0
	ScoreNoPreference = 5.0
	ScoreSkillMatch   = 15.0
	ScoreNoSkill      = -10.0
	MaxFairnessBonus  = 20.0
)

// Reason tags attached to candidate scores
const (
	ReasonPreferred    = "preferred"
	ReasonAvailable    = "available"
	ReasonNoPreference = "no_preference"
	ReasonSkillMatch   = "skill_match"
	ReasonNoSkill      = "no_skill"
)

// Default returns the standard candidate scorer.
// Order matters only for the order of reason tags: availability, skill, hours.
func Default() []scheduler.Criterion {
	return []scheduler.Criterion{
		NewLeaveCriterion(),
		NewDoubleBookingCriterion(),
		NewAvailabilityCriterion(),
		NewHoursCapCriterion(),
		NewSkillCriterion(),
		NewFairnessCriterion(),
	}
}
