package compliance

// Rule identifiers reported in violations
const (
	RuleMaxShiftHours  = "max_shift_hours"
	RuleMaxDailyHours  = "max_daily_hours"
	RuleMaxWeeklyHours = "max_weekly_hours"
	RuleOverlap        = "overlap"
	RuleMinRest        = "min_rest"
)

// Rules are the labour-law limits a proposed shift is checked against.
// A zero limit disables its rule. Overlap is always checked.
type Rules struct {
	MaxShiftHours  float64
	MaxDailyHours  float64
	MaxWeeklyHours float64
	MinRestHours   float64
}

// DefaultRules returns working-time limits typical of EU regulation
func DefaultRules() Rules {
	return Rules{
		MaxShiftHours:  12,
		MaxDailyHours:  12,
		MaxWeeklyHours: 48,
		MinRestHours:   11,
	}
}

// Violation is one rule a proposal breaks
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}
