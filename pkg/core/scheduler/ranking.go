package scheduler

import "sort"

// EvaluateCandidate applies every criterion to one employee for one slot.
// It returns false if any criterion vetoes the employee.
func EvaluateCandidate(state *RunState, slot Slot, employeeID string, criteria []Criterion) (CandidateScore, bool) {
	for _, criterion := range criteria {
		if !criterion.IsCandidateValid(state, slot, employeeID) {
			return CandidateScore{}, false
		}
	}

	candidate := CandidateScore{
		EmployeeID: employeeID,
		Reasons:    []string{},
	}
	for _, criterion := range criteria {
		score, reasons := criterion.Score(state, slot, employeeID)
		candidate.Score += score
		candidate.Reasons = append(candidate.Reasons, reasons...)
	}

	return candidate, true
}

// ScoreCandidates returns the eligible employees for a slot, best score first.
// Equal scores keep the context's employee order.
func ScoreCandidates(state *RunState, slot Slot, criteria []Criterion) []CandidateScore {
	candidates := make([]CandidateScore, 0, len(state.Context.EmployeeIDs))

	for _, employeeID := range state.Context.EmployeeIDs {
		candidate, ok := EvaluateCandidate(state, slot, employeeID, criteria)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}
