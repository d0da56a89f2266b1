package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

func TestAvailabilityCriterion_Name(t *testing.T) {
	assert.Equal(t, "Availability", NewAvailabilityCriterion().Name())
}

func TestAvailabilityCriterion_IsCandidateValid(t *testing.T) {
	slot := newTestSlot(dayTemplate(), 0) // Monday
	dow := slot.DayOfWeek

	tests := []struct {
		name     string
		respect  bool
		kinds    []model.AvailabilityKind
		expected bool
	}{
		{"no rows - valid", true, nil, true},
		{"available - valid", true, []model.AvailabilityKind{model.AvailabilityAvailable}, true},
		{"preferred - valid", true, []model.AvailabilityKind{model.AvailabilityPreferred}, true},
		{"unavailable - invalid", true, []model.AvailabilityKind{model.AvailabilityUnavailable}, false},
		{"unavailable beats available", true, []model.AvailabilityKind{model.AvailabilityAvailable, model.AvailabilityUnavailable}, false},
		{"unknown kind only - invalid", true, []model.AvailabilityKind{"maybe"}, false},
		{"ignored - unavailable is valid", false, []model.AvailabilityKind{model.AvailabilityUnavailable}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState(Params{RespectAvailability: tt.respect}, "alice")
			addAvailability(state, "alice", dow, tt.kinds...)

			assert.Equal(t, tt.expected, NewAvailabilityCriterion().IsCandidateValid(state, slot, "alice"))
		})
	}
}

func TestAvailabilityCriterion_OnlyMatchesWeekday(t *testing.T) {
	state := newTestState(Params{RespectAvailability: true}, "alice")
	// Unavailable on Tuesday only
	addAvailability(state, "alice", 2, model.AvailabilityUnavailable)

	criterion := NewAvailabilityCriterion()
	assert.True(t, criterion.IsCandidateValid(state, newTestSlot(dayTemplate(), 0), "alice"))
	assert.False(t, criterion.IsCandidateValid(state, newTestSlot(dayTemplate(), 1), "alice"))
}

func TestAvailabilityCriterion_Score(t *testing.T) {
	slot := newTestSlot(dayTemplate(), 0)
	dow := slot.DayOfWeek

	tests := []struct {
		name           string
		respect        bool
		kinds          []model.AvailabilityKind
		expectedScore  float64
		expectedReason string
	}{
		{"preferred", true, []model.AvailabilityKind{model.AvailabilityPreferred}, 20, "preferred"},
		{"preferred wins over available", true, []model.AvailabilityKind{model.AvailabilityAvailable, model.AvailabilityPreferred}, 20, "preferred"},
		{"available", true, []model.AvailabilityKind{model.AvailabilityAvailable}, 10, "available"},
		{"no rows", true, nil, 5, "no_preference"},
		{"ignored availability", false, []model.AvailabilityKind{model.AvailabilityPreferred}, 5, "no_preference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState(Params{RespectAvailability: tt.respect}, "alice")
			addAvailability(state, "alice", dow, tt.kinds...)

			score, reasons := NewAvailabilityCriterion().Score(state, slot, "alice")
			assert.Equal(t, tt.expectedScore, score)
			assert.Equal(t, []string{tt.expectedReason}, reasons)
		})
	}
}
