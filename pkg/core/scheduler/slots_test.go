package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

func TestGenerateSlots_CrossProductSortedByDateThenStart(t *testing.T) {
	templates := []model.ShiftTemplate{
		{ID: "late", Name: "Late", StartTime: "14:00", EndTime: "22:00"},
		{ID: "early", Name: "Early", StartTime: "06:00", EndTime: "14:00"},
	}
	weekDates := WeekDates(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))

	slots := GenerateSlots(templates, weekDates, nil)

	require.Len(t, slots, 14)
	assert.Equal(t, "early", slots[0].Template.ID)
	assert.Equal(t, "2025-01-06", slots[0].DateKey())
	assert.Equal(t, "late", slots[1].Template.ID)
	assert.Equal(t, "2025-01-06", slots[1].DateKey())
	assert.Equal(t, "early", slots[2].Template.ID)
	assert.Equal(t, "2025-01-07", slots[2].DateKey())
	assert.Equal(t, "2025-01-12", slots[13].DateKey())
}

func TestGenerateSlots_DayOfWeek(t *testing.T) {
	templates := []model.ShiftTemplate{{ID: "day", StartTime: "09:00", EndTime: "17:00"}}
	weekDates := WeekDates(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))

	slots := GenerateSlots(templates, weekDates, nil)

	require.Len(t, slots, 7)
	assert.Equal(t, int(time.Monday), slots[0].DayOfWeek)
	assert.Equal(t, int(time.Sunday), slots[6].DayOfWeek)
	assert.Equal(t, 0, slots[6].DayOfWeek)
}

func TestGenerateSlots_StartTimeComparedAsText(t *testing.T) {
	// "9:00" sorts after "10:00" as text; the ordering is intentionally lexicographic
	templates := []model.ShiftTemplate{
		{ID: "nine", StartTime: "9:00", EndTime: "12:00"},
		{ID: "ten", StartTime: "10:00", EndTime: "12:00"},
	}
	weekDates := WeekDates(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))

	slots := GenerateSlots(templates, weekDates, nil)

	assert.Equal(t, "ten", slots[0].Template.ID)
	assert.Equal(t, "nine", slots[1].Template.ID)
}

func TestGenerateSlots_ClosedDatesSkipped(t *testing.T) {
	templates := []model.ShiftTemplate{{ID: "day", StartTime: "09:00", EndTime: "17:00"}}
	weekDates := WeekDates(time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC))

	slots := GenerateSlots(templates, weekDates, map[string]bool{"2025-12-25": true, "2025-12-26": true})

	require.Len(t, slots, 5)
	for _, slot := range slots {
		assert.NotEqual(t, "2025-12-25", slot.DateKey())
		assert.NotEqual(t, "2025-12-26", slot.DateKey())
	}
}

func TestGenerateSlots_NoTemplates(t *testing.T) {
	slots := GenerateSlots(nil, WeekDates(time.Now()), nil)
	assert.Empty(t, slots)
}

func TestSlot_Helpers(t *testing.T) {
	slot := Slot{
		Template: model.ShiftTemplate{StartTime: "9:00", EndTime: "17:00", BreakMinutes: 30},
		Date:     time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "09:00", slot.StartKey())
	assert.Equal(t, "2025-01-06", slot.DateKey())
	assert.InDelta(t, 7.5, slot.DurationHours(), 1e-9)
}
