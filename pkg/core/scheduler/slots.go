package scheduler

import (
	"sort"
	"time"

	"github.com/jakechorley/workforce-scheduler/pkg/core/model"
)

// GenerateSlots builds one slot per template per week date, skipping closed dates.
// Slots are ordered by date, then by the template's start time compared as text.
// The order matters: earlier slots get first pick of low-hour employees.
func GenerateSlots(templates []model.ShiftTemplate, weekDates [7]time.Time, closedDates map[string]bool) []Slot {
	slots := make([]Slot, 0, len(templates)*len(weekDates))

	for _, tmpl := range templates {
		for _, date := range weekDates {
			if closedDates[DateKey(date)] {
				continue
			}
			slots = append(slots, Slot{
				Template:  tmpl,
				Date:      date,
				DayOfWeek: int(date.Weekday()),
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].Template.StartTime < slots[j].Template.StartTime
	})

	return slots
}
