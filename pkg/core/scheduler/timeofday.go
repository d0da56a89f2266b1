package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO date format used for every date-keyed index
const DateLayout = "2006-01-02"

// ParseTimeOfDay splits an "HH:MM" string into hours and minutes.
// Missing or non-numeric components are treated as zero, so malformed input becomes midnight.
func ParseTimeOfDay(s string) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		hours = 0
	}

	minutes := 0
	if len(parts) > 1 {
		if m, err := strconv.Atoi(parts[1]); err == nil {
			minutes = m
		}
	}

	return hours, minutes
}

// minutesOfDay converts an "HH:MM" string to minutes past midnight
func minutesOfDay(s string) int {
	h, m := ParseTimeOfDay(s)
	return h*60 + m
}

// ShiftDurationHours returns the paid length of a shift in hours.
// An end at or before the start wraps past midnight. The break is deducted and the
// result never goes below zero.
func ShiftDurationHours(start, end string, breakMinutes int) float64 {
	hours := float64(minutesOfDay(end)-minutesOfDay(start)) / 60
	if hours <= 0 {
		hours += 24
	}
	hours -= float64(breakMinutes) / 60
	return max(hours, 0)
}

// WeekDates returns the seven consecutive dates starting at weekStart, each at midnight
// in weekStart's location
func WeekDates(weekStart time.Time) [7]time.Time {
	var dates [7]time.Time
	first := midnight(weekStart)
	for i := range dates {
		dates[i] = first.AddDate(0, 0, i)
	}
	return dates
}

// ShiftTimes builds concrete start and end timestamps for a template's times on the given date.
// If the end is not after the start, it moves to the following day.
func ShiftTimes(date time.Time, start, end string) (time.Time, time.Time) {
	day := midnight(date)
	sh, sm := ParseTimeOfDay(start)
	eh, em := ParseTimeOfDay(end)

	startAt := time.Date(day.Year(), day.Month(), day.Day(), sh, sm, 0, 0, day.Location())
	endAt := time.Date(day.Year(), day.Month(), day.Day(), eh, em, 0, 0, day.Location())
	if !endAt.After(startAt) {
		endAt = endAt.AddDate(0, 0, 1)
	}
	return startAt, endAt
}

// DateKey formats t as an ISO date
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// clockKey normalises an "HH:MM" string so "9:00" and "09:00" compare equal
func clockKey(s string) string {
	h, m := ParseTimeOfDay(s)
	return fmt.Sprintf("%02d:%02d", h, m)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
