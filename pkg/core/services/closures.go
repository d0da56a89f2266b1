package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/internal/config"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
)

// ClosedDate is a date in the scheduled week on which no slots were generated
type ClosedDate struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

// closureAnchor is the DTSTART used for closure rules that do not carry their own.
// It is a Monday so weekly intervals count from a fixed week.
var closureAnchor = time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC)

// parseClosureRule parses an rrule, optionally preceded by a DTSTART line.
// Rules without a DTSTART are anchored at closureAnchor so their occurrences
// do not depend on the week being scheduled.
func parseClosureRule(s string, loc *time.Location) (*rrule.RRule, error) {
	option, err := rrule.StrToROptionInLocation(s, loc)
	if err != nil {
		return nil, err
	}
	if option.Dtstart.IsZero() {
		y, m, d := closureAnchor.Date()
		option.Dtstart = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	return rrule.NewRRule(*option)
}

// resolveClosures expands the configured closure rrules over the target week.
// The first closure matching a date provides its reason.
func resolveClosures(closures []config.Closure, weekStart time.Time, logger *zap.Logger) (map[string]bool, []ClosedDate, error) {
	closed := make(map[string]bool)
	var dates []ClosedDate

	weekDates := scheduler.WeekDates(weekStart)
	inWeek := make(map[string]bool, len(weekDates))
	for _, d := range weekDates {
		inWeek[scheduler.DateKey(d)] = true
	}

	searchStart := weekDates[0]
	searchEnd := weekStart.AddDate(0, 0, 7).Add(-time.Second)

	for i, closure := range closures {
		rule, err := parseClosureRule(closure.RRule, weekStart.Location())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse rrule for closure %d: %w", i, err)
		}

		occurrences := rule.Between(searchStart, searchEnd, true)

		matched := 0
		for _, occurrence := range occurrences {
			date := scheduler.DateKey(occurrence.In(weekStart.Location()))
			if !inWeek[date] || closed[date] {
				continue
			}
			closed[date] = true
			dates = append(dates, ClosedDate{Date: date, Reason: closure.Reason})
			matched++
		}

		logger.Debug("Resolved closure",
			zap.Int("index", i),
			zap.String("rrule", closure.RRule),
			zap.Int("dates_in_week", matched))
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Date < dates[j].Date
	})

	return closed, dates, nil
}
