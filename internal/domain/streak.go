package domain

import (
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) civil.Date {
	return civil.DateOf(t)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil || !d.IsValid() {
		return civil.Date{}, &ValidationError{Field: "date", Message: "expected YYYY-MM-DD, got " + quote(s)}
	}
	return d, nil
}

// CurrentStreak counts consecutive days ending today that have at least one
// solved problem. datesDesc must be distinct and sorted descending, as
// returned by the store. The walk stops at the first date that breaks the
// run, so a missing today yields 0.
func CurrentStreak(datesDesc []civil.Date, today civil.Date) int {
	streak := 0
	cursor := today
	for _, d := range datesDesc {
		if d != cursor {
			break
		}
		streak++
		cursor = cursor.AddDays(-1)
	}
	return streak
}

// UniqueDates returns the distinct solved dates of problems, ascending.
func UniqueDates(problems []*Problem) []civil.Date {
	seen := make(map[civil.Date]struct{}, len(problems))
	dates := make([]civil.Date, 0, len(problems))
	for _, p := range problems {
		d := DateOf(p.SolvedAt)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sortDatesAscending(dates)
	return dates
}

// MaxStreak returns the longest run of consecutive solved days.
func MaxStreak(problems []*Problem) int {
	return MaxStreakOfDates(UniqueDates(problems))
}

// MaxStreakOfDates returns the longest run of consecutive days in dates.
// Order and duplicates in the input do not matter.
func MaxStreakOfDates(dates []civil.Date) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := make([]civil.Date, len(dates))
	copy(sorted, dates)
	sortDatesAscending(sorted)

	maxRun, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		switch {
		case sorted[i] == sorted[i-1]:
			continue
		case sorted[i] == sorted[i-1].AddDays(1):
			run++
		default:
			run = 1
		}
		if run > maxRun {
			maxRun = run
		}
	}
	return maxRun
}

func sortDatesAscending(dates []civil.Date) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}

func quote(s string) string {
	return `"` + s + `"`
}
