package deadline

import (
	"math"
	"time"
)

const (
	daysPerWeek = 7
	// TermWeeks is the number of teaching weeks in a term.
	TermWeeks = 14
	day       = 24 * time.Hour
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseDate reads a YYYY-MM-DD date or an RFC 3339 timestamp. Bare dates are
// midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CurrentWeek returns the 1-based teaching week containing now, clamped to
// the term.
func CurrentWeek(start, now time.Time) int {
	elapsed := now.Sub(start)
	week := int(math.Floor(elapsed.Hours()/24/daysPerWeek)) + 1
	if week < 1 {
		return 1
	}
	if week > TermWeeks {
		return TermWeeks
	}
	return week
}

// WeekEnd is the last day (the Sunday for a Monday start) of a teaching week.
func WeekEnd(start time.Time, week int) time.Time {
	return start.AddDate(0, 0, week*daysPerWeek-1)
}

// DaysUntil is the number of whole days remaining until date, rounded up.
// Zero or less means the date is today or past.
func DaysUntil(date, now time.Time) int {
	return int(math.Ceil(date.Sub(now).Hours() / 24))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
