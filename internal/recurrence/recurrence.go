// internal/recurrence/recurrence.go
package recurrence

import "time"

// Recurrence rules accepted on a reminder. "once" survives in old rows as an
// alias of "none".
const (
	None    = "none"
	Once    = "once"
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
)

// IsRecurring reports whether the rule produces further occurrences.
func IsRecurring(rule string) bool {
	switch rule {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Next computes the next occurrence after prev, or nil when the rule yields
// no further occurrence (none, once, or anything unrecognized).
//
// The calendar math runs in the reminder's timezone so the wall-clock time
// is preserved across DST transitions; tz falls back to UTC when empty or
// unknown. The result is returned in UTC, matching how scheduled_for is
// stored.
func Next(prev time.Time, rule string, tz string) *time.Time {
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	local := prev.In(loc)

	var next time.Time
	switch rule {
	case Daily:
		next = addDays(local, 1)
	case Weekly:
		next = addDays(local, 7)
	case Monthly:
		next = addMonth(local)
	default:
		return nil
	}

	utc := next.UTC()
	return &utc
}

// addDays advances by whole calendar days keeping the wall-clock time.
// time.Date renormalizes the overflowed day for us; only the clock fields
// are pinned.
func addDays(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// addMonth advances by one calendar month, clamping the day-of-month to the
// last valid day of the target month. Jan 31 goes to Feb 28 (or 29 in a leap
// year), never to Mar 2/3 as naive AddDate would produce.
func addMonth(t time.Time) time.Time {
	year, month := t.Year(), t.Month()+1

	day := t.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the following month normalizes to this month's last day.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
