package weekly

import "time"

// scheduledHourUTC is the hour of day every window boundary is
// normalized to.
const scheduledHourUTC = 8

// ScheduledTime returns the most recent occurrence of day at or before
// now, normalized to 08:00:00 UTC, then shifted by weeks*7 days
// (negative weeks go further back). When now already falls on day, the
// same day is returned, not the one a week earlier.
func ScheduledTime(now time.Time, day time.Weekday, weeks int) time.Time {
	now = now.UTC()
	daysSince := (int(now.Weekday()) - int(day) + 7) % 7
	d := now.AddDate(0, 0, -daysSince+7*weeks)
	return time.Date(d.Year(), d.Month(), d.Day(), scheduledHourUTC, 0, 0, 0, time.UTC)
}

// WeekOfMonth returns the 1-indexed week number of t within its
// calendar month, with weeks anchored on Monday.
func WeekOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	// Monday-based offset of the month's first day.
	offset := (int(first.Weekday()) + 6) % 7
	return (t.Day() + offset + 6) / 7
}
