package clock

import "time"

// StartOfWeek returns the ISO week boundary for t: the preceding Monday at
// 00:00:00 UTC. If t is already a Monday, it returns midnight of the same day.
// The result is used as the idempotency guard for weekly credit resets, so it
// must be stable for every instant within the same calendar week.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()

	// time.Weekday numbers Sunday as 0; shift so Monday becomes 0.
	offset := (int(t.Weekday()) + 6) % 7

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
