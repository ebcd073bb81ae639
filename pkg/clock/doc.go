// Package clock abstracts time for components that schedule or gate work by
// wall-clock time, so their behavior can be tested with fixed timestamps.
//
// The package also owns the week-boundary arithmetic used by the credit
// metering logic. Keeping StartOfWeek here as a single pure function avoids
// divergent timezone and off-by-one bugs between the reset check and its tests.
//
// # Usage
//
//	c := clock.System()
//	weekStart := clock.StartOfWeek(c.Now())
//
// In tests, use a fixed clock:
//
//	c := clock.Fixed(time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC))
package clock
