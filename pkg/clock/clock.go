package clock

import "time"

// Clock supplies the current time. Components take a Clock instead of calling
// time.Now directly so time-dependent logic stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns a Clock backed by the system time in UTC.
func System() Clock {
	return systemClock{}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// Fixed returns a Clock that always reports t in UTC.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t.UTC()}
}
