package rating

import "time"

// Clock supplies the current time. Age calculations take a Clock so results
// are deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }

// FixedYear returns a clock pinned to mid-year of the given year.
func FixedYear(year int) FixedClock {
	return FixedClock{T: time.Date(year, time.July, 1, 12, 0, 0, 0, time.UTC)}
}

// CurrentYear returns the calendar year of clock, falling back to the system
// clock when clock is nil.
func CurrentYear(clock Clock) int {
	if clock == nil {
		clock = SystemClock{}
	}
	return clock.Now().Year()
}
