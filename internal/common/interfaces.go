package common

import "time"

// Clock supplies the current time; reports take one so tests can pin timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the wrapped time.
type FixedClock time.Time

// Now returns the fixed time.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
