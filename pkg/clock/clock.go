// Package clock provides the time source injected into date-dependent domain logic.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
