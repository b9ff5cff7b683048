// Package system provides a real clock implementation.
package system

import "time"

// Clock implements service.Clock using time.Now in the local zone.
// Readings keys are derived from the local calendar date, so unlike
// most services we deliberately do not force UTC here.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current local time.
func (Clock) Now() time.Time {
	return time.Now()
}
