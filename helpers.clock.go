package main

import (
	"time"
)

var _ Clocker = (*Clock)(nil)

// Clocker abstracts the wall clock so the uptime and health
// computations can be tested against a fixed time.
type Clocker interface {
	Now() time.Time
}

// Clock is the real wall clock bound to a timezone.
type Clock struct {
	tz *time.Location
}

// NewClock builds the app clock. Production runs on UTC,
// development on the local timezone.
func NewClock(isProd bool) *Clock {
	if isProd {
		return &Clock{time.UTC}
	}
	return &Clock{time.Local}
}

// Now reports the current time in the configured timezone.
func (ck *Clock) Now() time.Time {
	return time.Now().In(ck.tz)
}
