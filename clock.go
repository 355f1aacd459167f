package gocube

import "time"

// Clock is the host's monotonic time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which carries a monotonic reading.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a clock that only moves when told to.
// Headless hosts and tests use it to drive frames deterministically.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a clock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.now = t
}

// Add moves the clock forward by d and returns the new reading.
func (c *ManualClock) Add(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}
