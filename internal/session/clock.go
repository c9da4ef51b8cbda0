// Package session implements the typing state machine and its metrics.
package session

import (
	"errors"
	"time"
)

// ErrClockNotStopped reports an elapsed-time read before both timestamps exist.
var ErrClockNotStopped = errors.New("session clock has not started and stopped")

// Clock records the first-keystroke and completion timestamps of a
// session attempt. The zero value is an unstarted clock.
type Clock struct {
	start time.Time
	end   time.Time
	now   func() time.Time
}

func (c *Clock) clock() func() time.Time {
	if c.now != nil {
		return c.now
	}
	return time.Now
}

// Start sets the start timestamp if it is unset.
func (c *Clock) Start() {
	if c.start.IsZero() {
		c.start = c.clock()()
	}
}

// Stop sets the end timestamp if the clock started and has no end yet.
func (c *Clock) Stop() {
	if !c.start.IsZero() && c.end.IsZero() {
		c.end = c.clock()()
	}
}

// Started reports whether the first keystroke has been seen.
func (c *Clock) Started() bool {
	return !c.start.IsZero()
}

// Stopped reports whether the completion timestamp is set.
func (c *Clock) Stopped() bool {
	return !c.end.IsZero()
}

// StartedAt returns the start timestamp; valid only when Started.
func (c *Clock) StartedAt() time.Time {
	return c.start
}

// Running returns the time since start for an in-flight session.
func (c *Clock) Running() time.Duration {
	if c.start.IsZero() {
		return 0
	}
	return c.clock()().Sub(c.start)
}

// Elapsed returns end minus start, or ErrClockNotStopped when either
// timestamp is unset.
func (c *Clock) Elapsed() (time.Duration, error) {
	if c.start.IsZero() || c.end.IsZero() {
		return 0, ErrClockNotStopped
	}
	return c.end.Sub(c.start), nil
}

// Reset returns the clock to its unstarted state.
func (c *Clock) Reset() {
	c.start = time.Time{}
	c.end = time.Time{}
}
