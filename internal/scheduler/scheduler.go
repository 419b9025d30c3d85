// Package scheduler abstracts mission time so launch timers can run against the
// wall clock in production and a manual clock in tests.
package scheduler

import "time"

// Handle cancels a scheduled callback.
type Handle interface {
	// Stop prevents the callback from running. It reports false if the callback
	// already ran or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay and reports the current time.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Handle
}

// Real is a Scheduler backed by the runtime timer wheel.
type Real struct{}

// NewReal returns the wall-clock scheduler.
func NewReal() Real {
	return Real{}
}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) AfterFunc(d time.Duration, fn func()) Handle {
	return time.AfterFunc(d, fn)
}
