package launch

import (
	"sync"
	"time"

	"github.com/rah-0/launchpad/internal/scheduler"
)

// TimerRegistry holds at most one pending autonomous transition per launch.
//
// Every timer carries a token. A callback that fires after its timer was cancelled or
// replaced finds its token gone when it calls Claim, and must do nothing.
type TimerRegistry struct {
	sched scheduler.Scheduler

	mu     sync.Mutex
	seq    uint64
	timers map[int]pendingTimer
}

type pendingTimer struct {
	token  uint64
	handle scheduler.Handle
	due    time.Time
}

// NewTimerRegistry creates an empty registry scheduling on s.
func NewTimerRegistry(s scheduler.Scheduler) *TimerRegistry {
	return &TimerRegistry{
		sched:  s,
		timers: make(map[int]pendingTimer),
	}
}

// Schedule cancels any pending timer for the launch, then arranges for fn to run after d.
// fn receives the token it must present to Claim.
func (r *TimerRegistry) Schedule(launchID int, d time.Duration, fn func(token uint64)) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelLocked(launchID)
	r.seq++
	token := r.seq
	handle := r.sched.AfterFunc(d, func() { fn(token) })
	r.timers[launchID] = pendingTimer{
		token:  token,
		handle: handle,
		due:    r.sched.Now().Add(d),
	}
	return token
}

// Claim removes the launch's timer if it still carries token and reports whether it did.
func (r *TimerRegistry) Claim(launchID int, token uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[launchID]
	if !ok || t.token != token {
		return false
	}
	delete(r.timers, launchID)
	return true
}

// Cancel stops the pending timer of a launch, if any.
func (r *TimerRegistry) Cancel(launchID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancelLocked(launchID)
}

func (r *TimerRegistry) cancelLocked(launchID int) bool {
	t, ok := r.timers[launchID]
	if !ok {
		return false
	}
	t.handle.Stop()
	delete(r.timers, launchID)
	return true
}

// Pending reports whether the launch has a scheduled transition.
func (r *TimerRegistry) Pending(launchID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[launchID]
	return ok
}

// Due returns when the launch's pending transition fires.
func (r *TimerRegistry) Due(launchID int) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.timers[launchID]
	return t.due, ok
}

// Len returns the number of pending timers.
func (r *TimerRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Reset cancels every pending timer and empties the registry.
func (r *TimerRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.timers {
		t.handle.Stop()
		delete(r.timers, id)
	}
}
