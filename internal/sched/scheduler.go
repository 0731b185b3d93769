// Package sched provides the central timer for a tick-driven simulation.
// One-shot and recurring callbacks are registered against a Scheduler and
// fire only from Advance, so they always run on a tick boundary. Pausing is
// simply not calling Advance: pending timers resume where they left off.
package sched

import "time"

// minPeriod keeps recurring timers from spinning inside a single Advance.
const minPeriod = time.Millisecond

// Timer is a handle to a scheduled callback.
type Timer struct {
	s         *Scheduler
	seq       uint64
	fireAt    time.Duration
	period    time.Duration // 0 for one-shot timers
	fn        func()
	guard     func() bool
	cancelled bool
	done      bool
}

// Guard attaches a check evaluated at fire time. When it returns false the
// firing is a no-op: one-shot timers are still consumed, recurring timers
// keep their cadence. Returns the timer for chaining.
func (t *Timer) Guard(g func() bool) *Timer {
	t.guard = g
	return t
}

// Cancel stops the timer. Cancelling twice or after completion is a no-op.
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Active reports whether the timer will still fire.
func (t *Timer) Active() bool {
	return t != nil && !t.cancelled && !t.done
}

// Period returns the interval of a recurring timer, or 0 for one-shots.
func (t *Timer) Period() time.Duration {
	return t.period
}

// FireAt returns the scheduler time of the next firing.
func (t *Timer) FireAt() time.Duration {
	return t.fireAt
}

// SetPeriod changes the interval of a recurring timer. The current cycle is
// re-timed from the previous firing, so the new period applies immediately;
// a cycle that is already overdue fires on the next Advance.
func (t *Timer) SetPeriod(d time.Duration) {
	if t == nil || t.period == 0 {
		return
	}
	if d < minPeriod {
		d = minPeriod
	}
	last := t.fireAt - t.period
	t.period = d
	t.fireAt = last + d
	if t.fireAt < t.s.now {
		t.fireAt = t.s.now
	}
}

// Scheduler owns every pending timer of a simulation.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	pending []*Timer
}

// New creates an empty scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of timers that can still fire.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.pending {
		if t.Active() {
			n++
		}
	}
	return n
}

// After schedules fn to run once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	return s.add(d, 0, fn)
}

// Every schedules fn to run every d, first firing d from now.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d < minPeriod {
		d = minPeriod
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(delay, period time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{
		s:      s,
		seq:    s.seq,
		fireAt: s.now + delay,
		period: period,
		fn:     fn,
	}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves time forward by dt, firing every timer that falls due in
// (fire time, registration order) order. Timers registered by callbacks
// that fall due before the end of the advance fire as well.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.fireAt
		if t.period > 0 {
			t.fireAt += t.period
		} else {
			t.done = true
		}
		if t.guard == nil || t.guard() {
			t.fn()
		}
	}

	s.now = target
	s.compact()
}

// Clear cancels every pending timer.
func (s *Scheduler) Clear() {
	for _, t := range s.pending {
		t.cancelled = true
	}
	s.pending = s.pending[:0]
}

// nextDue returns the earliest active timer due at or before target.
func (s *Scheduler) nextDue(target time.Duration) *Timer {
	var best *Timer
	for _, t := range s.pending {
		if !t.Active() || t.fireAt > target {
			continue
		}
		if best == nil || t.fireAt < best.fireAt || (t.fireAt == best.fireAt && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// compact drops finished and cancelled timers.
func (s *Scheduler) compact() {
	live := s.pending[:0]
	for _, t := range s.pending {
		if t.Active() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.pending); i++ {
		s.pending[i] = nil
	}
	s.pending = live
}
