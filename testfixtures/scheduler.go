package testfixtures

import (
	"sort"
	"sync"
	"time"
)

type pendingCall struct {
	seq     int
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// Scheduler is a manual stand-in for time.AfterFunc. Callbacks only run when
// the test advances virtual time past their delay.
type Scheduler struct {
	mu      sync.Mutex
	elapsed time.Duration
	seq     int
	calls   []*pendingCall
	delays  []time.Duration
}

// NewScheduler returns an idle manual scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc registers fn to run once d of virtual time has elapsed.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	call := &pendingCall{seq: s.seq, due: s.elapsed + d, fn: fn}
	s.calls = append(s.calls, call)
	s.delays = append(s.delays, d)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if call.fired || call.stopped {
			return false
		}
		call.stopped = true
		return true
	}
}

// Advance moves virtual time forward and runs every callback that became due,
// in due order. Callbacks run without the scheduler lock held.
func (s *Scheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.elapsed += d
	var due []*pendingCall
	for _, call := range s.calls {
		if !call.fired && !call.stopped && call.due <= s.elapsed {
			call.fired = true
			due = append(due, call)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})
	for _, call := range due {
		call.fn()
	}
	return len(due)
}

// RunAll fires every pending callback regardless of its delay, ignoring stops.
// It simulates a timer whose Stop raced with expiry.
func (s *Scheduler) RunAll() int {
	s.mu.Lock()
	var due []*pendingCall
	for _, call := range s.calls {
		if !call.fired {
			call.fired = true
			due = append(due, call)
		}
	}
	s.mu.Unlock()
	for _, call := range due {
		call.fn()
	}
	return len(due)
}

// Pending returns the number of callbacks that are neither fired nor stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, call := range s.calls {
		if !call.fired && !call.stopped {
			n++
		}
	}
	return n
}

// Delays returns every delay passed to AfterFunc, in registration order.
func (s *Scheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.delays))
	copy(out, s.delays)
	return out
}
