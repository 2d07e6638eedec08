package services

import (
	"sync"
	"time"
)

// Scheduler runs f once after d. The returned stop function reports whether it
// prevented the call, matching time.Timer.Stop.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// realScheduler backs delayed work with time.AfterFunc.
type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Task is a handle to delayed work. Cancelling it invalidates the callback even
// when the underlying timer already fired and is waiting on a lock.
type Task struct {
	mu        sync.Mutex
	cancelled bool
	done      bool
	stop      func() bool
}

func scheduleTask(s Scheduler, d time.Duration, fn func(t *Task)) *Task {
	t := &Task{}
	t.mu.Lock()
	t.stop = s.AfterFunc(d, func() { fn(t) })
	t.mu.Unlock()
	return t
}

// Cancel invalidates the task. It returns false when the task already ran or
// was cancelled before.
func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled || t.done {
		return false
	}
	t.cancelled = true
	if t.stop != nil {
		t.stop()
	}
	tasksCancelled.Inc()
	return true
}

// Active reports whether the task is still waiting to run.
func (t *Task) Active() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.cancelled && !t.done
}

// claim marks the task as running. It returns false if the task was cancelled,
// in which case the callback must not touch any state.
func (t *Task) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled || t.done {
		return false
	}
	t.done = true
	return true
}
