package testfixtures

import "sync"

// Rand replays a fixed sequence of draws. Each value is clamped to n-1; when
// the sequence runs out it starts over. An empty sequence always draws 0.
type Rand struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewRand returns a generator that replays values.
func NewRand(values ...int) *Rand {
	return &Rand{values: values}
}

// IntN returns the next draw in [0, n).
func (r *Rand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
