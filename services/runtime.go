package services

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Rand is the subset of *rand.Rand used for reply delays and canned replies.
type Rand interface {
	IntN(n int) int
}

// Runtime carries the clock, id source, timer and event sink a dashboard's
// components share. Zero fields fall back to real implementations.
type Runtime struct {
	Now       func() time.Time
	NewID     func() string
	Scheduler Scheduler
	Rand      Rand
	Sink      EventSink
}

func (r Runtime) withDefaults() Runtime {
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.NewID == nil {
		r.NewID = uuid.NewString
	}
	if r.Scheduler == nil {
		r.Scheduler = realScheduler{}
	}
	if r.Rand == nil {
		r.Rand = globalRand{}
	}
	if r.Sink == nil {
		r.Sink = LogSink{}
	}
	return r
}

// globalRand uses the package-level generator, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }
