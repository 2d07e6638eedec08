package services

import (
	"context"
	"sync"
	"testing"

	"pingly_server/models"
	"pingly_server/testfixtures"
)

type recordingSink struct {
	mu        sync.Mutex
	decisions []models.SwipeDecision
	matches   []models.Match
	unmatches []models.Match
	messages  []models.Message
}

func (s *recordingSink) RecordDecision(_ context.Context, d models.SwipeDecision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, d)
	return nil
}

func (s *recordingSink) RecordMatch(_ context.Context, m models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append(s.matches, m)
	return nil
}

func (s *recordingSink) RecordUnmatch(_ context.Context, m models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmatches = append(s.unmatches, m)
	return nil
}

func (s *recordingSink) RecordMessage(_ context.Context, msg models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

func (s *recordingSink) Decisions() []models.SwipeDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SwipeDecision(nil), s.decisions...)
}

func (s *recordingSink) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

type testEnv struct {
	rt    Runtime
	clock *testfixtures.Clock
	sched *testfixtures.Scheduler
	sink  *recordingSink
}

func newTestEnv(t *testing.T, draws ...int) testEnv {
	t.Helper()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	sched := testfixtures.NewScheduler()
	sink := &recordingSink{}
	ids := testfixtures.NewIDGenerator("")
	return testEnv{
		rt: Runtime{
			Now:       clock.Now,
			NewID:     ids.Next,
			Scheduler: sched,
			Rand:      testfixtures.NewRand(draws...),
			Sink:      sink,
		},
		clock: clock,
		sched: sched,
		sink:  sink,
	}
}

func testCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: "u1", Name: "Emma Wilson", Program: "Computer Science"},
		{ID: "u3", Name: "Alex Park", Program: "Data Science"},
		{ID: "u4", Name: "Sofia Martinez", Program: "Design & Tech"},
	}
}
