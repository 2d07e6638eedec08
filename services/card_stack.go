package services

import (
	"context"
	"sync"
	"time"

	"pingly_server/models"
)

// DragState is a read-only view of the top card's gesture state.
type DragState struct {
	Phase       SwipePhase `json:"phase"`
	Offset      float64    `json:"offset"`
	Direction   Direction  `json:"direction"`
	LastOutcome SwipePhase `json:"lastOutcome,omitempty"`
	Settling    bool       `json:"settling"`
}

// CardStack is the swipe queue. Only the front card accepts input, and the
// queue only ever shrinks from the front.
type CardStack struct {
	mu          sync.Mutex
	owner       string
	mode        models.Mode
	cards       []models.Candidate
	phase       SwipePhase
	offset      float64
	direction   Direction
	lastOutcome SwipePhase
	pending     *Task
	closed      bool
	settle      time.Duration
	rt          Runtime
	onLike      func(models.Candidate)
}

// NewCardStack creates a stack over a copy of candidates, front first.
func NewCardStack(owner string, mode models.Mode, candidates []models.Candidate, rt Runtime) *CardStack {
	cards := make([]models.Candidate, len(candidates))
	copy(cards, candidates)
	return &CardStack{
		owner:  owner,
		mode:   mode,
		cards:  cards,
		phase:  PhaseIdle,
		settle: DefaultSettleDelay,
		rt:     rt.withDefaults(),
	}
}

// SetSettleDelay overrides the wait between a button press and the commit.
func (s *CardStack) SetSettleDelay(d time.Duration) {
	s.mu.Lock()
	s.settle = d
	s.mu.Unlock()
}

// OnLike registers a callback run after every committed like, outside the lock.
func (s *CardStack) OnLike(fn func(models.Candidate)) {
	s.mu.Lock()
	s.onLike = fn
	s.mu.Unlock()
}

// Cards returns a snapshot of the queue.
func (s *CardStack) Cards() []models.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Candidate, len(s.cards))
	copy(out, s.cards)
	return out
}

// Len returns the number of candidates awaiting a decision.
func (s *CardStack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// PeekTop returns the front candidate without mutating the stack.
func (s *CardStack) PeekTop() (models.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cards) == 0 {
		return models.Candidate{}, false
	}
	return s.cards[0], true
}

// State returns the current gesture state of the top card.
func (s *CardStack) State() DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DragState{
		Phase:       s.phase,
		Offset:      s.offset,
		Direction:   s.direction,
		LastOutcome: s.lastOutcome,
		Settling:    s.pending.Active(),
	}
}

// Drag tracks a live drag of the top card and returns the indicator direction.
// Drags are ignored while the stack is empty or a button exit is settling.
func (s *CardStack) Drag(offset float64) Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || len(s.cards) == 0 || s.pending.Active() {
		return DirectionNone
	}
	s.phase = PhaseDragging
	s.offset = offset
	s.direction = DragDirection(offset)
	return s.direction
}

// Release ends a drag. A release past either threshold commits the decision;
// anything else snaps the card back and returns DecisionNone.
func (s *CardStack) Release(offset, velocity float64) models.Decision {
	s.mu.Lock()
	if s.closed || len(s.cards) == 0 || s.pending.Active() {
		s.mu.Unlock()
		return models.DecisionNone
	}
	decision := EvaluateGesture(offset, velocity)
	if decision == models.DecisionNone {
		s.lastOutcome = PhaseSnappedBack
		s.resetLocked()
		s.mu.Unlock()
		return models.DecisionNone
	}
	top, onLike := s.commitLocked(decision)
	s.mu.Unlock()

	s.afterCommit(top, decision, onLike)
	return decision
}

// CommitDecision removes the front candidate and records the decision. It is a
// no-op on an empty stack or for DecisionNone.
func (s *CardStack) CommitDecision(decision models.Decision) (models.Candidate, bool) {
	if !decision.Valid() {
		return models.Candidate{}, false
	}
	s.mu.Lock()
	if s.closed || len(s.cards) == 0 {
		s.mu.Unlock()
		return models.Candidate{}, false
	}
	top, onLike := s.commitLocked(decision)
	s.mu.Unlock()

	s.afterCommit(top, decision, onLike)
	return top, true
}

// TriggerProgrammaticDecision animates the top card off-screen and commits the
// decision once the settle delay elapses. While an exit is settling, further
// presses return the pending task instead of queueing a second commit.
func (s *CardStack) TriggerProgrammaticDecision(decision models.Decision) *Task {
	if !decision.Valid() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || len(s.cards) == 0 {
		return nil
	}
	if s.pending.Active() {
		return s.pending
	}
	s.direction = exitDirection(decision)
	s.pending = scheduleTask(s.rt.Scheduler, s.settle, func(t *Task) {
		s.settleFired(t, decision)
	})
	return s.pending
}

func (s *CardStack) settleFired(t *Task, decision models.Decision) {
	s.mu.Lock()
	if s.closed || !t.claim() {
		s.mu.Unlock()
		return
	}
	if len(s.cards) == 0 {
		s.resetLocked()
		s.mu.Unlock()
		return
	}
	top, onLike := s.commitLocked(decision)
	s.mu.Unlock()

	s.afterCommit(top, decision, onLike)
}

// Refill appends candidates supplied by an external source.
func (s *CardStack) Refill(candidates ...models.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	next := make([]models.Candidate, 0, len(s.cards)+len(candidates))
	next = append(next, s.cards...)
	next = append(next, candidates...)
	s.cards = next
}

// Close tears the stack down. A settle timer that fires afterwards is a no-op.
func (s *CardStack) Close() {
	s.mu.Lock()
	pending := s.pending
	s.closed = true
	s.mu.Unlock()
	pending.Cancel()
}

func (s *CardStack) commitLocked(decision models.Decision) (models.Candidate, func(models.Candidate)) {
	top := s.cards[0]
	s.cards = append([]models.Candidate(nil), s.cards[1:]...)
	s.lastOutcome = committedPhase(decision)
	s.resetLocked()
	if decision == models.DecisionLike {
		return top, s.onLike
	}
	return top, nil
}

func (s *CardStack) resetLocked() {
	s.phase = PhaseIdle
	s.offset = 0
	s.direction = DirectionNone
}

func (s *CardStack) afterCommit(top models.Candidate, decision models.Decision, onLike func(models.Candidate)) {
	swipeDecisions.WithLabelValues(string(decision), string(s.mode)).Inc()
	record := models.SwipeDecision{
		Owner:       s.owner,
		DecidedAt:   s.rt.Now(),
		CandidateID: top.ID,
		Decision:    decision,
		Mode:        s.mode,
	}
	emit("swipe decision", func(ctx context.Context) error {
		return s.rt.Sink.RecordDecision(ctx, record)
	})
	if onLike != nil {
		onLike(top)
	}
}
