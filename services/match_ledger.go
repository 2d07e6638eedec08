package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pingly_server/models"
)

// MatchedRelation supplies the ids of users the current user has matched with.
type MatchedRelation interface {
	MatchedUserIDs() []string
}

// MatchLedger holds pending requests and confirmed matches. Every mutation
// swaps in a new slice, so a snapshot handed out earlier never changes.
type MatchLedger struct {
	mu          sync.Mutex
	owner       string
	pending     []models.Request
	matches     []models.Match
	celebrating string
	rt          Runtime
}

// NewMatchLedger creates a ledger seeded with incoming requests.
func NewMatchLedger(owner string, requests []models.Request, rt Runtime) *MatchLedger {
	pending := make([]models.Request, len(requests))
	copy(pending, requests)
	return &MatchLedger{owner: owner, pending: pending, rt: rt.withDefaults()}
}

// CelebrationMessage is the system line that opens a new match's conversation.
func CelebrationMessage(name string) string {
	return fmt.Sprintf("You matched with %s! Say hi!", name)
}

// ListPending returns pending requests in insertion order.
func (l *MatchLedger) ListPending() []models.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Request, len(l.pending))
	copy(out, l.pending)
	return out
}

// SortByRecency returns a copy of requests ordered most recent first.
func SortByRecency(requests []models.Request) []models.Request {
	out := make([]models.Request, len(requests))
	copy(out, requests)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReceivedAt.After(out[j].ReceivedAt)
	})
	return out
}

// Receive adds an incoming request created by the counterparty.
func (l *MatchLedger) Receive(candidate models.Candidate) models.Request {
	req := models.Request{ID: l.rt.NewID(), Candidate: candidate, ReceivedAt: l.rt.Now()}
	l.mu.Lock()
	next := make([]models.Request, 0, len(l.pending)+1)
	next = append(next, l.pending...)
	l.pending = append(next, req)
	l.mu.Unlock()
	return req
}

// Accept turns a pending request into a match and starts the celebration. It
// returns false without side effects when the request is no longer pending.
func (l *MatchLedger) Accept(requestID string) (models.Match, bool) {
	l.mu.Lock()
	idx := l.pendingIndex(requestID)
	if idx < 0 {
		l.mu.Unlock()
		return models.Match{}, false
	}
	req := l.pending[idx]
	l.pending = without(l.pending, idx)
	match := l.newMatchLocked(req.Candidate, models.MatchSourceRequest)
	l.celebrating = match.MatchID
	l.mu.Unlock()

	l.afterMatch(match)
	return match, true
}

// Decline removes a pending request without creating a match. Declining an
// unknown or already-resolved request is a no-op.
func (l *MatchLedger) Decline(requestID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.pendingIndex(requestID)
	if idx < 0 {
		return false
	}
	l.pending = without(l.pending, idx)
	return true
}

// MatchFromSwipe creates a match straight from a swipe-right.
func (l *MatchLedger) MatchFromSwipe(candidate models.Candidate) models.Match {
	l.mu.Lock()
	match := l.newMatchLocked(candidate, models.MatchSourceSwipe)
	l.mu.Unlock()

	l.afterMatch(match)
	return match
}

// Matches returns a snapshot of confirmed matches, oldest first.
func (l *MatchLedger) Matches() []models.Match {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Match, len(l.matches))
	copy(out, l.matches)
	return out
}

// Match looks up a match by id.
func (l *MatchLedger) Match(matchID string) (models.Match, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx := l.matchIndex(matchID); idx >= 0 {
		return l.matches[idx], true
	}
	return models.Match{}, false
}

// OpenConversation resets the unread counter of a match.
func (l *MatchLedger) OpenConversation(matchID string) (models.Match, bool) {
	return l.update(matchID, func(m *models.Match) {
		m.UnreadCount = 0
	})
}

// RecordIncoming bumps the unread counter and preview for a message that
// arrived while the conversation was closed.
func (l *MatchLedger) RecordIncoming(matchID, preview string) (models.Match, bool) {
	return l.update(matchID, func(m *models.Match) {
		m.UnreadCount++
		m.LastMessage = preview
	})
}

// SetPreview updates the last-message preview without touching the counter.
func (l *MatchLedger) SetPreview(matchID, preview string) (models.Match, bool) {
	return l.update(matchID, func(m *models.Match) {
		m.LastMessage = preview
	})
}

// Unmatch removes a match.
func (l *MatchLedger) Unmatch(matchID string) (models.Match, bool) {
	l.mu.Lock()
	idx := l.matchIndex(matchID)
	if idx < 0 {
		l.mu.Unlock()
		return models.Match{}, false
	}
	removed := l.matches[idx]
	next := make([]models.Match, 0, len(l.matches)-1)
	next = append(next, l.matches[:idx]...)
	l.matches = append(next, l.matches[idx+1:]...)
	if l.celebrating == matchID {
		l.celebrating = ""
	}
	l.mu.Unlock()

	emit("unmatch", func(ctx context.Context) error {
		return l.rt.Sink.RecordUnmatch(ctx, removed)
	})
	return removed, true
}

// Celebration returns the match whose celebration is showing, if any.
func (l *MatchLedger) Celebration() (models.Match, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.celebrating == "" {
		return models.Match{}, false
	}
	if idx := l.matchIndex(l.celebrating); idx >= 0 {
		return l.matches[idx], true
	}
	return models.Match{}, false
}

// DismissCelebration clears the celebration state.
func (l *MatchLedger) DismissCelebration() {
	l.mu.Lock()
	l.celebrating = ""
	l.mu.Unlock()
}

// MatchedUserIDs implements MatchedRelation.
func (l *MatchLedger) MatchedUserIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.matches))
	for _, m := range l.matches {
		ids = append(ids, m.Candidate.ID)
	}
	return ids
}

func (l *MatchLedger) newMatchLocked(candidate models.Candidate, source string) models.Match {
	id := l.rt.NewID()
	for l.matchIndex(id) >= 0 {
		id = l.rt.NewID()
	}
	match := models.Match{
		MatchID:     id,
		Owner:       l.owner,
		Candidate:   candidate,
		Source:      source,
		CreatedAt:   l.rt.Now(),
		UnreadCount: 1,
		LastMessage: CelebrationMessage(candidate.Name),
	}
	next := make([]models.Match, 0, len(l.matches)+1)
	next = append(next, l.matches...)
	l.matches = append(next, match)
	return match
}

func (l *MatchLedger) afterMatch(match models.Match) {
	matchesCreated.WithLabelValues(match.Source).Inc()
	emit("match", func(ctx context.Context) error {
		return l.rt.Sink.RecordMatch(ctx, match)
	})
}

func (l *MatchLedger) update(matchID string, fn func(m *models.Match)) (models.Match, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.matchIndex(matchID)
	if idx < 0 {
		return models.Match{}, false
	}
	next := make([]models.Match, len(l.matches))
	copy(next, l.matches)
	fn(&next[idx])
	l.matches = next
	return next[idx], true
}

func (l *MatchLedger) pendingIndex(id string) int {
	for i, r := range l.pending {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (l *MatchLedger) matchIndex(id string) int {
	for i, m := range l.matches {
		if m.MatchID == id {
			return i
		}
	}
	return -1
}

func without(reqs []models.Request, idx int) []models.Request {
	next := make([]models.Request, 0, len(reqs)-1)
	next = append(next, reqs[:idx]...)
	return append(next, reqs[idx+1:]...)
}
