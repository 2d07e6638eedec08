package services

import (
	"sync"
	"testing"
	"time"

	"pingly_server/models"
)

func seedRequests(now time.Time) []models.Request {
	cands := testCandidates()
	return []models.Request{
		{ID: "r1", Candidate: cands[0], ReceivedAt: now.Add(-2 * time.Hour)},
		{ID: "r2", Candidate: cands[1], ReceivedAt: now.Add(-5 * time.Minute)},
		{ID: "r3", Candidate: cands[2], ReceivedAt: now.Add(-time.Hour)},
	}
}

func TestMatchLedgerAccept(t *testing.T) {
	env := newTestEnv(t)
	ledger := NewMatchLedger("me", seedRequests(env.clock.Now()), env.rt)
	before := ledger.ListPending()

	match, ok := ledger.Accept("r2")
	if !ok {
		t.Fatal("expected accept to succeed")
	}
	if match.Candidate.ID != "u3" || match.UnreadCount != 1 || match.Source != models.MatchSourceRequest {
		t.Fatalf("unexpected match %+v", match)
	}
	if match.LastMessage != "You matched with Alex Park! Say hi!" {
		t.Fatalf("unexpected celebration line %q", match.LastMessage)
	}
	if !match.CreatedAt.Equal(env.clock.Now()) {
		t.Fatalf("expected created-at %v, got %v", env.clock.Now(), match.CreatedAt)
	}

	pending := ledger.ListPending()
	if len(pending) != 2 || pending[0].ID != "r1" || pending[1].ID != "r3" {
		t.Fatalf("unexpected pending list %+v", pending)
	}
	if len(before) != 3 {
		t.Fatal("earlier snapshots must not change")
	}

	celebrating, ok := ledger.Celebration()
	if !ok || celebrating.MatchID != match.MatchID {
		t.Fatalf("expected celebration for %s, got %+v (%v)", match.MatchID, celebrating, ok)
	}
	ledger.DismissCelebration()
	if _, ok := ledger.Celebration(); ok {
		t.Fatal("expected celebration to be dismissed")
	}

	if _, ok := ledger.Accept("r2"); ok {
		t.Fatal("second accept of the same request must be a no-op")
	}
	if n := len(ledger.Matches()); n != 1 {
		t.Fatalf("expected one match, got %d", n)
	}
	if n := len(env.sink.matches); n != 1 {
		t.Fatalf("expected one recorded match, got %d", n)
	}
}

func TestMatchLedgerDeclineIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ledger := NewMatchLedger("me", seedRequests(env.clock.Now()), env.rt)

	if !ledger.Decline("r1") {
		t.Fatal("expected first decline to remove the request")
	}
	if ledger.Decline("r1") {
		t.Fatal("second decline must be a no-op")
	}
	if ledger.Decline("missing") {
		t.Fatal("declining an unknown request must be a no-op")
	}
	if n := len(ledger.ListPending()); n != 2 {
		t.Fatalf("expected 2 pending, got %d", n)
	}
	if n := len(ledger.Matches()); n != 0 {
		t.Fatalf("decline must not create matches, got %d", n)
	}
	if _, ok := ledger.Accept("r1"); ok {
		t.Fatal("accepting a declined request must be a no-op")
	}
}

func TestMatchLedgerConcurrentAccept(t *testing.T) {
	env := newTestEnv(t)
	ledger := NewMatchLedger("me", seedRequests(env.clock.Now()), env.rt)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := ledger.Accept("r3"); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one successful accept, got %d", wins)
	}
	if n := len(ledger.Matches()); n != 1 {
		t.Fatalf("expected one match, got %d", n)
	}
}

func TestSortByRecency(t *testing.T) {
	env := newTestEnv(t)
	reqs := seedRequests(env.clock.Now())
	sorted := SortByRecency(reqs)
	got := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID}
	want := []string{"r2", "r3", "r1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if reqs[0].ID != "r1" {
		t.Fatal("SortByRecency must not reorder its input")
	}
}

func TestMatchLedgerUnreadAndUnmatch(t *testing.T) {
	env := newTestEnv(t)
	ledger := NewMatchLedger("me", nil, env.rt)
	match := ledger.MatchFromSwipe(testCandidates()[0])
	if match.Source != models.MatchSourceSwipe {
		t.Fatalf("expected swipe source, got %q", match.Source)
	}

	if m, _ := ledger.RecordIncoming(match.MatchID, "hey!"); m.UnreadCount != 2 || m.LastMessage != "hey!" {
		t.Fatalf("unexpected match after incoming message %+v", m)
	}
	if m, _ := ledger.OpenConversation(match.MatchID); m.UnreadCount != 0 {
		t.Fatalf("expected unread reset, got %d", m.UnreadCount)
	}
	if ids := ledger.MatchedUserIDs(); len(ids) != 1 || ids[0] != "u1" {
		t.Fatalf("unexpected matched ids %v", ids)
	}

	if _, ok := ledger.Unmatch(match.MatchID); !ok {
		t.Fatal("expected unmatch to succeed")
	}
	if _, ok := ledger.Unmatch(match.MatchID); ok {
		t.Fatal("second unmatch must be a no-op")
	}
	if _, ok := ledger.RecordIncoming(match.MatchID, "late"); ok {
		t.Fatal("messages for a removed match must be ignored")
	}
	if n := len(env.sink.unmatches); n != 1 {
		t.Fatalf("expected one recorded unmatch, got %d", n)
	}
}
