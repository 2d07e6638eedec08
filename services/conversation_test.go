package services

import (
	"testing"
	"time"

	"pingly_server/models"
	"pingly_server/testfixtures"
)

func TestConversationAppendRejectsBlankBodies(t *testing.T) {
	env := newTestEnv(t)
	log := NewConversationStore(env.rt).Log("m1")

	for _, body := range []string{"", "   ", "\n\t "} {
		if _, ok := log.Append(body); ok {
			t.Fatalf("expected %q to be rejected", body)
		}
	}
	if log.Len() != 0 || len(env.sink.Messages()) != 0 {
		t.Fatal("rejected bodies must not touch the log")
	}

	msg, ok := log.Append("  hi there ")
	if !ok {
		t.Fatal("expected append to succeed")
	}
	if msg.Body != "  hi there " || msg.Sender != models.SenderSelf || msg.MatchID != "m1" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if !msg.CreatedAt.Equal(env.clock.Now()) {
		t.Fatalf("expected created-at %v, got %v", env.clock.Now(), msg.CreatedAt)
	}
}

func TestReplyDelayBounds(t *testing.T) {
	cases := []struct {
		draw int
		want time.Duration
	}{
		{0, 1000 * time.Millisecond},
		{1234, 2234 * time.Millisecond},
		{2000, 3000 * time.Millisecond},
		{9999, 3000 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := ReplyDelay(testfixtures.NewRand(tc.draw)); got != tc.want {
			t.Fatalf("ReplyDelay(draw %d) = %s, want %s", tc.draw, got, tc.want)
		}
	}
}

func TestConversationSimulatedReply(t *testing.T) {
	// first draw picks the delay, second draw picks the canned reply
	env := newTestEnv(t, 500, 2)
	log := NewConversationStore(env.rt).Log("m1")

	log.Append("hello")
	task := log.SimulateReply()
	if task == nil || log.PendingReplies() != 1 {
		t.Fatal("expected one pending reply")
	}
	if delays := env.sched.Delays(); delays[0] != 1500*time.Millisecond {
		t.Fatalf("unexpected reply delay %v", delays)
	}

	env.sched.Advance(time.Second)
	if log.Len() != 1 {
		t.Fatal("reply must not land before its delay")
	}
	env.sched.Advance(2 * time.Second)

	msgs := log.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[1].Sender != models.SenderCounterparty || msgs[1].Body != CannedReplies[2] {
		t.Fatalf("unexpected reply %+v", msgs[1])
	}
	if log.PendingReplies() != 0 {
		t.Fatal("expected no pending replies after firing")
	}
}

func TestConversationCloseCancelsReplies(t *testing.T) {
	env := newTestEnv(t)
	store := NewConversationStore(env.rt)
	log := store.Log("m1")

	log.Append("anyone there?")
	task := log.SimulateReply()
	store.Close()

	if task.Active() {
		t.Fatal("close must cancel pending replies")
	}
	env.sched.Advance(5 * time.Second)
	env.sched.RunAll()

	if log.Len() != 1 {
		t.Fatalf("expected no reply after close, got %d messages", log.Len())
	}
	if _, ok := log.Append("still here"); ok {
		t.Fatal("a closed log must reject appends")
	}
	if store.Log("m2").SimulateReply() != nil {
		t.Fatal("logs created after close must start closed")
	}
}

func TestConversationClosingViewCancelsReplies(t *testing.T) {
	env := newTestEnv(t)
	log := NewConversationStore(env.rt).Log("m1")
	log.SetOpen(true)
	log.Append("hi")
	log.SimulateReply()

	log.SetOpen(false)
	env.sched.Advance(5 * time.Second)

	if log.Len() != 1 {
		t.Fatalf("expected the reply to be cancelled, got %d messages", log.Len())
	}
	if _, ok := log.Append("back again"); !ok {
		t.Fatal("closing the view must not close the log")
	}
}

func TestConversationStoreReplyHook(t *testing.T) {
	env := newTestEnv(t)
	store := NewConversationStore(env.rt)

	var gotKey string
	var gotMsg models.Message
	store.OnReply(func(key string, msg models.Message) {
		gotKey, gotMsg = key, msg
	})

	store.Log("m7").SimulateReply()
	env.sched.Advance(3 * time.Second)

	if gotKey != "m7" || gotMsg.Sender != models.SenderCounterparty {
		t.Fatalf("unexpected hook call key=%q msg=%+v", gotKey, gotMsg)
	}
}

func TestConversationStoreSeedAndDrop(t *testing.T) {
	env := newTestEnv(t)
	store := NewConversationStore(env.rt)
	seed := []models.Message{{MatchID: "p1", MessageID: "g1", Sender: "Alex Chen", Body: "Welcome!"}}

	log := store.Seed("p1", seed)
	if log.Len() != 1 {
		t.Fatalf("expected seeded log, got %d messages", log.Len())
	}
	if store.Seed("p1", nil) != log {
		t.Fatal("seeding an existing key must return the same log")
	}
	msg, ok := log.AppendAs("Sarah Kim", "Hi all")
	if !ok || msg.Sender != "Sarah Kim" {
		t.Fatalf("unexpected named message %+v", msg)
	}

	store.Drop("p1")
	if _, ok := store.Lookup("p1"); ok {
		t.Fatal("expected dropped log to be gone")
	}
	if _, ok := log.Append("after drop"); ok {
		t.Fatal("dropped log must be closed")
	}
}
