package socket

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pingly_server/models"
	"pingly_server/services"
	"pingly_server/testfixtures"
)

type fakeConn struct {
	rooms  []string
	events []string
}

func (c *fakeConn) ID() string       { return "conn-1" }
func (c *fakeConn) Join(room string) { c.rooms = append(c.rooms, room) }
func (c *fakeConn) Emit(eventName string, _ ...interface{}) {
	c.events = append(c.events, eventName)
}

type broadcast struct {
	room, event string
	payload     interface{}
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []broadcast
}

func (b *fakeBroadcaster) BroadcastToRoom(_, room, event string, args ...interface{}) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	var payload interface{}
	if len(args) > 0 {
		payload = args[0]
	}
	b.sent = append(b.sent, broadcast{room: room, event: event, payload: payload})
	return true
}

func (b *fakeBroadcaster) events() []broadcast {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]broadcast(nil), b.sent...)
}

func newTestHub(t *testing.T) (*Hub, *fakeBroadcaster, string) {
	t.Helper()
	out := &fakeBroadcaster{}
	hub := &Hub{out: out}
	clock := testfixtures.NewClock(time.Time{})
	sessions := services.NewSessionService(services.SessionOptions{
		Tokens:       services.NewTokenService("test-secret", time.Hour, clock.Now),
		PasswordCost: bcrypt.MinCost,
		Seed: func() services.Seed {
			return services.Seed{Requests: []models.Request{
				{ID: "r1", Candidate: models.Candidate{ID: "u1", Name: "Emma Wilson"}, ReceivedAt: clock.Now()},
			}}
		},
		Runtime: services.Runtime{
			Now:       clock.Now,
			Scheduler: testfixtures.NewScheduler(),
			Rand:      testfixtures.NewRand(),
			Sink:      hub,
		},
	})
	t.Cleanup(sessions.Close)
	hub.Attach(sessions)

	view, err := sessions.Register("", services.RegistrationInput{
		Name: "Jordan Lee", Email: "jordan@campus.edu", Password: "supersecret", Program: "CS",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return hub, out, view.Token
}

func TestHubAuthenticateJoinsUserRoom(t *testing.T) {
	hub, _, token := newTestHub(t)

	c := &fakeConn{}
	hub.authenticate(c, map[string]string{"token": token})
	if len(c.rooms) != 1 || c.rooms[0][:5] != "user:" {
		t.Fatalf("expected the user room to be joined, got %v", c.rooms)
	}

	bad := &fakeConn{}
	hub.authenticate(bad, map[string]string{"token": "nope"})
	if len(bad.rooms) != 0 || len(bad.events) != 1 || bad.events[0] != "error" {
		t.Fatalf("expected an error event, got rooms=%v events=%v", bad.rooms, bad.events)
	}
}

func TestHubJoinAndSendMessage(t *testing.T) {
	hub, out, token := newTestHub(t)
	dash, err := hub.sessions.Dashboard(token)
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	match, _ := dash.AcceptRequest("r1")

	c := &fakeConn{}
	hub.join(c, map[string]string{"token": token})
	if len(c.events) != 1 {
		t.Fatal("expected an error for a missing matchId")
	}
	hub.join(c, map[string]string{"token": token, "matchId": "missing"})
	if len(c.rooms) != 0 {
		t.Fatal("unknown matches must not be joined")
	}
	hub.join(c, map[string]string{"token": token, "matchId": match.MatchID})
	if len(c.rooms) != 1 || c.rooms[0] != match.MatchID {
		t.Fatalf("expected to join %s, got %v", match.MatchID, c.rooms)
	}

	hub.sendMessage(c, map[string]string{"token": token, "matchId": match.MatchID, "body": "hi Emma"})
	var relayed []broadcast
	for _, b := range out.events() {
		if b.event == "newMessage" {
			relayed = append(relayed, b)
		}
	}
	// celebration line, then the sent message
	if len(relayed) != 2 || relayed[1].room != match.MatchID {
		t.Fatalf("expected the message relayed to the match room, got %+v", relayed)
	}
	if msg := relayed[1].payload.(models.Message); msg.Body != "hi Emma" || msg.Sender != models.SenderSelf {
		t.Fatalf("unexpected relayed message %+v", msg)
	}

	before, errorsBefore := len(out.events()), len(c.events)
	hub.sendMessage(c, map[string]string{"token": token, "matchId": match.MatchID, "body": "   "})
	if len(out.events()) != before {
		t.Fatal("a blank message must not be relayed")
	}
	if len(c.events) != errorsBefore+1 || c.events[len(c.events)-1] != "error" {
		t.Fatalf("expected an error event for a blank body, got %v", c.events)
	}
}

func TestHubRelaysMatchEvents(t *testing.T) {
	out := &fakeBroadcaster{}
	hub := &Hub{out: out}
	match := models.Match{MatchID: "m1", Owner: "me"}

	hub.RecordMatch(context.Background(), match)
	hub.RecordUnmatch(context.Background(), match)
	hub.RecordDecision(context.Background(), models.SwipeDecision{Owner: "me"})

	sent := out.events()
	if len(sent) != 2 {
		t.Fatalf("expected two broadcasts, got %+v", sent)
	}
	if sent[0].room != "user:me" || sent[0].event != "matched" || sent[1].event != "unmatched" {
		t.Fatalf("unexpected broadcasts %+v", sent)
	}
}
