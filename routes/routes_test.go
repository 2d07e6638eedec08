package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"pingly_server/fixtures"
	"pingly_server/models"
	"pingly_server/services"
	"pingly_server/testfixtures"
)

type testServer struct {
	t        *testing.T
	router   *mux.Router
	sched    *testfixtures.Scheduler
	sessions *services.SessionService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	clock := testfixtures.NewClock(time.Time{})
	sched := testfixtures.NewScheduler()
	sessions := services.NewSessionService(services.SessionOptions{
		Tokens:       services.NewTokenService("test-secret", time.Hour, clock.Now),
		EmailDomain:  ".edu",
		PasswordCost: bcrypt.MinCost,
		Seed:         func() services.Seed { return fixtures.Seed(clock.Now()) },
		Runtime: services.Runtime{
			Now:       clock.Now,
			NewID:     testfixtures.NewIDGenerator("id").Next,
			Scheduler: sched,
			Rand:      testfixtures.NewRand(),
		},
	})
	t.Cleanup(sessions.Close)

	r := mux.NewRouter()
	RegisterRoutes(r)
	RegisterSessionRoutes(r, sessions)
	RegisterDeckRoutes(r, sessions)
	RegisterMatchRoutes(r, sessions, clock.Now)
	RegisterSocialRoutes(r, sessions, clock.Now)
	RegisterProfessionalRoutes(r, sessions)
	return &testServer{t: t, router: r, sched: sched, sessions: sessions}
}

// do sends a JSON request and decodes the JSON response into out when non-nil.
func (s *testServer) do(method, path, token string, body interface{}, out interface{}) int {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			s.t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func (s *testServer) register(t *testing.T) string {
	t.Helper()
	var view services.SessionView
	code := s.do("POST", "/api/session/register", "", services.RegistrationInput{
		Name:     "Jordan Lee",
		Email:    "jordan@campus.edu",
		Password: "supersecret",
		Program:  "Computer Science",
		Age:      21,
	}, &view)
	if code != http.StatusCreated || view.Token == "" {
		t.Fatalf("register returned %d %+v", code, view)
	}
	return view.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	var body map[string]string
	if code := s.do("GET", "/health", "", nil, &body); code != http.StatusOK || body["status"] != "healthy" {
		t.Fatalf("unexpected health response %d %v", code, body)
	}
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t)

	var start services.SessionView
	if code := s.do("POST", "/api/session/start", "", nil, &start); code != http.StatusCreated {
		t.Fatalf("start returned %d", code)
	}
	var change struct {
		Changed bool                 `json:"changed"`
		Session services.SessionView `json:"session"`
	}
	s.do("POST", "/api/session/signup", start.Token, nil, &change)
	if !change.Changed || change.Session.State != "registration" {
		t.Fatalf("unexpected signup response %+v", change)
	}

	var errBody map[string]interface{}
	code := s.do("POST", "/api/session/register", start.Token, services.RegistrationInput{Name: "Jordan"}, &errBody)
	if code != http.StatusBadRequest || errBody["fields"] == nil {
		t.Fatalf("expected field errors, got %d %v", code, errBody)
	}

	token := s.register(t)
	if code := s.do("POST", "/api/session/register", "", services.RegistrationInput{
		Name: "Jordan Lee", Email: "jordan@campus.edu", Password: "supersecret", Program: "CS",
	}, nil); code != http.StatusConflict {
		t.Fatalf("expected 409 for a taken email, got %d", code)
	}

	var view services.SessionView
	if code := s.do("PUT", "/api/session/mode", token, map[string]string{"mode": "social"}, &view); code != http.StatusOK || view.Mode != "social" {
		t.Fatalf("unexpected mode response %d %+v", code, view)
	}
	if code := s.do("POST", "/api/session/signout", token, nil, &view); code != http.StatusOK || view.State != "login" {
		t.Fatalf("unexpected signout response %d %+v", code, view)
	}
	if code := s.do("GET", "/api/deck", token, nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after sign out, got %d", code)
	}
	loginToken := view.Token
	if code := s.do("POST", "/api/session/login", loginToken, map[string]string{"email": "jordan@campus.edu", "password": "nope"}, nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", code)
	}
	if code := s.do("POST", "/api/session/login", loginToken, map[string]string{"email": "jordan@campus.edu", "password": "supersecret"}, &view); code != http.StatusOK || view.State != "dashboard" {
		t.Fatalf("unexpected login response %d %+v", code, view)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/deck", "/api/requests", "/api/matches", "/api/schedule", "/api/notifications", "/api/projects"} {
		if code := s.do("GET", path, "", nil, nil); code != http.StatusUnauthorized {
			t.Fatalf("GET %s without a token returned %d", path, code)
		}
	}
}

func TestDeckAndMatchFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t)

	var deck struct {
		Cards []map[string]interface{} `json:"cards"`
		Empty bool                     `json:"empty"`
	}
	s.do("GET", "/api/deck?mode=professional", token, nil, &deck)
	if len(deck.Cards) != 3 || deck.Empty {
		t.Fatalf("expected three professional cards, got %+v", deck)
	}
	if code := s.do("GET", "/api/deck?mode=party", token, nil, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown mode, got %d", code)
	}

	var release struct {
		Changed  bool   `json:"changed"`
		Decision string `json:"decision"`
	}
	s.do("POST", "/api/deck/release?mode=professional", token, map[string]float64{"offset": 150}, &release)
	if !release.Changed || release.Decision != "like" {
		t.Fatalf("unexpected release %+v", release)
	}

	if code := s.do("POST", "/api/deck/trigger?mode=social", token, map[string]string{"decision": "pass"}, nil); code != http.StatusAccepted {
		t.Fatalf("expected 202 for a trigger, got %d", code)
	}
	s.sched.Advance(300 * time.Millisecond)
	s.do("GET", "/api/deck?mode=social", token, nil, &deck)
	if len(deck.Cards) != 4 {
		t.Fatalf("expected the settled pass to remove a card, got %d", len(deck.Cards))
	}

	var accepted struct {
		Changed bool `json:"changed"`
		Match   struct {
			MatchID     string `json:"matchId"`
			UnreadCount int    `json:"unreadCount"`
		} `json:"match"`
	}
	s.do("POST", "/api/requests/r1/accept", token, nil, &accepted)
	if !accepted.Changed || accepted.Match.UnreadCount != 1 {
		t.Fatalf("unexpected accept response %+v", accepted)
	}
	matchID := accepted.Match.MatchID
	s.do("POST", "/api/requests/r1/accept", token, nil, &accepted)
	if accepted.Changed {
		t.Fatal("accepting twice must report no change")
	}

	var matches []map[string]interface{}
	s.do("GET", "/api/matches", token, nil, &matches)
	if len(matches) != 2 {
		t.Fatalf("expected the swipe match and the request match, got %d", len(matches))
	}

	chat := "/api/chat/" + matchID
	var sent struct {
		Changed bool `json:"changed"`
	}
	s.do("POST", chat+"/messages", token, map[string]string{"body": "hey!"}, &sent)
	if !sent.Changed {
		t.Fatal("expected the message to be sent")
	}
	s.sched.Advance(3 * time.Second)

	var messages []map[string]interface{}
	s.do("GET", chat+"/messages", token, nil, &messages)
	if len(messages) != 3 || messages[2]["sender"] != "counterparty" {
		t.Fatalf("expected celebration, message and reply, got %+v", messages)
	}
	if code := s.do("GET", "/api/chat/missing/messages", token, nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown match, got %d", code)
	}

	var notes struct {
		Unread int `json:"unread"`
	}
	s.do("GET", "/api/notifications?mode=social", token, nil, &notes)
	if notes.Unread != 4 {
		t.Fatalf("expected seeded plus match and message notifications unread, got %d", notes.Unread)
	}
}

func TestScheduleRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t)

	var entries []map[string]interface{}
	s.do("GET", "/api/schedule", token, nil, &entries)
	if len(entries) != 0 {
		t.Fatalf("expected no visible entries before matching, got %d", len(entries))
	}

	if code := s.do("POST", "/api/schedule", token, map[string]string{"activity": ""}, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing activity, got %d", code)
	}
	if code := s.do("POST", "/api/schedule", token, map[string]string{"activity": "Gym", "duration": "1 hour"}, nil); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	s.do("POST", "/api/requests/r1/accept", token, nil, nil)
	s.do("GET", "/api/schedule", token, nil, &entries)
	if len(entries) != 2 || entries[0]["timeAgo"] != "just now" {
		t.Fatalf("expected own and Emma's entries, got %+v", entries)
	}
}

type fakeHistory struct {
	owner string
	limit int32
}

func (f *fakeHistory) LoadMatch(_ context.Context, owner, matchID string) (models.Match, error) {
	if owner != f.owner || matchID != "m1" {
		return models.Match{}, services.ErrNotFound
	}
	return models.Match{MatchID: matchID, Owner: owner}, nil
}

func (f *fakeHistory) DecisionHistory(_ context.Context, owner string, limit int32) ([]models.SwipeDecision, error) {
	f.limit = limit
	return []models.SwipeDecision{{Owner: owner, CandidateID: "u1", Decision: models.DecisionLike}}, nil
}

func (f *fakeHistory) ConversationHistory(_ context.Context, matchID string, _ int32) ([]models.Message, error) {
	return []models.Message{{MatchID: matchID, Sender: models.SenderSelf, Body: "hi"}}, nil
}

func TestHistoryRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t)
	dash, err := s.sessions.Dashboard(token)
	if err != nil {
		t.Fatalf("Dashboard returned error: %v", err)
	}
	store := &fakeHistory{owner: dash.User().ID}
	RegisterHistoryRoutes(s.router, s.sessions, store)

	var decisions []models.SwipeDecision
	if code := s.do("GET", "/api/history/decisions?limit=5", token, nil, &decisions); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(decisions) != 1 || decisions[0].Owner != dash.User().ID || store.limit != 5 {
		t.Fatalf("unexpected decisions %+v (limit %d)", decisions, store.limit)
	}
	if code := s.do("GET", "/api/history/decisions?limit=-1", token, nil, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a negative limit, got %d", code)
	}

	var messages []models.Message
	if code := s.do("GET", "/api/history/chat/m1", token, nil, &messages); code != http.StatusOK || len(messages) != 1 {
		t.Fatalf("unexpected conversation %d %+v", code, messages)
	}
	if code := s.do("GET", "/api/history/chat/m9", token, nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's match, got %d", code)
	}
}

func TestProfessionalRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t)

	var wish struct {
		Changed bool               `json:"changed"`
		Idea    models.ProjectIdea `json:"idea"`
	}
	s.do("POST", "/api/ideas/idea-1/wish", token, nil, &wish)
	if !wish.Changed || wish.Idea.Wishes != 25 {
		t.Fatalf("unexpected wish response %+v", wish)
	}
	s.do("POST", "/api/ideas/idea-1/wish", token, nil, &wish)
	if wish.Changed || wish.Idea.Wishes != 25 {
		t.Fatalf("a second wish must not count, got %+v", wish)
	}
	if code := s.do("POST", "/api/ideas/missing/wish", token, nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}

	var chat services.ProjectChat
	if code := s.do("POST", "/api/projects/project-1/open", token, nil, &chat); code != http.StatusOK || len(chat.Messages) != 4 {
		t.Fatalf("unexpected project chat %d %+v", code, chat)
	}
	var posted struct {
		Changed bool           `json:"changed"`
		Message models.Message `json:"message"`
	}
	s.do("POST", "/api/projects/project-1/messages", token, map[string]string{"text": "Count me in"}, &posted)
	if !posted.Changed || posted.Message.Sender != "Jordan Lee" {
		t.Fatalf("unexpected project message %+v", posted)
	}

	var thread models.Discussion
	if code := s.do("GET", "/api/discussions/2", token, nil, &thread); code != http.StatusOK || thread.Rank != 2 {
		t.Fatalf("unexpected discussion %d %+v", code, thread)
	}
	if code := s.do("GET", "/api/discussions/9", token, nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown rank, got %d", code)
	}

	var board []models.LeaderboardEntry
	s.do("GET", "/api/leaderboard", token, nil, &board)
	if len(board) != 6 || board[0].Rank != 1 || board[0].Name != "Sarah Mitchell" {
		t.Fatalf("unexpected leaderboard %+v", board)
	}
}
