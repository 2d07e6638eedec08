package services

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"pingly_server/models"
)

// SessionOptions configures a SessionService.
type SessionOptions struct {
	Tokens       *TokenService
	EmailDomain  string        // required suffix of registration emails, e.g. ".edu"
	SettleDelay  time.Duration // button-exit settle delay for new dashboards
	PasswordCost int           // bcrypt cost, zero for the default
	Seed         func() Seed   // builds the data a new dashboard starts from
	Runtime      Runtime
}

// RegistrationInput is the sign-up form.
type RegistrationInput struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Program   string   `json:"program"`
	Age       int      `json:"age"`
	Bio       string   `json:"bio"`
	Interests []string `json:"interests"`
}

// Session is one client's place in the app: the login and registration
// screens, or a dashboard in one of the two modes.
type Session struct {
	ID        string
	State     models.AppState
	Mode      models.Mode
	User      *models.User
	Dashboard *Dashboard

	expiresAt time.Time // expiry of the latest token issued for the session
}

// SessionView is the serialisable state of a session.
type SessionView struct {
	SessionID string          `json:"sessionId"`
	State     models.AppState `json:"state"`
	Mode      models.Mode     `json:"mode"`
	User      *models.User    `json:"user,omitempty"`
	Token     string          `json:"token,omitempty"`
}

// SessionService owns accounts and sessions and drives the app state machine.
type SessionService struct {
	mu       sync.Mutex
	users    map[string]models.User // by lower-cased email
	sessions map[string]*Session
	opts     SessionOptions
	rt       Runtime
}

// NewSessionService creates a session service.
func NewSessionService(opts SessionOptions) *SessionService {
	if opts.SettleDelay == 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Seed == nil {
		opts.Seed = func() Seed { return Seed{} }
	}
	return &SessionService{
		users:    make(map[string]models.User),
		sessions: make(map[string]*Session),
		opts:     opts,
		rt:       opts.Runtime.withDefaults(),
	}
}

// Start opens an anonymous session on the login screen.
func (s *SessionService) Start() (SessionView, error) {
	sess := &Session{ID: s.rt.NewID(), State: models.StateLogin, Mode: models.ModeProfessional}
	s.mu.Lock()
	stale := s.pruneExpiredLocked()
	s.sessions[sess.ID] = sess
	view := viewOf(sess)
	s.mu.Unlock()
	s.closeDashboards(stale)
	return s.withToken(sess, view)
}

// BeginSignup moves a session from the login screen to registration.
func (s *SessionService) BeginSignup(token string) (SessionView, bool, error) {
	return s.transition(token, models.StateLogin, models.StateRegistration)
}

// CancelSignup returns from registration to the login screen.
func (s *SessionService) CancelSignup(token string) (SessionView, bool, error) {
	return s.transition(token, models.StateRegistration, models.StateLogin)
}

// Register validates the form, creates the account and enters the dashboard.
// An empty token starts a new session.
func (s *SessionService) Register(token string, input RegistrationInput) (SessionView, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	verr := &ValidationError{}
	if blank(input.Name) {
		verr.add("name", "name is required")
	}
	switch {
	case email == "":
		verr.add("email", "email is required")
	case !strings.Contains(email, "@"):
		verr.add("email", "email is invalid")
	case s.opts.EmailDomain != "" && !strings.HasSuffix(email, strings.ToLower(s.opts.EmailDomain)):
		verr.add("email", fmt.Sprintf("a campus email ending in %s is required", s.opts.EmailDomain))
	}
	switch {
	case len(input.Password) < MinPasswordLength:
		verr.add("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	case len(input.Password) > MaxPasswordLength:
		verr.add("password", fmt.Sprintf("password must be at most %d bytes", MaxPasswordLength))
	}
	if blank(input.Program) {
		verr.add("program", "program is required")
	}
	if input.Age < 0 {
		verr.add("age", "age must not be negative")
	}
	if err := verr.errOrNil(); err != nil {
		return SessionView{}, err
	}

	hash, err := hashPassword(input.Password, s.opts.PasswordCost)
	if err != nil {
		return SessionView{}, err
	}
	user := models.User{
		ID:           s.rt.NewID(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Program:      strings.TrimSpace(input.Program),
		Age:          input.Age,
		Bio:          strings.TrimSpace(input.Bio),
		Interests:    input.Interests,
		PasswordHash: hash,
	}

	s.mu.Lock()
	if _, taken := s.users[email]; taken {
		s.mu.Unlock()
		return SessionView{}, ErrEmailTaken
	}
	s.users[email] = user
	s.mu.Unlock()

	log.Printf("✅ Registered %s (%s)", user.Name, user.Email)
	return s.enterDashboard(token, user)
}

// Login checks credentials and enters the dashboard. An empty token starts a
// new session.
func (s *SessionService) Login(token, email, password string) (SessionView, error) {
	s.mu.Lock()
	user, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	s.mu.Unlock()
	if !ok {
		return SessionView{}, ErrInvalidCredentials
	}
	match, err := checkPassword(user.PasswordHash, password)
	if err != nil {
		return SessionView{}, err
	}
	if !match {
		return SessionView{}, ErrInvalidCredentials
	}
	return s.enterDashboard(token, user)
}

// SignOut ends the session behind token and tears its dashboard down. The
// client continues on a fresh login-screen session in professional mode.
func (s *SessionService) SignOut(token string) (SessionView, error) {
	sess, err := s.Resolve(token)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	ended := []*Session{sess}
	s.mu.Unlock()
	s.closeDashboards(ended)

	return s.Start()
}

// SetMode switches the dashboard between professional and social.
func (s *SessionService) SetMode(token string, mode models.Mode) (SessionView, error) {
	if !mode.Valid() {
		return SessionView{}, &ValidationError{FieldErrors: map[string]string{"mode": "mode must be professional or social"}}
	}
	sess, err := s.Resolve(token)
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.State != models.StateDashboard {
		return SessionView{}, ErrUnauthorized
	}
	sess.Mode = mode
	return viewOf(sess), nil
}

// View returns the current state of the session behind token.
func (s *SessionService) View(token string) (SessionView, error) {
	sess, err := s.Resolve(token)
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return viewOf(sess), nil
}

// Resolve validates token and returns its live session.
func (s *SessionService) Resolve(token string) (*Session, error) {
	claims, err := s.opts.Tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[claims.SessionID]
	if !ok {
		return nil, ErrUnauthorized
	}
	return sess, nil
}

// Dashboard returns the dashboard of a signed-in session.
func (s *SessionService) Dashboard(token string) (*Dashboard, error) {
	sess, err := s.Resolve(token)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.State != models.StateDashboard || sess.Dashboard == nil {
		return nil, ErrUnauthorized
	}
	return sess.Dashboard, nil
}

// Close tears down every live dashboard.
func (s *SessionService) Close() {
	s.mu.Lock()
	var dashboards []*Dashboard
	for _, sess := range s.sessions {
		if sess.Dashboard != nil {
			dashboards = append(dashboards, sess.Dashboard)
			sess.Dashboard = nil
		}
	}
	s.mu.Unlock()
	for _, d := range dashboards {
		d.Close()
		activeSessions.Dec()
	}
}

func (s *SessionService) transition(token string, from, to models.AppState) (SessionView, bool, error) {
	sess, err := s.Resolve(token)
	if err != nil {
		return SessionView{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.State != from {
		return viewOf(sess), false, nil
	}
	sess.State = to
	return viewOf(sess), true, nil
}

func (s *SessionService) enterDashboard(token string, user models.User) (SessionView, error) {
	var sess *Session
	if token != "" {
		resolved, err := s.Resolve(token)
		if err != nil {
			return SessionView{}, err
		}
		sess = resolved
	}

	dash := NewDashboard(user, s.opts.Seed(), s.rt)
	dash.Deck(models.ModeSocial).SetSettleDelay(s.opts.SettleDelay)
	dash.Deck(models.ModeProfessional).SetSettleDelay(s.opts.SettleDelay)

	s.mu.Lock()
	var stale []*Session
	if sess == nil {
		stale = s.pruneExpiredLocked()
		sess = &Session{ID: s.rt.NewID()}
		s.sessions[sess.ID] = sess
	}
	previous := sess.Dashboard
	wasIn := sess.State == models.StateDashboard
	u := user
	sess.State = models.StateDashboard
	sess.Mode = models.ModeProfessional
	sess.User = &u
	sess.Dashboard = dash
	view := viewOf(sess)
	s.mu.Unlock()

	s.closeDashboards(stale)
	if previous != nil {
		previous.Close()
	}
	if !wasIn {
		activeSessions.Inc()
	}
	return s.withToken(sess, view)
}

// Len returns the number of live sessions.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// PruneExpired removes sessions whose latest token has expired and returns
// how many were removed.
func (s *SessionService) PruneExpired() int {
	s.mu.Lock()
	stale := s.pruneExpiredLocked()
	s.mu.Unlock()
	s.closeDashboards(stale)
	return len(stale)
}

func (s *SessionService) pruneExpiredLocked() []*Session {
	var stale []*Session
	for id, sess := range s.sessions {
		if !sess.expiresAt.IsZero() && s.opts.Tokens.Expired(sess.expiresAt) {
			delete(s.sessions, id)
			stale = append(stale, sess)
		}
	}
	return stale
}

// closeDashboards tears down the dashboards of sessions already removed from
// the map. It must be called without s.mu held.
func (s *SessionService) closeDashboards(ended []*Session) {
	for _, sess := range ended {
		s.mu.Lock()
		dash := sess.Dashboard
		wasIn := sess.State == models.StateDashboard && dash != nil
		sess.State = models.StateLogin
		sess.User = nil
		sess.Dashboard = nil
		s.mu.Unlock()

		if dash != nil {
			dash.Close()
		}
		if wasIn {
			activeSessions.Dec()
		}
	}
}

func (s *SessionService) withToken(sess *Session, view SessionView) (SessionView, error) {
	userID := ""
	if view.User != nil {
		userID = view.User.ID
	}
	expiresAt := s.opts.Tokens.ExpiresAt()
	token, err := s.opts.Tokens.Issue(view.SessionID, userID)
	if err != nil {
		return SessionView{}, fmt.Errorf("failed to issue session token: %w", err)
	}
	s.mu.Lock()
	if sess.expiresAt.Before(expiresAt) {
		sess.expiresAt = expiresAt
	}
	s.mu.Unlock()
	view.Token = token
	return view, nil
}

func viewOf(sess *Session) SessionView {
	return SessionView{SessionID: sess.ID, State: sess.State, Mode: sess.Mode, User: sess.User}
}
