package models

// Decision is the outcome of a swipe on a candidate card.
type Decision string

const (
	DecisionNone Decision = ""
	DecisionLike Decision = "like"
	DecisionPass Decision = "pass"
)

// Valid reports whether d is a committable decision.
func (d Decision) Valid() bool {
	return d == DecisionLike || d == DecisionPass
}

// Mode is the dashboard flavour the user is looking at.
type Mode string

const (
	ModeProfessional Mode = "professional"
	ModeSocial       Mode = "social"
)

// Valid reports whether m names a known dashboard mode.
func (m Mode) Valid() bool {
	return m == ModeProfessional || m == ModeSocial
}

// AppState is the top-level view of a session.
type AppState string

const (
	StateLogin        AppState = "login"
	StateRegistration AppState = "registration"
	StateDashboard    AppState = "dashboard"
)

// Match sources
const (
	MatchSourceRequest = "request"
	MatchSourceSwipe   = "swipe"
)

// Notification types
const (
	NotificationMatch    = "match"
	NotificationMessage  = "message"
	NotificationProject  = "project"
	NotificationJoin     = "join"
	NotificationWish     = "wish"
	NotificationAnswer   = "answer"
	NotificationSchedule = "schedule"
)

// DynamoDB table names
const (
	SwipeDecisionsTable = "SwipeDecisions"
	MatchesTable        = "Matches"
	MessagesTable       = "Messages"
)
