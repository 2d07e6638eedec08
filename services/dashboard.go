package services

import (
	"context"
	"fmt"

	"pingly_server/models"
)

// Seed is the initial data snapshot a dashboard is built from.
type Seed struct {
	Candidates    []models.Candidate
	Collaborators []models.Candidate
	Requests      []models.Request
	Schedules     []models.ScheduleEntry
	Projects      []models.Project
	ProjectChats  map[string][]models.Message
	Ideas         []models.ProjectIdea
	Questions     []models.Question
	Discussions   []models.Discussion
	Leaderboard   []models.LeaderboardEntry
	Notifications []models.Notification
}

// Dashboard is the per-session container. It owns every collection and routes
// effects between them: a like or an accepted request creates a match, the
// match opens a conversation, and counterparty messages feed unread counters
// and notifications.
type Dashboard struct {
	user          models.User
	social        *CardStack
	professional  *CardStack
	ledger        *MatchLedger
	conversations *ConversationStore
	schedule      *ScheduleBoard
	projects      *ProjectBoard
	projectChats  *ConversationStore
	ideas         *IdeaBoard
	questions     *QuestionBoard
	discussions   *DiscussionBoard
	leaderboard   *Leaderboard
	notifications *NotificationCenter
}

// NewDashboard builds the dashboard for user from seed.
func NewDashboard(user models.User, seed Seed, rt Runtime) *Dashboard {
	rt = rt.withDefaults()
	member := models.Member{Name: user.Name, Avatar: models.Initials(user.Name)}
	projectRT := rt
	projectRT.Sink = projectChatSink{EventSink: rt.Sink, owner: user.ID}

	d := &Dashboard{
		user:          user,
		social:        NewCardStack(user.ID, models.ModeSocial, seed.Candidates, rt),
		professional:  NewCardStack(user.ID, models.ModeProfessional, seed.Collaborators, rt),
		ledger:        NewMatchLedger(user.ID, seed.Requests, rt),
		conversations: NewConversationStore(rt),
		projectChats:  NewConversationStore(projectRT),
		schedule: NewScheduleBoard(models.ScheduleAuthor{
			ID:     user.ID,
			Name:   user.Name,
			Avatar: member.Avatar,
		}, seed.Schedules, rt),
		ideas:         NewIdeaBoard(member, seed.Ideas, rt),
		questions:     NewQuestionBoard(member, seed.Questions, rt),
		discussions:   NewDiscussionBoard(user.Name, seed.Discussions, rt),
		leaderboard:   NewLeaderboard(seed.Leaderboard),
		notifications: NewNotificationCenter(seed.Notifications, rt),
	}
	d.projects = NewProjectBoard(user.Name, seed.Projects, seed.ProjectChats, d.projectChats)

	d.professional.OnLike(func(c models.Candidate) {
		d.matched(d.ledger.MatchFromSwipe(c))
	})
	d.conversations.OnReply(d.counterpartyMessage)
	return d
}

// User returns the signed-in user.
func (d *Dashboard) User() models.User { return d.user }

// Deck returns the card stack for mode.
func (d *Dashboard) Deck(mode models.Mode) *CardStack {
	if mode == models.ModeProfessional {
		return d.professional
	}
	return d.social
}

func (d *Dashboard) Ledger() *MatchLedger               { return d.ledger }
func (d *Dashboard) Conversations() *ConversationStore  { return d.conversations }
func (d *Dashboard) Schedule() *ScheduleBoard           { return d.schedule }
func (d *Dashboard) Projects() *ProjectBoard            { return d.projects }
func (d *Dashboard) Ideas() *IdeaBoard                  { return d.ideas }
func (d *Dashboard) Questions() *QuestionBoard          { return d.questions }
func (d *Dashboard) Discussions() *DiscussionBoard      { return d.discussions }
func (d *Dashboard) Leaderboard() *Leaderboard          { return d.leaderboard }
func (d *Dashboard) Notifications() *NotificationCenter { return d.notifications }

// AcceptRequest accepts a pending request. The new match's conversation opens
// with the celebration line.
func (d *Dashboard) AcceptRequest(requestID string) (models.Match, bool) {
	match, ok := d.ledger.Accept(requestID)
	if !ok {
		return models.Match{}, false
	}
	d.matched(match)
	return match, true
}

// DeclineRequest declines a pending request.
func (d *Dashboard) DeclineRequest(requestID string) bool {
	return d.ledger.Decline(requestID)
}

// VisibleSchedules drops expired entries and returns the ones the user may see.
func (d *Dashboard) VisibleSchedules() []models.ScheduleEntry {
	d.schedule.PruneExpired()
	return d.schedule.Visible(d.ledger)
}

// OpenConversation marks a match's conversation as being viewed, clears its
// unread counter and returns its messages.
func (d *Dashboard) OpenConversation(matchID string) (models.Match, []models.Message, error) {
	match, ok := d.ledger.OpenConversation(matchID)
	if !ok {
		return models.Match{}, nil, ErrNotFound
	}
	log := d.conversations.Log(matchID)
	log.SetOpen(true)
	return match, log.Messages(), nil
}

// CloseConversation ends the view of a conversation. Pending simulated replies
// are cancelled.
func (d *Dashboard) CloseConversation(matchID string) {
	if log, ok := d.conversations.Lookup(matchID); ok {
		log.SetOpen(false)
	}
}

// Messages returns a match's conversation without changing its unread state.
func (d *Dashboard) Messages(matchID string) ([]models.Message, error) {
	if _, ok := d.ledger.Match(matchID); !ok {
		return nil, ErrNotFound
	}
	return d.conversations.Log(matchID).Messages(), nil
}

// SendMessage appends the user's message and schedules the simulated reply.
// A blank body returns ok=false and changes nothing.
func (d *Dashboard) SendMessage(matchID, body string) (models.Message, bool, error) {
	if _, ok := d.ledger.Match(matchID); !ok {
		return models.Message{}, false, ErrNotFound
	}
	log := d.conversations.Log(matchID)
	msg, ok := log.Append(body)
	if !ok {
		return models.Message{}, false, nil
	}
	d.ledger.SetPreview(matchID, msg.Body)
	log.SimulateReply()
	return msg, true, nil
}

// ReceiveMessage appends a message from the match's counterparty.
func (d *Dashboard) ReceiveMessage(matchID, body string) (models.Message, bool, error) {
	if _, ok := d.ledger.Match(matchID); !ok {
		return models.Message{}, false, ErrNotFound
	}
	msg, ok := d.conversations.Log(matchID).Receive(models.SenderCounterparty, body)
	if !ok {
		return models.Message{}, false, nil
	}
	d.counterpartyMessage(matchID, msg)
	return msg, true, nil
}

// Unmatch removes a match and disposes of its conversation.
func (d *Dashboard) Unmatch(matchID string) bool {
	if _, ok := d.ledger.Unmatch(matchID); !ok {
		return false
	}
	d.conversations.Drop(matchID)
	return true
}

// Close tears the dashboard down; every pending timer becomes a no-op.
func (d *Dashboard) Close() {
	d.social.Close()
	d.professional.Close()
	d.conversations.Close()
	d.projectChats.Close()
}

func (d *Dashboard) matched(match models.Match) {
	log := d.conversations.Log(match.MatchID)
	log.AppendAs(models.SenderSystem, CelebrationMessage(match.Candidate.Name))

	mode := models.ModeSocial
	if match.Source == models.MatchSourceSwipe {
		mode = models.ModeProfessional
	}
	d.notifications.Push(mode, models.NotificationMatch, fmt.Sprintf("You matched with %s!", match.Candidate.Name))
}

func (d *Dashboard) counterpartyMessage(matchID string, msg models.Message) {
	log, ok := d.conversations.Lookup(matchID)
	if ok && log.IsOpen() {
		d.ledger.SetPreview(matchID, msg.Body)
		return
	}
	match, found := d.ledger.RecordIncoming(matchID, msg.Body)
	if !found {
		return
	}
	d.notifications.Push(models.ModeSocial, models.NotificationMessage, fmt.Sprintf("New message from %s", match.Candidate.Name))
}

// ProjectChatKey is the conversation key a member's project chat messages are
// recorded under. Project ids are shared by every member, so the key carries
// the member's user id.
func ProjectChatKey(owner, projectID string) string {
	return "project:" + owner + ":" + projectID
}

// projectChatSink records project chat messages under ProjectChatKey.
type projectChatSink struct {
	EventSink
	owner string
}

func (s projectChatSink) RecordMessage(ctx context.Context, msg models.Message) error {
	msg.MatchID = ProjectChatKey(s.owner, msg.MatchID)
	return s.EventSink.RecordMessage(ctx, msg)
}
