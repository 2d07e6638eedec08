package services

import (
	"sort"
	"strings"
	"sync"

	"pingly_server/models"
)

// IdeaInput is a new project idea pitch.
type IdeaInput struct {
	Idea   string   `json:"idea"`
	Skills []string `json:"skills"`
}

// IdeaBoard holds project ideas. Wishes increment optimistically, once per user,
// with no rollback path.
type IdeaBoard struct {
	mu     sync.Mutex
	ideas  []models.ProjectIdea
	wished map[string]map[string]bool
	author models.Member
	rt     Runtime
}

// NewIdeaBoard creates a board for the given author identity.
func NewIdeaBoard(author models.Member, seed []models.ProjectIdea, rt Runtime) *IdeaBoard {
	ideas := make([]models.ProjectIdea, len(seed))
	copy(ideas, seed)
	return &IdeaBoard{ideas: ideas, wished: make(map[string]map[string]bool), author: author, rt: rt.withDefaults()}
}

// List returns the ideas, newest first.
func (b *IdeaBoard) List() []models.ProjectIdea {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.ProjectIdea, len(b.ideas))
	copy(out, b.ideas)
	return out
}

// Post validates and prepends a new idea.
func (b *IdeaBoard) Post(input IdeaInput) (models.ProjectIdea, error) {
	verr := &ValidationError{}
	if blank(input.Idea) {
		verr.add("idea", "idea is required")
	}
	skills := make([]string, 0, len(input.Skills))
	for _, s := range input.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	if len(skills) == 0 {
		verr.add("skills", "at least one skill is required")
	}
	if err := verr.errOrNil(); err != nil {
		return models.ProjectIdea{}, err
	}

	idea := models.ProjectIdea{ID: b.rt.NewID(), Author: b.author, Idea: strings.TrimSpace(input.Idea), Skills: skills}
	b.mu.Lock()
	next := make([]models.ProjectIdea, 0, len(b.ideas)+1)
	next = append(next, idea)
	b.ideas = append(next, b.ideas...)
	b.mu.Unlock()
	return idea, nil
}

// Wish adds userID's wish to an idea. Repeated wishes are no-ops.
func (b *IdeaBoard) Wish(ideaID, userID string) (models.ProjectIdea, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := -1
	for i, idea := range b.ideas {
		if idea.ID == ideaID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.ProjectIdea{}, false, ErrNotFound
	}
	if b.wished[ideaID][userID] {
		return b.ideas[idx], false, nil
	}
	if b.wished[ideaID] == nil {
		b.wished[ideaID] = make(map[string]bool)
	}
	b.wished[ideaID][userID] = true
	next := make([]models.ProjectIdea, len(b.ideas))
	copy(next, b.ideas)
	next[idx].Wishes++
	b.ideas = next
	return next[idx], true, nil
}

// QuestionBoard is the professional Q&A feed.
type QuestionBoard struct {
	mu        sync.Mutex
	questions []models.Question
	voted     map[string]map[string]bool
	author    models.Member
	rt        Runtime
}

// NewQuestionBoard creates a board for the given author identity.
func NewQuestionBoard(author models.Member, seed []models.Question, rt Runtime) *QuestionBoard {
	questions := make([]models.Question, len(seed))
	copy(questions, seed)
	return &QuestionBoard{questions: questions, voted: make(map[string]map[string]bool), author: author, rt: rt.withDefaults()}
}

// List returns the questions, newest first.
func (b *QuestionBoard) List() []models.Question {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Ask prepends a new question.
func (b *QuestionBoard) Ask(text string) (models.Question, error) {
	if blank(text) {
		return models.Question{}, &ValidationError{FieldErrors: map[string]string{"question": "question is required"}}
	}
	q := models.Question{ID: b.rt.NewID(), Author: b.author, Question: strings.TrimSpace(text), Replies: []models.Reply{}}
	b.mu.Lock()
	next := make([]models.Question, 0, len(b.questions)+1)
	next = append(next, q)
	b.questions = append(next, b.questions...)
	b.mu.Unlock()
	return q, nil
}

// MarkUseful records userID's useful vote. Repeated votes are no-ops.
func (b *QuestionBoard) MarkUseful(questionID, userID string) (models.Question, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.index(questionID)
	if idx < 0 {
		return models.Question{}, false, ErrNotFound
	}
	if b.voted[questionID][userID] {
		return b.questions[idx], false, nil
	}
	if b.voted[questionID] == nil {
		b.voted[questionID] = make(map[string]bool)
	}
	b.voted[questionID][userID] = true
	next := b.cloneLocked()
	next[idx].Useful++
	b.questions = next
	return next[idx], true, nil
}

// Reply appends an answer from the current user. Blank replies are rejected.
func (b *QuestionBoard) Reply(questionID, text string) (models.Question, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.index(questionID)
	if idx < 0 {
		return models.Question{}, false, ErrNotFound
	}
	if blank(text) {
		return b.questions[idx], false, nil
	}
	next := b.cloneLocked()
	replies := make([]models.Reply, 0, len(next[idx].Replies)+1)
	replies = append(replies, next[idx].Replies...)
	next[idx].Replies = append(replies, models.Reply{User: b.author.Name, Text: strings.TrimSpace(text)})
	b.questions = next
	return next[idx], true, nil
}

func (b *QuestionBoard) cloneLocked() []models.Question {
	next := make([]models.Question, len(b.questions))
	copy(next, b.questions)
	return next
}

func (b *QuestionBoard) index(id string) int {
	for i, q := range b.questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// DiscussionBoard holds ranked discussion threads.
type DiscussionBoard struct {
	mu      sync.Mutex
	threads []models.Discussion
	member  string
	rt      Runtime
}

// NewDiscussionBoard creates a board; threads are kept sorted by rank.
func NewDiscussionBoard(member string, seed []models.Discussion, rt Runtime) *DiscussionBoard {
	threads := make([]models.Discussion, len(seed))
	copy(threads, seed)
	sort.SliceStable(threads, func(i, j int) bool { return threads[i].Rank < threads[j].Rank })
	return &DiscussionBoard{threads: threads, member: member, rt: rt.withDefaults()}
}

// List returns the threads by rank.
func (b *DiscussionBoard) List() []models.Discussion {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Discussion, len(b.threads))
	copy(out, b.threads)
	return out
}

// Thread returns one discussion by rank.
func (b *DiscussionBoard) Thread(rank int) (models.Discussion, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range b.threads {
		if d.Rank == rank {
			return d, true
		}
	}
	return models.Discussion{}, false
}

// Post appends a message to a thread and bumps its reply count.
func (b *DiscussionBoard) Post(rank int, text string) (models.Discussion, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := -1
	for i, d := range b.threads {
		if d.Rank == rank {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Discussion{}, false, ErrNotFound
	}
	if blank(text) {
		return b.threads[idx], false, nil
	}
	next := make([]models.Discussion, len(b.threads))
	copy(next, b.threads)
	msgs := make([]models.DiscussionMessage, 0, len(next[idx].Messages)+1)
	msgs = append(msgs, next[idx].Messages...)
	next[idx].Messages = append(msgs, models.DiscussionMessage{User: b.member, Text: strings.TrimSpace(text), PostedAt: b.rt.Now()})
	next[idx].Replies++
	b.threads = next
	return next[idx], true, nil
}

// Leaderboard ranks users by XP.
type Leaderboard struct {
	entries []models.LeaderboardEntry
}

// NewLeaderboard sorts entries by XP descending and assigns ranks from 1.
func NewLeaderboard(entries []models.LeaderboardEntry) *Leaderboard {
	ranked := make([]models.LeaderboardEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].XP > ranked[j].XP })
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return &Leaderboard{entries: ranked}
}

// Entries returns the ranked rows.
func (l *Leaderboard) Entries() []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// ByRank returns the row at rank.
func (l *Leaderboard) ByRank(rank int) (models.LeaderboardEntry, bool) {
	if rank < 1 || rank > len(l.entries) {
		return models.LeaderboardEntry{}, false
	}
	return l.entries[rank-1], true
}
