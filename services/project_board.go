package services

import (
	"sync"

	"pingly_server/models"
)

// ProjectChat pairs a project with its group chat history.
type ProjectChat struct {
	Project  models.Project   `json:"project"`
	Messages []models.Message `json:"messages"`
}

// ProjectBoard lists professional projects and routes their group chats
// through a ConversationStore keyed by project id.
type ProjectBoard struct {
	mu       sync.Mutex
	projects []models.Project
	chats    *ConversationStore
	seeds    map[string][]models.Message
	member   string
}

// NewProjectBoard creates a board. member is the name the current user posts under.
func NewProjectBoard(member string, projects []models.Project, seeds map[string][]models.Message, chats *ConversationStore) *ProjectBoard {
	list := make([]models.Project, len(projects))
	copy(list, projects)
	return &ProjectBoard{projects: list, chats: chats, seeds: seeds, member: member}
}

// List returns the projects in posting order.
func (b *ProjectBoard) List() []models.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Project, len(b.projects))
	copy(out, b.projects)
	return out
}

// Open resets the project's unread counter and returns its chat.
func (b *ProjectBoard) Open(projectID string) (ProjectChat, bool) {
	b.mu.Lock()
	idx := b.index(projectID)
	if idx < 0 {
		b.mu.Unlock()
		return ProjectChat{}, false
	}
	next := make([]models.Project, len(b.projects))
	copy(next, b.projects)
	next[idx].UnreadMessages = 0
	b.projects = next
	project := next[idx]
	b.mu.Unlock()

	chat := b.chat(projectID)
	chat.SetOpen(true)
	return ProjectChat{Project: project, Messages: chat.Messages()}, true
}

// Close marks the project's chat view closed.
func (b *ProjectBoard) Close(projectID string) {
	if chat, ok := b.chats.Lookup(projectID); ok {
		chat.SetOpen(false)
	}
}

// Post appends a message from the current user to a project chat.
func (b *ProjectBoard) Post(projectID, body string) (models.Message, bool, error) {
	b.mu.Lock()
	found := b.index(projectID) >= 0
	b.mu.Unlock()
	if !found {
		return models.Message{}, false, ErrNotFound
	}
	msg, ok := b.chat(projectID).AppendAs(b.member, body)
	return msg, ok, nil
}

func (b *ProjectBoard) chat(projectID string) *ConversationLog {
	return b.chats.Seed(projectID, b.seeds[projectID])
}

func (b *ProjectBoard) index(id string) int {
	for i, p := range b.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}
