package services

import (
	"strings"
	"sync"
	"time"

	"pingly_server/models"
)

// ScheduleInput is the schedule form submission.
type ScheduleInput struct {
	Activity    string `json:"activity"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// DurationFor converts a duration category into a length of time. Unknown
// categories count as one hour.
func DurationFor(category string) time.Duration {
	switch category {
	case models.Duration30Min:
		return 30 * time.Minute
	case models.Duration1Hour:
		return time.Hour
	case models.Duration2Hours:
		return 2 * time.Hour
	case models.Duration3Hours:
		return 3 * time.Hour
	case models.DurationHalfDay:
		return 12 * time.Hour
	case models.DurationFullDay, models.DurationWeekend:
		return 24 * time.Hour
	default:
		return time.Hour
	}
}

// ScheduleBoard is the social activity feed. Entries are visible to their
// author and to users the author's viewer has matched with.
type ScheduleBoard struct {
	mu      sync.Mutex
	author  models.ScheduleAuthor
	entries []models.ScheduleEntry
	rt      Runtime
}

// NewScheduleBoard creates a board owned by author, seeded newest first.
func NewScheduleBoard(author models.ScheduleAuthor, seed []models.ScheduleEntry, rt Runtime) *ScheduleBoard {
	entries := make([]models.ScheduleEntry, len(seed))
	copy(entries, seed)
	return &ScheduleBoard{author: author, entries: entries, rt: rt.withDefaults()}
}

// Create validates the form and prepends a new entry authored by the board owner.
func (b *ScheduleBoard) Create(input ScheduleInput) (models.ScheduleEntry, error) {
	verr := &ValidationError{}
	if blank(input.Activity) {
		verr.add("activity", "activity is required")
	}
	if blank(input.Duration) {
		verr.add("duration", "duration is required")
	}
	if err := verr.errOrNil(); err != nil {
		return models.ScheduleEntry{}, err
	}

	now := b.rt.Now()
	entry := models.ScheduleEntry{
		ID:          b.rt.NewID(),
		Author:      b.author,
		Activity:    strings.TrimSpace(input.Activity),
		Duration:    input.Duration,
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		CreatedAt:   now,
		ExpiresAt:   now.Add(DurationFor(input.Duration)),
	}

	b.mu.Lock()
	next := make([]models.ScheduleEntry, 0, len(b.entries)+1)
	next = append(next, entry)
	b.entries = append(next, b.entries...)
	b.mu.Unlock()
	return entry, nil
}

// All returns every stored entry, expired or not.
func (b *ScheduleBoard) All() []models.ScheduleEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.ScheduleEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Visible returns the unexpired entries authored by the owner or by a matched user.
func (b *ScheduleBoard) Visible(relation MatchedRelation) []models.ScheduleEntry {
	matched := make(map[string]struct{})
	if relation != nil {
		for _, id := range relation.MatchedUserIDs() {
			matched[id] = struct{}{}
		}
	}
	now := b.rt.Now()

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.ScheduleEntry, 0, len(b.entries))
	for _, e := range b.entries {
		if e.Expired(now) {
			continue
		}
		if _, ok := matched[e.Author.ID]; ok || e.Author.ID == b.author.ID {
			out = append(out, e)
		}
	}
	return out
}

// PruneExpired drops expired entries and returns how many were removed.
func (b *ScheduleBoard) PruneExpired() int {
	now := b.rt.Now()
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := make([]models.ScheduleEntry, 0, len(b.entries))
	for _, e := range b.entries {
		if !e.Expired(now) {
			kept = append(kept, e)
		}
	}
	removed := len(b.entries) - len(kept)
	b.entries = kept
	return removed
}
