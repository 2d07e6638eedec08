package models

import "time"

// Duration categories offered by the schedule form.
const (
	Duration30Min   = "30 min"
	Duration1Hour   = "1 hour"
	Duration2Hours  = "2 hours"
	Duration3Hours  = "3 hours"
	DurationHalfDay = "Half day"
	DurationFullDay = "Full day"
	DurationWeekend = "Weekend"
)

// ScheduleAuthor identifies who posted a schedule entry.
type ScheduleAuthor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ScheduleEntry is an activity broadcast visible to the author and their matches.
type ScheduleEntry struct {
	ID          string         `json:"id"`
	Author      ScheduleAuthor `json:"author"`
	Activity    string         `json:"activity"`
	Duration    string         `json:"duration"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	ExpiresAt   time.Time      `json:"expiresAt"`
}

// Expired reports whether the entry's expiry has passed at now.
func (s ScheduleEntry) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
