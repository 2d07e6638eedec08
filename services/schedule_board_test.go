package services

import (
	"errors"
	"testing"
	"time"

	"pingly_server/models"
)

type staticRelation []string

func (s staticRelation) MatchedUserIDs() []string { return s }

func TestDurationFor(t *testing.T) {
	cases := map[string]time.Duration{
		models.Duration30Min:   30 * time.Minute,
		models.Duration1Hour:   time.Hour,
		models.Duration2Hours:  2 * time.Hour,
		models.Duration3Hours:  3 * time.Hour,
		models.DurationHalfDay: 12 * time.Hour,
		models.DurationFullDay: 24 * time.Hour,
		models.DurationWeekend: 24 * time.Hour,
		"forever":              time.Hour,
	}
	for category, want := range cases {
		if got := DurationFor(category); got != want {
			t.Fatalf("DurationFor(%q) = %s, want %s", category, got, want)
		}
	}
}

func TestScheduleBoardCreateValidates(t *testing.T) {
	env := newTestEnv(t)
	board := NewScheduleBoard(models.ScheduleAuthor{ID: "me", Name: "Jordan Lee"}, nil, env.rt)

	_, err := board.Create(ScheduleInput{Description: "no activity"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.FieldErrors["activity"]; !ok {
		t.Fatalf("expected activity field error, got %v", verr.FieldErrors)
	}
	if _, ok := verr.FieldErrors["duration"]; !ok {
		t.Fatalf("expected duration field error, got %v", verr.FieldErrors)
	}
	if len(board.All()) != 0 {
		t.Fatal("invalid entries must not be stored")
	}
}

func TestScheduleBoardVisibilityAndExpiry(t *testing.T) {
	env := newTestEnv(t)
	now := env.clock.Now()
	seed := []models.ScheduleEntry{
		{ID: "s1", Author: models.ScheduleAuthor{ID: "u1"}, Activity: "Study Session", CreatedAt: now, ExpiresAt: now.Add(2 * time.Hour)},
		{ID: "s2", Author: models.ScheduleAuthor{ID: "u2"}, Activity: "Coffee Break", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	}
	board := NewScheduleBoard(models.ScheduleAuthor{ID: "me", Name: "Jordan Lee"}, seed, env.rt)

	mine, err := board.Create(ScheduleInput{Activity: "Gym", Duration: models.Duration30Min, Location: "Rec Center"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !mine.ExpiresAt.Equal(now.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", mine.ExpiresAt)
	}
	if all := board.All(); all[0].ID != mine.ID {
		t.Fatal("new entries must be prepended")
	}

	visible := board.Visible(staticRelation{"u1"})
	if len(visible) != 2 || visible[0].ID != mine.ID || visible[1].ID != "s1" {
		t.Fatalf("expected own entry and matched u1's entry, got %+v", visible)
	}
	if got := board.Visible(nil); len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("without matches only own entries are visible, got %+v", got)
	}

	env.clock.Advance(30 * time.Minute)
	visible = board.Visible(staticRelation{"u1", "u2"})
	if len(visible) != 2 || visible[0].ID != "s1" || visible[1].ID != "s2" {
		t.Fatalf("expected own entry to expire at its boundary, got %+v", visible)
	}

	env.clock.Advance(time.Hour)
	if removed := board.PruneExpired(); removed != 2 {
		t.Fatalf("expected 2 expired entries pruned, got %d", removed)
	}
	if all := board.All(); len(all) != 1 || all[0].ID != "s1" {
		t.Fatalf("unexpected entries after prune %+v", all)
	}
}
