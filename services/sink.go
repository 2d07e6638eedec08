package services

import (
	"context"
	"errors"
	"log"

	"pingly_server/models"
)

// EventSink receives the terminal events of the interaction core: decisions,
// matches and messages. Implementations forward them to storage or clients.
type EventSink interface {
	RecordDecision(ctx context.Context, decision models.SwipeDecision) error
	RecordMatch(ctx context.Context, match models.Match) error
	RecordUnmatch(ctx context.Context, match models.Match) error
	RecordMessage(ctx context.Context, msg models.Message) error
}

// LogSink writes every event to the standard logger and nothing else.
type LogSink struct{}

func (LogSink) RecordDecision(_ context.Context, d models.SwipeDecision) error {
	log.Printf("👉 %s %s candidate %s (%s)", d.Owner, d.Decision, d.CandidateID, d.Mode)
	return nil
}

func (LogSink) RecordMatch(_ context.Context, m models.Match) error {
	log.Printf("💘 %s matched with %s (match %s, via %s)", m.Owner, m.Candidate.Name, m.MatchID, m.Source)
	return nil
}

func (LogSink) RecordUnmatch(_ context.Context, m models.Match) error {
	log.Printf("💔 %s unmatched %s (match %s)", m.Owner, m.Candidate.Name, m.MatchID)
	return nil
}

func (LogSink) RecordMessage(_ context.Context, msg models.Message) error {
	log.Printf("📩 [%s] %s: %q", msg.MatchID, msg.Sender, msg.Body)
	return nil
}

// MultiSink fans each event out to every sink and joins their errors.
type MultiSink []EventSink

func (m MultiSink) RecordDecision(ctx context.Context, d models.SwipeDecision) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.RecordDecision(ctx, d))
	}
	return errors.Join(errs...)
}

func (m MultiSink) RecordMatch(ctx context.Context, match models.Match) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.RecordMatch(ctx, match))
	}
	return errors.Join(errs...)
}

func (m MultiSink) RecordUnmatch(ctx context.Context, match models.Match) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.RecordUnmatch(ctx, match))
	}
	return errors.Join(errs...)
}

func (m MultiSink) RecordMessage(ctx context.Context, msg models.Message) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.RecordMessage(ctx, msg))
	}
	return errors.Join(errs...)
}

// emit forwards an event and logs a failure. Sink errors never roll back
// in-memory state.
func emit(what string, fn func(ctx context.Context) error) {
	if err := fn(context.Background()); err != nil {
		log.Printf("❌ Failed to record %s: %v", what, err)
	}
}
