package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter for committed swipe decisions
	swipeDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pingly_swipe_decisions_total",
			Help: "Total number of committed like/pass decisions",
		},
		[]string{"decision", "mode"},
	)

	// Counter for created matches
	matchesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pingly_matches_created_total",
			Help: "Total number of matches created",
		},
		[]string{"source"}, // source: request/swipe
	)

	// Counter for appended conversation messages
	messagesAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pingly_messages_appended_total",
			Help: "Total number of messages appended to conversation logs",
		},
		[]string{"sender"},
	)

	// Counter for delayed work cancelled before it ran
	tasksCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pingly_scheduled_tasks_cancelled_total",
			Help: "Total number of delayed tasks cancelled before running",
		},
	)

	// Gauge for sessions with a live dashboard
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pingly_active_sessions_current",
			Help: "Current number of signed-in sessions",
		},
	)
)

// senderLabel keeps the metric cardinality bounded for named group senders.
func senderLabel(sender string) string {
	switch sender {
	case "self", "counterparty", "system":
		return sender
	default:
		return "member"
	}
}
