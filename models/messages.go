package models

import "time"

// Sender designations. Group chats use the member's name instead.
const (
	SenderSelf         = "self"
	SenderCounterparty = "counterparty"
	SenderSystem       = "system"
)

// Message is one line in a match or project conversation.
type Message struct {
	MatchID   string    `dynamodbav:"matchId" json:"matchId"`     // Conversation key (match or project id)
	SortKey   string    `dynamodbav:"sortKey,omitempty" json:"-"` // Range key, see services.SortKey
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"` // Send time
	MessageID string    `dynamodbav:"messageId" json:"messageId"`
	Sender    string    `dynamodbav:"sender" json:"sender"`
	Body      string    `dynamodbav:"body" json:"body"`
}
