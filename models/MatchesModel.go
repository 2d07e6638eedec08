package models

import "time"

// Match is a mutually confirmed connection.
type Match struct {
	MatchID     string    `dynamodbav:"matchId" json:"matchId"`                             // Unique matchId
	Owner       string    `dynamodbav:"owner" json:"-"`                                     // User the ledger belongs to
	Candidate   Candidate `dynamodbav:"candidate" json:"candidate"`                         // Matched profile
	Source      string    `dynamodbav:"source" json:"source"`                               // "request" or "swipe"
	CreatedAt   time.Time `dynamodbav:"createdAt" json:"createdAt"`                         // Timestamp of creation
	UnreadCount int       `dynamodbav:"unreadCount" json:"unreadCount"`                     // Messages not yet seen
	LastMessage string    `dynamodbav:"lastMessage,omitempty" json:"lastMessage,omitempty"` // Preview line
}

// SwipeDecision is the persisted record of a like or pass.
type SwipeDecision struct {
	Owner       string    `dynamodbav:"owner" json:"owner"`             // Partition key
	SortKey     string    `dynamodbav:"sortKey,omitempty" json:"-"`     // Range key, see services.SortKey
	DecidedAt   time.Time `dynamodbav:"decidedAt" json:"decidedAt"`     // Decision time
	CandidateID string    `dynamodbav:"candidateId" json:"candidateId"` // Candidate swiped on
	Decision    Decision  `dynamodbav:"decision" json:"decision"`       // "like" or "pass"
	Mode        Mode      `dynamodbav:"mode" json:"mode"`               // Dashboard the swipe happened on
}
