package models

import "time"

// Member is a participant shown with avatar initials.
type Member struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Project is a professional-mode project with a group chat.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Owner          string    `json:"owner"`
	Members        []Member  `json:"members"`
	UnreadMessages int       `json:"unreadMessages"`
	DatePosted     time.Time `json:"datePosted"`
}

// ProjectIdea is a pitch other users can send wishes to.
type ProjectIdea struct {
	ID     string   `json:"id"`
	Author Member   `json:"author"`
	Idea   string   `json:"idea"`
	Skills []string `json:"skills"`
	Wishes int      `json:"wishes"`
}

// Reply is an answer under a question.
type Reply struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// Question is a Q&A post with useful votes.
type Question struct {
	ID       string  `json:"id"`
	Author   Member  `json:"author"`
	Question string  `json:"question"`
	Useful   int     `json:"useful"`
	Replies  []Reply `json:"replies"`
}

// DiscussionMessage is one entry in a discussion thread.
type DiscussionMessage struct {
	User     string    `json:"user"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"postedAt"`
}

// Discussion is a ranked discussion thread.
type Discussion struct {
	Rank     int                 `json:"rank"`
	Title    string              `json:"title"`
	Author   string              `json:"author"`
	Replies  int                 `json:"replies"`
	Messages []DiscussionMessage `json:"messages"`
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	XP    int    `json:"xp"`
	Badge string `json:"badge"`
}

// Notification is a header notification for one dashboard mode.
type Notification struct {
	ID        string    `json:"id"`
	Mode      Mode      `json:"mode"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}
