package models

import "time"

// Request is an incoming connection request from another candidate.
type Request struct {
	ID         string    `json:"id"`
	Candidate  Candidate `json:"candidate"`
	ReceivedAt time.Time `json:"receivedAt"`
}
