package models

import (
	"time"

	"github.com/google/uuid"
)

// Query thread statuses.
const (
	QueryStatusOpen     = "open"
	QueryStatusResolved = "resolved"
)

// Query message sender roles.
const (
	SenderStudent = "student"
	SenderSupport = "support"
)

// QueryMessage is one message in a support thread.
type QueryMessage struct {
	ID      uuid.UUID `json:"id"`
	Sender  string    `json:"sender"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
}

// QueryThread is a support-ticket-like conversation between a student and
// the academy support team. Messages are ordered oldest first.
type QueryThread struct {
	ID        uuid.UUID      `json:"id"`
	StudentID string         `json:"studentId"`
	Subject   string         `json:"subject"`
	Status    string         `json:"status"`
	Messages  []QueryMessage `json:"messages"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
