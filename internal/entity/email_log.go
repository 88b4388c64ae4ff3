package entity

import (
	"context"
	"time"
)

type EmailStatus string

const (
	EmailSent     EmailStatus = "sent"
	EmailFailed   EmailStatus = "failed"
	EmailFollowUp EmailStatus = "follow-up"
)

// EmailLog is one send attempt. Rows are append-only.
type EmailLog struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Address      string      `json:"address,omitempty"`
	Category     Category    `json:"category,omitempty"`
	Subject      string      `json:"subject"`
	Status       EmailStatus `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	SentAt       time.Time   `json:"sent_at"`
}

type EmailLogRepositoryInterface interface {
	Insert(ctx context.Context, entry *EmailLog) error
	ListRecent(ctx context.Context, limit int) ([]*EmailLog, error)
	Count(ctx context.Context) (int64, error)
	// EachNewestFirst streams the whole log ordered by sent_at descending.
	EachNewestFirst(ctx context.Context, fn func(*EmailLog) error) error
}
