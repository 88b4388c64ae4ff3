package usecase

import (
	"time"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

type SendEmailInput struct {
	entity.SenderConfig
}

type BulkSendInput struct {
	Leads []entity.Lead `json:"leads" validate:"required,min=1"`
	entity.SenderConfig
}

type SendResult struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Error   string `json:"error,omitempty"`
}

type BulkResult struct {
	Success bool         `json:"success"`
	Total   int          `json:"total"`
	Sent    int          `json:"sent"`
	Failed  int          `json:"failed"`
	Skipped int          `json:"skipped,omitempty"`
	Results []SendResult `json:"results"`
}

// UnconvertedContact is someone emailed at least once who has no lead row.
// The embedded entry is the most recent one for that address.
type UnconvertedContact struct {
	entity.EmailLog
	EmailCount int `json:"email_count"`
}

type SweepSummary struct {
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Candidates int           `json:"candidates"`
	Sent       int           `json:"sent"`
	Failed     int           `json:"failed"`
}
