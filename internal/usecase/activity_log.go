package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

// ActivityLogWriter appends one email_logs row per send attempt. It is
// best-effort: a failed write is logged and never reaches the caller.
type ActivityLogWriter struct {
	Repo entity.EmailLogRepositoryInterface
	Log  zerolog.Logger
}

func NewActivityLogWriter(repo entity.EmailLogRepositoryInterface, log zerolog.Logger) *ActivityLogWriter {
	return &ActivityLogWriter{Repo: repo, Log: log}
}

func (w *ActivityLogWriter) Record(ctx context.Context, lead *entity.Lead, subject string, status entity.EmailStatus, errMsg string, at time.Time) {
	entry := &entity.EmailLog{
		Email:        lead.Email,
		Name:         lead.DisplayName(),
		Address:      lead.Address,
		Category:     lead.Category,
		Subject:      subject,
		Status:       status,
		ErrorMessage: errMsg,
		SentAt:       at,
	}

	if err := w.Repo.Insert(ctx, entry); err != nil {
		w.Log.Error().Err(err).
			Str("email", lead.Email).
			Str("status", string(status)).
			Msg("failed to record email log")
	}
}
