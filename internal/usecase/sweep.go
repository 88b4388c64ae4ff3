package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

// SweepUseCase is one daily pass over stale leads.
type SweepUseCase struct {
	Selector *FollowUpSelector
	Outreach *OutreachUseCase
	Sender   entity.SenderConfig
	Log      zerolog.Logger
}

func NewSweepUseCase(selector *FollowUpSelector, outreach *OutreachUseCase, sender entity.SenderConfig, log zerolog.Logger) *SweepUseCase {
	return &SweepUseCase{Selector: selector, Outreach: outreach, Sender: sender, Log: log}
}

func (uc *SweepUseCase) Run(ctx context.Context) (SweepSummary, error) {
	start := time.Now()
	summary := SweepSummary{StartedAt: start.UTC()}

	leads, err := uc.Selector.StaleLeads(ctx)
	if err != nil {
		uc.Log.Error().Err(err).Msg("sweep could not load stale leads")
		return summary, err
	}
	summary.Candidates = len(leads)

	if len(leads) > 0 {
		res := uc.Outreach.SendToStored(ctx, leads, uc.Sender)
		summary.Sent = res.Sent
		summary.Failed = res.Failed
	}
	summary.Duration = time.Since(start)

	uc.Log.Info().
		Int("candidates", summary.Candidates).
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Dur("duration", summary.Duration).
		Msg("follow-up sweep finished")

	return summary, nil
}
