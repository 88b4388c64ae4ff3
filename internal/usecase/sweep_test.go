package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-outreach/internal/entity"
	"github.com/xavierca1/lead-outreach/internal/infra/mail"
)

func TestSweepRun(t *testing.T) {
	ctx := context.Background()

	t.Run("sends to every stale lead and stamps the delivered ones", func(t *testing.T) {
		f := newOutreachFixture(t)
		stale := []*entity.Lead{
			{ID: "l1", Email: "1@x.com", Category: entity.CategoryTaxDelinquent},
			{ID: "l2", Email: "2@x.com"},
		}
		f.leads.On("FindStale", mock.Anything, fixedNow.Add(-StaleWindow)).Return(stale, nil).Once()
		f.transport.On("Send", mock.Anything, mock.Anything).Return(&mail.DeliveryReceipt{}, nil).Twice()
		f.leads.On("MarkContacted", mock.Anything, "l1", fixedNow).Return(nil).Once()
		f.leads.On("MarkContacted", mock.Anything, "l2", fixedNow).Return(nil).Once()

		sweep := NewSweepUseCase(f.uc.Selector, f.uc, entity.SenderConfig{}, zerolog.Nop())
		summary, err := sweep.Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Candidates)
		assert.Equal(t, 2, summary.Sent)
		assert.Equal(t, 0, summary.Failed)
		assert.Len(t, f.logs.all(), 2)
		assert.Len(t, f.pauses, 1)
		f.leads.AssertExpectations(t)
	})

	t.Run("no stale leads sends nothing", func(t *testing.T) {
		f := newOutreachFixture(t)
		f.leads.On("FindStale", mock.Anything, mock.AnythingOfType("time.Time")).Return([]*entity.Lead{}, nil).Once()

		summary, err := NewSweepUseCase(f.uc.Selector, f.uc, entity.SenderConfig{}, zerolog.Nop()).Run(ctx)

		require.NoError(t, err)
		assert.Zero(t, summary.Candidates)
		f.transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("selector failure aborts the run", func(t *testing.T) {
		f := newOutreachFixture(t)
		f.leads.On("FindStale", mock.Anything, mock.AnythingOfType("time.Time")).Return(nil, errors.New("db down")).Once()

		_, err := NewSweepUseCase(f.uc.Selector, f.uc, entity.SenderConfig{}, zerolog.Nop()).Run(ctx)

		assert.EqualError(t, err, "db down")
		f.transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("duration is measured", func(t *testing.T) {
		f := newOutreachFixture(t)
		f.leads.On("FindStale", mock.Anything, mock.AnythingOfType("time.Time")).Return(nil, nil).Once()

		summary, err := NewSweepUseCase(f.uc.Selector, f.uc, entity.SenderConfig{}, zerolog.Nop()).Run(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, summary.Duration, time.Duration(0))
		assert.False(t, summary.StartedAt.IsZero())
	})
}
