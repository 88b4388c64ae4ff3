package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/xavierca1/lead-outreach/internal/infra/lock"
	"github.com/xavierca1/lead-outreach/internal/infra/metrics"
	"github.com/xavierca1/lead-outreach/internal/usecase"
)

type SweepRunner interface {
	Run(ctx context.Context) (usecase.SweepSummary, error)
}

// FollowUpSweepWorker fires the daily sweep. At most one sweep runs at a time
// in this process, and at most one across replicas when a Locker is set.
type FollowUpSweepWorker struct {
	runner   SweepRunner
	locker   lock.Locker
	schedule string
	cron     *cron.Cron
	entry    cron.EntryID
	running  atomic.Bool
	stopped  chan struct{}
	log      zerolog.Logger
}

// NewFollowUpSweepWorker parses schedule (standard 5-field cron) in the given
// IANA time zone. locker may be nil.
func NewFollowUpSweepWorker(runner SweepRunner, locker lock.Locker, schedule, timezone string, log zerolog.Logger) (*FollowUpSweepWorker, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load sweep timezone %q: %w", timezone, err)
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", schedule, err)
	}
	return &FollowUpSweepWorker{
		runner:   runner,
		locker:   locker,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(loc)),
		stopped:  make(chan struct{}),
		log:      log,
	}, nil
}

// Start registers the job and returns immediately. When ctx ends no new sweep
// fires; one already in flight runs to completion and Done closes after it.
func (w *FollowUpSweepWorker) Start(ctx context.Context) error {
	id, err := w.cron.AddFunc(w.schedule, func() { w.RunOnce(ctx) })
	if err != nil {
		return err
	}
	w.entry = id
	w.cron.Start()

	w.log.Info().
		Str("schedule", w.schedule).
		Time("next_run", w.cron.Entry(id).Next).
		Msg("follow-up sweep worker started")

	go func() {
		<-ctx.Done()
		if w.running.Load() {
			w.log.Info().Msg("waiting for in-flight sweep to finish")
		}
		<-w.cron.Stop().Done()
		w.log.Info().Msg("follow-up sweep worker stopped")
		close(w.stopped)
	}()
	return nil
}

// Done is closed once the worker has stopped and no sweep is running.
func (w *FollowUpSweepWorker) Done() <-chan struct{} {
	return w.stopped
}

func (w *FollowUpSweepWorker) NextRun() time.Time {
	return w.cron.Entry(w.entry).Next
}

func (w *FollowUpSweepWorker) IsRunning() bool {
	return w.running.Load()
}

// RunOnce runs a sweep unless one is already in flight or ctx is already done.
// It reports whether it ran. ctx only decides whether to fire; a started sweep
// runs detached from its cancellation.
func (w *FollowUpSweepWorker) RunOnce(ctx context.Context) bool {
	if ctx.Err() != nil {
		w.log.Info().Msg("shutting down, sweep trigger ignored")
		metrics.RecordSweep("skipped")
		return false
	}
	if !w.running.CompareAndSwap(false, true) {
		w.log.Warn().Msg("sweep already running in this process, skipping trigger")
		metrics.RecordSweep("skipped")
		return false
	}
	defer w.running.Store(false)

	runCtx := context.WithoutCancel(ctx)

	if w.locker != nil {
		ok, err := w.locker.Acquire(runCtx)
		if err != nil {
			w.log.Error().Err(err).Msg("sweep lock unavailable, skipping trigger")
			metrics.RecordSweep("failed")
			return false
		}
		if !ok {
			w.log.Info().Msg("sweep held by another replica, skipping trigger")
			metrics.RecordSweep("skipped")
			return false
		}
		defer func() {
			if err := w.locker.Release(runCtx); err != nil {
				w.log.Warn().Err(err).Msg("sweep lock release failed")
			}
		}()
	}

	return w.safeRun(runCtx)
}

func (w *FollowUpSweepWorker) safeRun(ctx context.Context) (ran bool) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Interface("panic", r).Msg("sweep panic recovered")
			metrics.RecordSweep("failed")
			ran = true
		}
	}()

	if _, err := w.runner.Run(ctx); err != nil {
		metrics.RecordSweep("failed")
		return true
	}
	metrics.RecordSweep("completed")
	return true
}
