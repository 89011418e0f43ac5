// Package scheduler runs the account-retention background job: Student
// accounts inactive beyond the configured window are removed periodically
// instead of relying on a store-side TTL index.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/climawatch/weather-api/internal/api/metrics"
)

// StudentPurger is the slice of the user repository the job needs.
type StudentPurger interface {
	DeleteInactiveStudents(ctx context.Context, cutoff time.Time) (int64, error)
}

// Purger periodically deletes inactive Student accounts.
type Purger struct {
	scheduler *gocron.Scheduler
	repo      StudentPurger
	interval  time.Duration
	retention time.Duration
	logger    zerolog.Logger
}

// New creates a Purger. An interval of zero disables the job entirely.
func New(repo StudentPurger, interval, retention time.Duration, logger zerolog.Logger) *Purger {
	return &Purger{
		scheduler: gocron.NewScheduler(time.UTC),
		repo:      repo,
		interval:  interval,
		retention: retention,
		logger:    logger,
	}
}

// Start schedules the purge job and starts the underlying scheduler.
func (p *Purger) Start() error {
	if p.interval <= 0 {
		p.logger.Info().Msg("student purge disabled")
		return nil
	}

	_, err := p.scheduler.Every(p.interval).Do(p.runOnce)
	if err != nil {
		return err
	}

	p.scheduler.StartAsync()
	p.logger.Info().
		Dur("interval", p.interval).
		Dur("retention", p.retention).
		Msg("student purge scheduled")
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (p *Purger) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}

func (p *Purger) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-p.retention)
	deleted, err := p.repo.DeleteInactiveStudents(ctx, cutoff)
	if err != nil {
		p.logger.Error().Err(err).Msg("student purge failed")
		return
	}
	if deleted > 0 {
		metrics.UsersPurgedTotal.Add(float64(deleted))
		p.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("purged inactive students")
	}
}
