package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Retention periodically deletes traces older than MaxAge.
type Retention struct {
	Store  TraceStore
	MaxAge time.Duration
	Logger zerolog.Logger

	cron *cron.Cron
	now  func() time.Time
}

// NewRetention schedules pruning with a standard cron expression or a
// descriptor such as "@daily". The job does not run until Start.
func NewRetention(store TraceStore, schedule string, maxAge time.Duration, logger zerolog.Logger) (*Retention, error) {
	if maxAge <= 0 {
		return nil, fmt.Errorf("retention max age must be positive, got %s", maxAge)
	}
	r := &Retention{
		Store:  store,
		MaxAge: maxAge,
		Logger: logger,
		cron:   cron.New(),
		now:    time.Now,
	}
	if _, err := r.cron.AddFunc(schedule, func() { r.Prune(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Retention) Start() {
	r.cron.Start()
}

// Stop halts the scheduler and waits for a running prune to finish.
func (r *Retention) Stop() {
	<-r.cron.Stop().Done()
}

// Prune deletes expired traces once.
func (r *Retention) Prune(ctx context.Context) (int64, error) {
	cutoff := r.now().Add(-r.MaxAge)
	n, err := r.Store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		r.Logger.Error().Err(err).Time("cutoff", cutoff).Msg("trace retention failed")
		return 0, err
	}
	r.Logger.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("trace retention complete")
	return n, nil
}
