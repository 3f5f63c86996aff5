package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/guttosm/marketpulse/internal/logger"
)

const warmupTimeout = 15 * time.Second

// Warmer re-acquires the vendor session on a cron schedule so that the first
// request after expiry does not pay for the bootstrap round trips.
type Warmer struct {
	cron    *cron.Cron
	refresh func(ctx context.Context) error
	log     zerolog.Logger
}

// NewWarmer registers refresh under spec. spec uses the standard five-field
// cron syntax or a descriptor such as "@every 20m".
func NewWarmer(spec string, refresh func(ctx context.Context) error) (*Warmer, error) {
	w := &Warmer{
		cron:    cron.New(),
		refresh: refresh,
		log:     logger.With("warmup"),
	}
	if _, err := w.cron.AddFunc(spec, w.Run); err != nil {
		return nil, fmt.Errorf("register session warm-up %q: %w", spec, err)
	}
	return w, nil
}

// Start starts the scheduler in its own goroutine.
func (w *Warmer) Start() {
	w.cron.Start()
	w.log.Info().Msg("session warm-up scheduled")
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
	w.log.Info().Msg("session warm-up stopped")
}

// Run performs one refresh. Failures are logged; the next tick retries.
func (w *Warmer) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()
	if err := w.refresh(ctx); err != nil {
		w.log.Warn().Err(err).Msg("session warm-up failed")
		return
	}
	w.log.Debug().Msg("session warm")
}
