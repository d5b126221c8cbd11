package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"
	"github.com/rs/zerolog"
)

// Sweeper deletes expired cache rows on a cron schedule so the table does
// not grow without bound between restarts.
type Sweeper struct {
	store    Store
	ttl      time.Duration
	schedule string
	gron     *gronx.Gronx
	log      zerolog.Logger
}

func NewSweeper(store Store, ttl time.Duration, schedule string, log zerolog.Logger) (*Sweeper, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	g := gronx.New()
	if !g.IsValid(schedule) {
		return nil, fmt.Errorf("invalid sweep schedule %q", schedule)
	}
	return &Sweeper{
		store:    store,
		ttl:      ttl,
		schedule: schedule,
		gron:     g,
		log:      log.With().Str("component", "cache.sweeper").Logger(),
	}, nil
}

// Sweep purges rows older than the TTL once, immediately.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.ttl).UnixMilli()
	purged, err := s.store.PurgeExpiredCache(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cache sweep: %w", err)
	}
	if purged > 0 {
		s.log.Info().Int("purged", purged).Msg("expired cache entries removed")
	}
	return purged, nil
}

// Run ticks once a minute and sweeps whenever the cron expression is due.
// It returns when ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			due, err := s.gron.IsDue(s.schedule, now)
			if err != nil {
				s.log.Warn().Err(err).Msg("cron check failed")
				continue
			}
			if !due {
				continue
			}
			if _, err := s.Sweep(ctx); err != nil {
				s.log.Warn().Err(err).Msg("scheduled sweep failed")
			}
		}
	}
}
