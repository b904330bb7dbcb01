package worker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jmcpheron/ccc-schedule/internal/config"
	"github.com/jmcpheron/ccc-schedule/internal/repository"
)

// CacheWarmWorker periodically re-primes the Redis document cache from
// PostgreSQL so the first request after a TTL expiry never pays the
// database round trip.
type CacheWarmWorker struct {
	repo     *repository.ScheduleRepository
	rdb      *redis.Client
	log      zerolog.Logger
	interval time.Duration
	ttl      time.Duration
}

// NewCacheWarmWorker creates a new CacheWarmWorker.
func NewCacheWarmWorker(repo *repository.ScheduleRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *CacheWarmWorker {
	return &CacheWarmWorker{
		repo:     repo,
		rdb:      rdb,
		log:      log.With().Str("component", "cache_warm_worker").Logger(),
		interval: cfg.CacheTTL / 2,
		ttl:      cfg.CacheTTL,
	}
}

// Start begins the periodic warm loop. Call in a goroutine.
func (w *CacheWarmWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Warm once at startup so a fresh deploy serves from cache immediately.
	w.warm(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *CacheWarmWorker) warm(ctx context.Context) {
	schedules, err := w.repo.List(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("List schedules failed")
		return
	}

	warmed := 0
	for _, meta := range schedules {
		stored, err := w.repo.Get(ctx, meta.CollegeID, meta.TermCode)
		if err != nil {
			w.log.Error().Err(err).
				Str("college", meta.CollegeID).
				Str("term", meta.TermCode).
				Msg("Load schedule failed")
			continue
		}

		key := config.CacheKey.ScheduleDocumentKey(stored.CollegeID, stored.TermCode)
		if err := w.rdb.Set(ctx, key, stored.Document, w.ttl).Err(); err != nil {
			w.log.Warn().Err(err).Str("key", key).Msg("Cache set failed")
			continue
		}
		warmed++
	}

	if warmed > 0 {
		w.log.Debug().Int("count", warmed).Msg("Cache warmed")
	}
}
