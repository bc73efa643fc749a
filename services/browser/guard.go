package browser

import (
	"context"
	"fmt"
	"time"

	"comprende-prod/trademe/internal/crawler"
	"comprende-prod/trademe/logger"
	apperrors "comprende-prod/trademe/pkg/errors"
	"comprende-prod/trademe/services/cache"
)

const DefaultBlockKey = "trademe_rate_limited"

// GuardedSession refuses to fetch while a rate-limit block is recorded in
// the cache, and records one for blockTime whenever a fetch is rate limited.
// The block outlives the process, so a rerun soon after a 429 fails fast.
// The first successful fetch of a session clears any block left behind.
type GuardedSession struct {
	crawler.Session
	cache     cache.CacheService
	key       string
	blockTime time.Duration
	cleared   bool
	log       *logger.Logger
}

// NewGuardedSession wraps session with a rate-limit guard stored under key
func NewGuardedSession(session crawler.Session, c cache.CacheService, key string, blockTime time.Duration) *GuardedSession {
	if key == "" {
		key = DefaultBlockKey
	}
	return &GuardedSession{
		Session:   session,
		cache:     c,
		key:       key,
		blockTime: blockTime,
		log:       logger.ForCache(),
	}
}

// GuardOpen wraps every session opened by open with a rate-limit guard
func GuardOpen(open crawler.OpenFunc, c cache.CacheService, key string, blockTime time.Duration) crawler.OpenFunc {
	return func(ctx context.Context) (crawler.Session, error) {
		session, err := open(ctx)
		if err != nil {
			return nil, err
		}
		return NewGuardedSession(session, c, key, blockTime), nil
	}
}

func (g *GuardedSession) Fetch(ctx context.Context, url string) (string, error) {
	if _, err := g.cache.Get(g.key); err == nil {
		return "", apperrors.NewRateLimit("guard", fmt.Sprintf("%d seconds", int(g.blockTime/time.Second)))
	}

	markup, err := g.Session.Fetch(ctx, url)
	if err != nil && apperrors.IsRateLimit(err) {
		if setErr := g.cache.Set(g.key, []byte(fmt.Sprintf("%d", int(g.blockTime/time.Second))), g.blockTime); setErr != nil {
			g.log.Warn().Err(setErr).Str("key", g.key).Msg("Failed to record rate limit block")
		} else {
			g.log.Warn().Str("key", g.key).Dur("block", g.blockTime).Msg("Rate limited, blocking further fetches")
		}
	}
	if err == nil && !g.cleared {
		g.cleared = true
		if delErr := g.cache.Delete(g.key); delErr != nil {
			g.log.Debug().Err(delErr).Str("key", g.key).Msg("Failed to clear rate limit block")
		}
	}
	return markup, err
}
