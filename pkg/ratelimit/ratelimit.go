package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultCooldown is how long a journey must wait between event
// submissions.
const DefaultCooldown = 180 * time.Second

// CooldownLimiter throttles repeated event submissions per journey using
// a TTL keyed Redis cache. It is injected into the transport layer so
// the transition logic itself stays free of wall clock coupling.
type CooldownLimiter struct {
	cache    *cache.Cache[string]
	cooldown time.Duration

	// Now is swappable for tests. Defaults to time.Now.
	Now func() time.Time
}

func NewCooldownLimiter(client *redis.Client, cooldown time.Duration) *CooldownLimiter {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(cooldown))

	return &CooldownLimiter{
		cache:    cache.New[string](redisStore),
		cooldown: cooldown,
	}
}

func (l *CooldownLimiter) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Check records a submission for the journey and reports whether it was
// allowed. When denied it returns how long the caller must wait.
func (l *CooldownLimiter) Check(ctx context.Context, journeyIdentifier string) (bool, time.Duration) {
	cacheKey := fmt.Sprintf("journey_cooldown:%s", journeyIdentifier)
	now := l.now()

	stored, err := l.cache.Get(ctx, cacheKey)
	if err == nil {
		if submitted, parseErr := strconv.ParseInt(stored, 10, 64); parseErr == nil {
			remaining := l.cooldown - now.Sub(time.Unix(submitted, 0))
			if remaining > 0 {
				return false, remaining
			}
		}
	}

	// Fail open: a cooldown that cannot be recorded should not block the
	// submission itself
	if err := l.cache.Set(ctx, cacheKey, strconv.FormatInt(now.Unix(), 10)); err != nil {
		log.Warn().
			Err(err).
			Str("journey", journeyIdentifier).
			Msg("Failed to record event cooldown")
	}

	return true, 0
}
