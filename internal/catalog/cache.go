package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelmondragon/promocheck/internal/promotions"
	"github.com/angelmondragon/promocheck/pkg/logger"
	"github.com/angelmondragon/promocheck/pkg/metrics"
	"github.com/angelmondragon/promocheck/pkg/redis"
)

// Cache is the subset of the redis client used to hold the active snapshot.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ActivePromotionsKey() string
}

// CachedLoaderParams wires a CachedLoader.
type CachedLoaderParams struct {
	Next    SnapshotSource
	Cache   Cache
	TTL     time.Duration
	Metrics *metrics.PromotionMetrics
	Logger  *logger.Logger
}

// CachedLoader keeps every unexpired promotion in redis and filters the
// snapshot down to the running ones on each read. A miss or any cache failure
// falls back to the wrapped source.
type CachedLoader struct {
	next    SnapshotSource
	cache   Cache
	ttl     time.Duration
	metrics *metrics.PromotionMetrics
	logg    *logger.Logger
}

// NewCachedLoader validates params and builds the loader.
func NewCachedLoader(params CachedLoaderParams) (*CachedLoader, error) {
	if params.Next == nil {
		return nil, fmt.Errorf("next loader required")
	}
	if params.Cache == nil {
		return nil, fmt.Errorf("cache required")
	}
	if params.TTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &CachedLoader{
		next:    params.Next,
		cache:   params.Cache,
		ttl:     params.TTL,
		metrics: params.Metrics,
		logg:    logg,
	}, nil
}

// ListActive implements Loader.
func (l *CachedLoader) ListActive(ctx context.Context, now time.Time) ([]promotions.Promotion, error) {
	key := l.cache.ActivePromotionsKey()
	ctx = l.logg.WithField(ctx, "cache_key", key)

	raw, err := l.cache.Get(ctx, key)
	switch {
	case err == nil:
		var cached []promotions.Promotion
		decodeErr := json.Unmarshal([]byte(raw), &cached)
		if decodeErr == nil {
			l.metrics.IncCache(metrics.CacheHit)
			return filterRunning(cached, now), nil
		}
		l.metrics.IncCache(metrics.CacheError)
		l.logg.Warn(l.logg.WithField(ctx, "error", decodeErr.Error()), "discarding undecodable promotion cache entry")
	case redis.IsMiss(err):
		l.metrics.IncCache(metrics.CacheMiss)
	default:
		l.metrics.IncCache(metrics.CacheError)
		l.logg.Error(ctx, "promotion cache read failed", err)
	}

	snapshot, err := l.next.ListUnexpired(ctx, now)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		l.logg.Error(ctx, "encoding promotions for cache", err)
	} else if err := l.cache.Set(ctx, key, string(payload), l.ttl); err != nil {
		l.logg.Error(ctx, "promotion cache write failed", err)
	}
	return filterRunning(snapshot, now), nil
}

// Invalidate drops the cached snapshot so the next read goes to the database.
func (l *CachedLoader) Invalidate(ctx context.Context) error {
	if err := l.cache.Del(ctx, l.cache.ActivePromotionsKey()); err != nil {
		return fmt.Errorf("invalidate promotion cache: %w", err)
	}
	return nil
}

func filterRunning(promos []promotions.Promotion, now time.Time) []promotions.Promotion {
	out := make([]promotions.Promotion, 0, len(promos))
	for _, promo := range promos {
		if runningAt(promo, now) {
			out = append(out, promo)
		}
	}
	return out
}
