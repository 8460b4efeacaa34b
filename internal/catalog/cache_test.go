package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/promocheck/internal/promotions"
	"github.com/angelmondragon/promocheck/pkg/metrics"
)

type stubLoader struct {
	promos []promotions.Promotion
	err    error
	calls  int
}

func (s *stubLoader) ListActive(_ context.Context, now time.Time) ([]promotions.Promotion, error) {
	s.calls++
	return filterRunning(s.promos, now), s.err
}

func (s *stubLoader) ListUnexpired(_ context.Context, now time.Time) ([]promotions.Promotion, error) {
	s.calls++
	var out []promotions.Promotion
	for _, promo := range s.promos {
		if promo.IsActive && !promo.EndDate.Before(now) {
			out = append(out, promo)
		}
	}
	return out, s.err
}

type memoryCache struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryCache) ActivePromotionsKey() string {
	return "promo:promotions:active"
}

func runningPromotion(id promotions.PromotionID, name string) promotions.Promotion {
	return promotions.Promotion{
		ID:            id,
		PromotionName: name,
		IsActive:      true,
		StartDate:     referenceNow.Add(-time.Hour),
		EndDate:       referenceNow.Add(time.Hour),
		Rules:         promotions.BuyXGetYRule{},
	}
}

func newTestCachedLoader(t *testing.T, next SnapshotSource, cache Cache) (*CachedLoader, *metrics.PromotionMetrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewPromotionMetrics(reg)
	loader, err := NewCachedLoader(CachedLoaderParams{Next: next, Cache: cache, TTL: time.Minute, Metrics: m})
	require.NoError(t, err)
	return loader, m, reg
}

func cacheCount(t *testing.T, reg *prometheus.Registry, result string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "promotion_cache_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "result" && label.GetValue() == result {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestCachedLoaderMissThenHit(t *testing.T) {
	next := &stubLoader{promos: []promotions.Promotion{runningPromotion(1, "Trio")}}
	cache := newMemoryCache()
	loader, _, reg := newTestCachedLoader(t, next, cache)
	ctx := context.Background()

	first, err := loader.ListActive(ctx, referenceNow)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, time.Minute, cache.ttls[cache.ActivePromotionsKey()])

	second, err := loader.ListActive(ctx, referenceNow)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Trio", second[0].PromotionName)
	_, ok := second[0].Rules.(promotions.BuyXGetYRule)
	assert.True(t, ok, "rules should survive the cache round trip")

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, float64(1), cacheCount(t, reg, metrics.CacheMiss))
	assert.Equal(t, float64(1), cacheCount(t, reg, metrics.CacheHit))
}

func TestCachedLoaderFiltersExpiredEntriesOnHit(t *testing.T) {
	next := &stubLoader{promos: []promotions.Promotion{runningPromotion(1, "Short"), runningPromotion(2, "Long")}}
	next.promos[1].EndDate = referenceNow.Add(24 * time.Hour)
	loader, _, _ := newTestCachedLoader(t, next, newMemoryCache())
	ctx := context.Background()

	_, err := loader.ListActive(ctx, referenceNow)
	require.NoError(t, err)

	later, err := loader.ListActive(ctx, referenceNow.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, later, 1)
	assert.Equal(t, promotions.PromotionID(2), later[0].ID)
	assert.Equal(t, 1, next.calls)
}

func TestCachedLoaderSurfacesPromotionStartingWithinTTL(t *testing.T) {
	upcoming := runningPromotion(2, "Later")
	upcoming.StartDate = referenceNow.Add(10 * time.Second)
	next := &stubLoader{promos: []promotions.Promotion{runningPromotion(1, "Now"), upcoming}}
	loader, _, _ := newTestCachedLoader(t, next, newMemoryCache())
	ctx := context.Background()

	first, err := loader.ListActive(ctx, referenceNow)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, promotions.PromotionID(1), first[0].ID)

	later, err := loader.ListActive(ctx, referenceNow.Add(30*time.Second))
	require.NoError(t, err)
	require.Len(t, later, 2)
	assert.Equal(t, promotions.PromotionID(2), later[1].ID)
	assert.Equal(t, 1, next.calls, "the second read should be served from the cache")
}

func TestCachedLoaderFallsThroughOnCacheErrors(t *testing.T) {
	next := &stubLoader{promos: []promotions.Promotion{runningPromotion(1, "Trio")}}
	cache := newMemoryCache()
	cache.getErr = errors.New("connection reset")
	cache.setErr = errors.New("connection reset")
	loader, _, reg := newTestCachedLoader(t, next, cache)

	got, err := loader.ListActive(context.Background(), referenceNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, float64(1), cacheCount(t, reg, metrics.CacheError))
}

func TestCachedLoaderReplacesCorruptEntry(t *testing.T) {
	next := &stubLoader{promos: []promotions.Promotion{runningPromotion(1, "Trio")}}
	cache := newMemoryCache()
	cache.data[cache.ActivePromotionsKey()] = "{not json"
	loader, _, _ := newTestCachedLoader(t, next, cache)

	got, err := loader.ListActive(context.Background(), referenceNow)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, next.calls)
	assert.NotEqual(t, "{not json", cache.data[cache.ActivePromotionsKey()])
}

func TestCachedLoaderPropagatesLoaderErrors(t *testing.T) {
	next := &stubLoader{err: errors.New("db down")}
	cache := newMemoryCache()
	loader, _, _ := newTestCachedLoader(t, next, cache)

	_, err := loader.ListActive(context.Background(), referenceNow)
	require.Error(t, err)
	assert.Empty(t, cache.data, "failures must not be cached")
}

func TestCachedLoaderInvalidate(t *testing.T) {
	next := &stubLoader{promos: []promotions.Promotion{runningPromotion(1, "Trio")}}
	loader, _, _ := newTestCachedLoader(t, next, newMemoryCache())
	ctx := context.Background()

	_, err := loader.ListActive(ctx, referenceNow)
	require.NoError(t, err)
	require.NoError(t, loader.Invalidate(ctx))
	_, err = loader.ListActive(ctx, referenceNow)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestNewCachedLoaderValidatesParams(t *testing.T) {
	_, err := NewCachedLoader(CachedLoaderParams{Cache: newMemoryCache(), TTL: time.Minute})
	require.Error(t, err)
	_, err = NewCachedLoader(CachedLoaderParams{Next: &stubLoader{}, TTL: time.Minute})
	require.Error(t, err)
	_, err = NewCachedLoader(CachedLoaderParams{Next: &stubLoader{}, Cache: newMemoryCache()})
	require.Error(t, err)
}
