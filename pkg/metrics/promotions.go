package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// PromotionMetrics records cart validation verdicts and catalog cache usage.
type PromotionMetrics struct {
	validations *prometheus.CounterVec
	messages    *prometheus.CounterVec
	duration    prometheus.Histogram
	cache       *prometheus.CounterVec
}

// NewPromotionMetrics registers the promotion metrics on the provided registerer.
// A nil registerer yields a recorder that drops everything.
func NewPromotionMetrics(reg prometheus.Registerer) *PromotionMetrics {
	if reg == nil {
		return &PromotionMetrics{}
	}
	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promotion_validations_total",
		Help: "Cart promotion validations by checkout outcome.",
	}, []string{"outcome"})
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promotion_messages_total",
		Help: "Promotion messages emitted by type.",
	}, []string{"type"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "promotion_validation_duration_seconds",
		Help:    "Duration of cart promotion validation including catalog load.",
		Buckets: prometheus.DefBuckets,
	})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promotion_cache_requests_total",
		Help: "Active promotion cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(validations, messages, duration, cache)
	return &PromotionMetrics{
		validations: validations,
		messages:    messages,
		duration:    duration,
		cache:       cache,
	}
}

// IncValidation counts one verdict.
func (m *PromotionMetrics) IncValidation(outcome string) {
	if m == nil || m.validations == nil {
		return
	}
	m.validations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// AddMessages counts emitted messages of one type.
func (m *PromotionMetrics) AddMessages(messageType string, count int) {
	if m == nil || m.messages == nil || count <= 0 {
		return
	}
	m.messages.WithLabelValues(normalizeLabel(messageType)).Add(float64(count))
}

// ObserveDuration records how long a validation took.
func (m *PromotionMetrics) ObserveDuration(duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(duration.Seconds())
}

// IncCache counts one cache lookup (hit, miss or error).
func (m *PromotionMetrics) IncCache(result string) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
