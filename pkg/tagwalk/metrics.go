package tagwalk

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics counts cache-through lookups per namespace.
type CacheMetrics struct {
	Hits   *prometheus.CounterVec
	Misses *prometheus.CounterVec
	Stores *prometheus.CounterVec
}

// NewCacheMetrics creates the cache counters and registers them with reg.
// A nil reg leaves them unregistered. Counters already registered by another
// client on the same registry are reused.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tagwalk",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cached query lookups served from the cache.",
		}, []string{"namespace"}),

		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tagwalk",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cached query lookups that had to call the API.",
		}, []string{"namespace"}),

		Stores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tagwalk",
			Subsystem: "cache",
			Name:      "stores_total",
			Help:      "Results written to the cache.",
		}, []string{"namespace"}),
	}

	if reg == nil {
		return m
	}

	m.Hits = register(reg, m.Hits)
	m.Misses = register(reg, m.Misses)
	m.Stores = register(reg, m.Stores)

	return m
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	err := reg.Register(c)
	if err == nil {
		return c
	}

	are := prometheus.AlreadyRegisteredError{}
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing
		}
	}

	return c
}

func (m *CacheMetrics) hit(namespace string) {
	if m != nil {
		m.Hits.WithLabelValues(namespace).Inc()
	}
}

func (m *CacheMetrics) miss(namespace string) {
	if m != nil {
		m.Misses.WithLabelValues(namespace).Inc()
	}
}

func (m *CacheMetrics) store(namespace string) {
	if m != nil {
		m.Stores.WithLabelValues(namespace).Inc()
	}
}
