package metric

import (
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus creates collectors on first use: counters for Increment, histograms for Duration.
// The label names seen on first use of a key are fixed for that key; observations with
// another label set are dropped.
type Prometheus struct {
	*collectors
	labels Labels
}

type collectors struct {
	namespace  string
	registry   *prometheus.Registry
	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

func NewPrometheus(namespace string) *Prometheus {
	return &Prometheus{
		collectors: &collectors{
			namespace:  namespace,
			registry:   prometheus.NewRegistry(),
			counters:   make(map[string]*prometheus.CounterVec),
			histograms: make(map[string]*prometheus.HistogramVec),
		},
		labels: Labels{},
	}
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *Prometheus) With(labels Labels) Metrics {
	merged := make(Labels, len(p.labels)+len(labels))
	maps.Copy(merged, p.labels)
	maps.Copy(merged, labels)
	return &Prometheus{collectors: p.collectors, labels: merged}
}

func (p *Prometheus) WithLabel(name, value string) Metrics {
	return p.With(Labels{name: value})
}

func (p *Prometheus) Increment(key string) {
	counter, err := p.counter(key).GetMetricWith(prometheus.Labels(p.labels))
	if err != nil {
		return
	}
	counter.Inc()
}

func (p *Prometheus) Duration(key string, duration time.Duration) {
	observer, err := p.histogram(key).GetMetricWith(prometheus.Labels(p.labels))
	if err != nil {
		return
	}
	observer.Observe(duration.Seconds())
}

func (p *Prometheus) counter(key string) *prometheus.CounterVec {
	p.mu.Lock()
	defer p.mu.Unlock()

	if vec, ok := p.counters[key]; ok {
		return vec
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: p.namespace,
		Name:      key,
		Help:      key,
	}, labelNames(p.labels))
	p.counters[key] = registerOrExisting(p.registry, vec)
	return p.counters[key]
}

func (p *Prometheus) histogram(key string) *prometheus.HistogramVec {
	p.mu.Lock()
	defer p.mu.Unlock()

	if vec, ok := p.histograms[key]; ok {
		return vec
	}

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: p.namespace,
		Name:      key,
		Help:      key,
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, labelNames(p.labels))
	p.histograms[key] = registerOrExisting(p.registry, vec)
	return p.histograms[key]
}

func registerOrExisting[T prometheus.Collector](registry *prometheus.Registry, collector T) T {
	err := registry.Register(collector)
	if err == nil {
		return collector
	}

	if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing
		}
	}
	return collector
}

func labelNames(labels Labels) []string {
	return slices.Sorted(maps.Keys(labels))
}
