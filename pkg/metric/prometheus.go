package metric

import (
	"maps"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRegistry lazily creates a collector per metric name.
// Label names of a metric are fixed by its first use, later unknown labels are dropped.
type PrometheusRegistry struct {
	namespace  string
	registry   *prometheus.Registry
	mutex      sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	labelNames map[string][]string
}

func NewPrometheusRegistry(namespace string) *PrometheusRegistry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &PrometheusRegistry{
		namespace:  namespace,
		registry:   registry,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
		labelNames: make(map[string][]string),
	}
}

func (r *PrometheusRegistry) Metrics() Metrics {
	return prometheusMetrics{registry: r}
}

func (r *PrometheusRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *PrometheusRegistry) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *PrometheusRegistry) counter(name string, labels Labels) prometheus.Counter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	vec, ok := r.counters[name]
	if !ok {
		r.labelNames[name] = sortedKeys(labels)
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: r.namespace,
			Name:      name,
			Help:      name,
		}, r.labelNames[name])
		r.registry.MustRegister(vec)
		r.counters[name] = vec
	}

	return vec.With(r.knownLabels(name, labels))
}

func (r *PrometheusRegistry) histogram(name string, labels Labels) prometheus.Observer {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	vec, ok := r.histograms[name]
	if !ok {
		r.labelNames[name] = sortedKeys(labels)
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: r.namespace,
			Name:      name,
			Help:      name,
			Buckets:   prometheus.DefBuckets,
		}, r.labelNames[name])
		r.registry.MustRegister(vec)
		r.histograms[name] = vec
	}

	return vec.With(r.knownLabels(name, labels))
}

func (r *PrometheusRegistry) knownLabels(name string, labels Labels) prometheus.Labels {
	names := r.labelNames[name]
	result := make(prometheus.Labels, len(names))
	for _, labelName := range names {
		result[labelName] = labels[labelName]
	}

	return result
}

type prometheusMetrics struct {
	registry *PrometheusRegistry
	labels   Labels
}

func (m prometheusMetrics) With(labels Labels) Metrics {
	merged := make(Labels, len(m.labels)+len(labels))
	maps.Copy(merged, m.labels)
	maps.Copy(merged, labels)

	return prometheusMetrics{registry: m.registry, labels: merged}
}

func (m prometheusMetrics) WithLabel(name string, value string) Metrics {
	return m.With(Labels{name: value})
}

func (m prometheusMetrics) Increment(key string) {
	m.Count(key, 1)
}

func (m prometheusMetrics) Count(key string, value int) {
	if value < 0 {
		return
	}

	m.registry.counter(key, m.labels).Add(float64(value))
}

func (m prometheusMetrics) Duration(key string, duration time.Duration) {
	m.registry.histogram(key, m.labels).Observe(duration.Seconds())
}

func sortedKeys(labels Labels) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
