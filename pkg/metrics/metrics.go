package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric is the interface implemented by all metric types.
type Metric interface {
	// Name returns the metric name.
	Name() string
	// Help returns the help text.
	Help() string
	// Type returns the metric type.
	Type() MetricType
	// Collect returns all metric samples for exposition.
	Collect() []Sample
}

// Sample represents a single metric sample with labels.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// labelKey builds a deterministic map key from label values.
func labelKey(values []string) string {
	return strings.Join(values, "\x00")
}

func labelMap(names, values []string) map[string]string {
	m := make(map[string]string, len(names))
	for i, n := range names {
		m[n] = values[i]
	}
	return m
}

// ============================================================================
// Counter
// ============================================================================

// Counter is a monotonically increasing metric.
type Counter struct {
	name       string
	help       string
	labelNames []string
	mu         sync.Mutex
	values     map[string]*counterValue
}

type counterValue struct {
	labels map[string]string
	value  float64
}

// Name returns the metric name.
func (c *Counter) Name() string { return c.name }

// Help returns the help text.
func (c *Counter) Help() string { return c.help }

// Type returns MetricTypeCounter.
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// Inc increments the counter for the given label values by one.
// The number of label values must match the registered label names.
func (c *Counter) Inc(labelValues ...string) {
	c.Add(1, labelValues...)
}

// Add increments the counter for the given label values by delta.
// Negative deltas and mismatched label counts are ignored.
func (c *Counter) Add(delta float64, labelValues ...string) {
	if delta < 0 || len(labelValues) != len(c.labelNames) {
		return
	}
	key := labelKey(labelValues)

	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		v = &counterValue{labels: labelMap(c.labelNames, labelValues)}
		c.values[key] = v
	}
	v.value += delta
}

// Value returns the current value for the given label values.
func (c *Counter) Value(labelValues ...string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.values[labelKey(labelValues)]; ok {
		return v.value
	}
	return 0
}

// Collect returns one sample per label combination.
func (c *Counter) Collect() []Sample {
	c.mu.Lock()
	defer c.mu.Unlock()
	samples := make([]Sample, 0, len(c.values))
	for _, v := range c.values {
		samples = append(samples, Sample{Name: c.name, Labels: v.labels, Value: v.value})
	}
	return samples
}

// ============================================================================
// Histogram
// ============================================================================

// Histogram tracks the distribution of observed values in fixed buckets.
type Histogram struct {
	name       string
	help       string
	labelNames []string
	buckets    []float64
	mu         sync.Mutex
	values     map[string]*histogramValue
}

type histogramValue struct {
	labels map[string]string
	counts []uint64 // one per bucket, cumulative semantics applied at collect
	count  uint64
	sum    float64
}

// DefaultLatencyBuckets covers request latencies from 5ms to 10s.
var DefaultLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Name returns the metric name.
func (h *Histogram) Name() string { return h.name }

// Help returns the help text.
func (h *Histogram) Help() string { return h.help }

// Type returns MetricTypeHistogram.
func (h *Histogram) Type() MetricType { return MetricTypeHistogram }

// Observe records a value for the given label values.
func (h *Histogram) Observe(value float64, labelValues ...string) {
	if len(labelValues) != len(h.labelNames) {
		return
	}
	key := labelKey(labelValues)

	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.values[key]
	if !ok {
		v = &histogramValue{
			labels: labelMap(h.labelNames, labelValues),
			counts: make([]uint64, len(h.buckets)),
		}
		h.values[key] = v
	}
	for i, upper := range h.buckets {
		if value <= upper {
			v.counts[i]++
		}
	}
	v.count++
	v.sum += value
}

// Count returns the number of observations for the given label values.
func (h *Histogram) Count(labelValues ...string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.values[labelKey(labelValues)]; ok {
		return v.count
	}
	return 0
}

// Collect returns bucket, sum and count samples per label combination.
func (h *Histogram) Collect() []Sample {
	h.mu.Lock()
	defer h.mu.Unlock()

	var samples []Sample
	for _, v := range h.values {
		for i, upper := range h.buckets {
			labels := make(map[string]string, len(v.labels)+1)
			for k, lv := range v.labels {
				labels[k] = lv
			}
			labels["le"] = formatFloat(upper)
			samples = append(samples, Sample{Name: h.name + "_bucket", Labels: labels, Value: float64(v.counts[i])})
		}
		infLabels := make(map[string]string, len(v.labels)+1)
		for k, lv := range v.labels {
			infLabels[k] = lv
		}
		infLabels["le"] = "+Inf"
		samples = append(samples,
			Sample{Name: h.name + "_bucket", Labels: infLabels, Value: float64(v.count)},
			Sample{Name: h.name + "_sum", Labels: v.labels, Value: v.sum},
			Sample{Name: h.name + "_count", Labels: v.labels, Value: float64(v.count)},
		)
	}
	return samples
}

// ============================================================================
// Registry
// ============================================================================

// Registry holds registered metrics and serves them for scraping.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
}

// NewRegistry creates an empty metrics registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewCounter creates and registers a counter.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := &Counter{
		name:       name,
		help:       help,
		labelNames: labels,
		values:     make(map[string]*counterValue),
	}
	r.register(c)
	return c
}

// NewHistogram creates and registers a histogram with the given buckets.
// Nil buckets select DefaultLatencyBuckets.
func (r *Registry) NewHistogram(name, help string, buckets []float64, labels ...string) *Histogram {
	if buckets == nil {
		buckets = DefaultLatencyBuckets
	}
	h := &Histogram{
		name:       name,
		help:       help,
		labelNames: labels,
		buckets:    buckets,
		values:     make(map[string]*histogramValue),
	}
	r.register(h)
	return h
}

func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, m)
}

// Handler returns an http.Handler that serves the /metrics endpoint in
// Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.RLock()
		metrics := make([]Metric, len(r.metrics))
		copy(metrics, r.metrics)
		r.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

		for _, m := range metrics {
			writeMetric(w, m)
		}
	})
}

// writeMetric writes a single metric in Prometheus text format.
func writeMetric(w http.ResponseWriter, m Metric) {
	samples := m.Collect()
	if len(samples) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "# HELP %s %s\n", m.Name(), m.Help())
	_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", m.Name(), m.Type())

	// Sort for deterministic output
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return formatLabels(samples[i].Labels) < formatLabels(samples[j].Labels)
	})
	for _, s := range samples {
		if len(s.Labels) == 0 {
			_, _ = fmt.Fprintf(w, "%s %s\n", s.Name, formatFloat(s.Value))
		} else {
			_, _ = fmt.Fprintf(w, "%s{%s} %s\n", s.Name, formatLabels(s.Labels), formatFloat(s.Value))
		}
	}
}

// formatLabels formats labels as key="value",key="value" with sorted keys.
func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, labels[k]))
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
