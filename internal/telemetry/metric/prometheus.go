package metric

import (
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

// Namespace prefixes every metric name.
const Namespace = "chainmap"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Rehash metrics
	RehashesTotal  *prometheus.CounterVec
	RehashDuration *prometheus.HistogramVec

	// Operation metrics
	OperationsTotal *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with the rehash and
// operation metrics registered. With runtime set, Go runtime and process
// collectors are registered too.
func NewRegistry(runtime bool) *Registry {
	reg := prometheus.NewRegistry()
	if runtime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	r := &Registry{
		registry: reg,
		RehashesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rehashes_total",
			Help:      "Number of completed rehashes",
		}, []string{"table", "reason"}),
		RehashDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "rehash_duration_seconds",
			Help:      "Time spent redistributing pairs during a rehash",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"table", "reason"}),
		OperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Number of table operations by result",
		}, []string{"table", "op", "result"}),
	}

	reg.MustRegister(r.RehashesTotal, r.RehashDuration, r.OperationsTotal)
	return r
}

// Handler returns an HTTP handler serving r in Prometheus format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Register adds a collector, such as a TableCollector, to r.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// RehashObserver returns a hashmap.Observer recording rehashes of the
// named table.
func (r *Registry) RehashObserver(table string) hashmap.Observer {
	return hashmap.ObserverFunc(func(e hashmap.RehashEvent) {
		reason := string(e.Reason)
		r.RehashesTotal.WithLabelValues(table, reason).Inc()
		r.RehashDuration.WithLabelValues(table, reason).Observe(e.Duration.Seconds())
	})
}

// RecordOperation counts one operation on table with its result
// (e.g. "ok", "miss", "error").
func (r *Registry) RecordOperation(table, op, result string) {
	r.OperationsTotal.WithLabelValues(table, op, result).Inc()
}

// WriteText writes every gathered metric family to w in the Prometheus
// text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
