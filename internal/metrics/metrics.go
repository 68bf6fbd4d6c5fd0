// Package metrics exposes the engine's Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	discoveryRuns     *prometheus.CounterVec
	discoveryDuration prometheus.Histogram
	validatedPatterns *prometheus.GaugeVec
	signalsFound      *prometheus.CounterVec
	fetchesTotal      *prometheus.CounterVec
	fetchDuration     prometheus.Histogram
	cacheLookups      *prometheus.CounterVec
	watchCycles       prometheus.Counter
	watchDuration     prometheus.Histogram
	watchSymbols      prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		discoveryRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_discovery_runs_total",
				Help: "Total number of discovery pipeline runs",
			},
			[]string{"status"},
		),
		discoveryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "prospect_discovery_duration_seconds",
				Help:    "Discovery pipeline duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		validatedPatterns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "prospect_validated_patterns",
				Help: "Validated patterns in the latest catalog per symbol",
			},
			[]string{"symbol"},
		),
		signalsFound: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_signals_found_total",
				Help: "Total number of catalog signals found",
			},
			[]string{"symbol", "pattern"},
		),
		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_fetches_total",
				Help: "Total number of bar history fetches",
			},
			[]string{"provider", "status"},
		),
		fetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "prospect_fetch_duration_seconds",
				Help:    "Bar history fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prospect_bar_cache_lookups_total",
				Help: "Bar cache lookups by result",
			},
			[]string{"result"},
		),
		watchCycles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "prospect_watch_cycles_total",
				Help: "Total number of completed watch cycles",
			},
		),
		watchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "prospect_watch_cycle_duration_seconds",
				Help:    "Watch cycle duration in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
		),
		watchSymbols: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "prospect_watch_symbols",
				Help: "Number of symbols in the watch rotation",
			},
		),
	}

	reg.MustRegister(r.discoveryRuns)
	reg.MustRegister(r.discoveryDuration)
	reg.MustRegister(r.validatedPatterns)
	reg.MustRegister(r.signalsFound)
	reg.MustRegister(r.fetchesTotal)
	reg.MustRegister(r.fetchDuration)
	reg.MustRegister(r.cacheLookups)
	reg.MustRegister(r.watchCycles)
	reg.MustRegister(r.watchDuration)
	reg.MustRegister(r.watchSymbols)

	return r
}

// RecordDiscovery records a discovery pipeline run.
func (r *Registry) RecordDiscovery(status string, duration float64) {
	r.discoveryRuns.WithLabelValues(status).Inc()
	r.discoveryDuration.Observe(duration)
}

// SetValidatedPatterns sets the validated pattern count for a symbol.
func (r *Registry) SetValidatedPatterns(symbol string, count int) {
	r.validatedPatterns.WithLabelValues(symbol).Set(float64(count))
}

// RecordSignal records a catalog signal firing.
func (r *Registry) RecordSignal(symbol, pattern string) {
	r.signalsFound.WithLabelValues(symbol, pattern).Inc()
}

// RecordFetch records a bar history fetch.
func (r *Registry) RecordFetch(provider, status string, duration float64) {
	r.fetchesTotal.WithLabelValues(provider, status).Inc()
	r.fetchDuration.Observe(duration)
}

// RecordCacheLookup records a bar cache hit or miss.
func (r *Registry) RecordCacheLookup(result string) {
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordWatchCycle records a completed watch cycle.
func (r *Registry) RecordWatchCycle(duration float64) {
	r.watchCycles.Inc()
	r.watchDuration.Observe(duration)
}

// SetWatchSymbols sets the watch rotation size.
func (r *Registry) SetWatchSymbols(count int) {
	r.watchSymbols.Set(float64(count))
}

// Handler returns an http.Handler serving the registry in the Prometheus
// text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}
