package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/racha-league/internal/platform/resilience"
)

const metricsNamespace = "racha"

// Metrics owns the service's Prometheus registry. It satisfies
// usecase.RankingObserver and records HTTP traffic for the router.
type Metrics struct {
	registry *prometheus.Registry

	anomalies    *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	computation  *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	circuitState *prometheus.GaugeVec
	warmupTasks  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Metrics{
		registry: registry,
		anomalies: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "ranking",
			Name:      "data_anomalies_total",
			Help:      "Presences skipped by the ranking engine, by reason.",
		}, []string{"reason"}),
		cacheLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "ranking",
			Name:      "cache_lookups_total",
			Help:      "Ranking cache lookups by result kind and outcome.",
		}, []string{"kind", "result"}),
		computation: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "ranking",
			Name:      "computation_seconds",
			Help:      "Time spent aggregating and ranking one snapshot.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"kind"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		circuitState: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "dependency",
			Name:      "circuit_state",
			Help:      "Circuit breaker state per dependency: 0 closed, 1 half-open, 2 open.",
		}, []string{"dependency"}),
		warmupTasks: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "warmup",
			Name:      "tasks_total",
			Help:      "Cache warm-up tasks by outcome.",
		}, []string{"status"}),
	}
}

func (m *Metrics) ObserveAnomaly(reason string) {
	m.anomalies.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveCache(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) ObserveComputation(kind string, elapsed time.Duration) {
	m.computation.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveWarmupTask(ok bool) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	m.warmupTasks.WithLabelValues(status).Inc()
}

// TrackCircuit mirrors breaker transitions into the circuit_state gauge.
func (m *Metrics) TrackCircuit(dependency string, breaker *resilience.CircuitBreaker) {
	if breaker == nil {
		return
	}
	gauge := m.circuitState.WithLabelValues(dependency)
	gauge.Set(circuitValue(breaker.State()))
	breaker.OnStateChange(func(_, to resilience.CircuitState) {
		gauge.Set(circuitValue(to))
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func circuitValue(state resilience.CircuitState) float64 {
	switch state {
	case resilience.CircuitStateHalfOpen:
		return 1
	case resilience.CircuitStateOpen:
		return 2
	default:
		return 0
	}
}
