package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements every hook interface with Prometheus metrics.
// It is safe for concurrent use.
type PrometheusHooks struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationResults  *prometheus.HistogramVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	requestErrors    *prometheus.CounterVec
}

// NewPrometheusHooks registers the kegg_* metrics with registry.
func NewPrometheusHooks(registry prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(registry)
	return &PrometheusHooks{
		operationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kegg_operations_total",
				Help: "Total number of KEGG operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		operationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kegg_operation_duration_seconds",
				Help:    "Duration of KEGG operations including fetch and parse",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		operationResults: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kegg_operation_results",
				Help:    "Number of parsed items returned by KEGG operations",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"operation"},
		),
		cacheHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kegg_cache_hits_total",
				Help: "Total number of response cache hits",
			},
			[]string{"namespace"},
		),
		cacheMisses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kegg_cache_misses_total",
				Help: "Total number of response cache misses",
			},
			[]string{"namespace"},
		),
		cacheBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kegg_cache_written_bytes_total",
				Help: "Total bytes written to the response cache",
			},
			[]string{"namespace"},
		),
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kegg_http_requests_total",
				Help: "Total number of HTTP requests sent to KEGG",
			},
			[]string{"host", "status_code"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kegg_http_request_duration_seconds",
				Help:    "Duration of HTTP requests sent to KEGG",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"host"},
		),
		requestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "kegg_http_requests_in_flight",
				Help: "Number of HTTP requests to KEGG currently in flight",
			},
		),
		requestErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kegg_http_request_errors_total",
				Help: "Total number of HTTP requests that failed without a response",
			},
			[]string{"host"},
		),
	}
}

func (p *PrometheusHooks) OnOperationStart(context.Context, string) {}

func (p *PrometheusHooks) OnOperationComplete(_ context.Context, op string, results int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.operationsTotal.WithLabelValues(op, outcome).Inc()
	p.operationDuration.WithLabelValues(op).Observe(d.Seconds())
	if err == nil {
		p.operationResults.WithLabelValues(op).Observe(float64(results))
	}
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, ns string) {
	p.cacheHits.WithLabelValues(ns).Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, ns string) {
	p.cacheMisses.WithLabelValues(ns).Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, ns string, size int) {
	p.cacheBytes.WithLabelValues(ns).Add(float64(size))
}

func (p *PrometheusHooks) OnRequest(context.Context, string, string, string) {
	p.requestsInFlight.Inc()
}

func (p *PrometheusHooks) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	p.requestsInFlight.Dec()
	p.requestsTotal.WithLabelValues(host, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	p.requestsInFlight.Dec()
	p.requestErrors.WithLabelValues(host).Inc()
}

var (
	_ OperationHooks = (*PrometheusHooks)(nil)
	_ CacheHooks     = (*PrometheusHooks)(nil)
	_ HTTPHooks      = (*PrometheusHooks)(nil)
)
