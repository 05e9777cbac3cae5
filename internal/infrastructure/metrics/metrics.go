// Package metrics exposes storefront counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pupuk/storefront/internal/domain/region"
)

// Checkout outcomes.
const (
	OutcomeSuccess          = "success"
	OutcomeRejected         = "rejected"
	OutcomeSubmissionFailed = "submission_failed"
)

// Registry owns a private Prometheus registry and the storefront metrics.
type Registry struct {
	registry *prometheus.Registry

	checkoutTotal        *prometheus.CounterVec
	regionLookupsTotal   *prometheus.CounterVec
	regionLookupDuration *prometheus.HistogramVec
	ordersPlacedAmount   prometheus.Counter
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
}

// New creates the metrics and registers them together with the Go runtime
// and process collectors.
func New(namespace string) *Registry {
	if namespace == "" {
		namespace = "storefront"
	}
	r := &Registry{
		registry: prometheus.NewRegistry(),
		checkoutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkout attempts by outcome and reason.",
		}, []string{"outcome", "reason"}),
		regionLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "region_lookups_total",
			Help:      "Region directory lookups by level and result.",
		}, []string{"level", "result"}),
		regionLookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "region_lookup_duration_seconds",
			Help:      "Region directory lookup latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"level"}),
		ordersPlacedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_amount_rupiah_total",
			Help:      "Sum of order totals submitted through checkout.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status class.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.registry.MustRegister(
		r.checkoutTotal,
		r.regionLookupsTotal,
		r.regionLookupDuration,
		r.ordersPlacedAmount,
		r.httpRequestsTotal,
		r.httpRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveRegionLookup implements regionapi.Observer
func (r *Registry) ObserveRegionLookup(level region.Level, ok bool, elapsed time.Duration) {
	result := "ok"
	if !ok {
		result = "error"
	}
	r.regionLookupsTotal.WithLabelValues(level.String(), result).Inc()
	r.regionLookupDuration.WithLabelValues(level.String()).Observe(elapsed.Seconds())
}

// ObserveCheckout counts one checkout attempt. reason is empty on success.
func (r *Registry) ObserveCheckout(outcome, reason string, amount float64) {
	r.checkoutTotal.WithLabelValues(outcome, reason).Inc()
	if outcome == OutcomeSuccess && amount > 0 {
		r.ordersPlacedAmount.Add(amount)
	}
}

// ObserveHTTPRequest records one served request. route is the matched
// route template, never the raw path.
func (r *Registry) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status/100)+"xx").Inc()
	r.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry, mostly for tests
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
