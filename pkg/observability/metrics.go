package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec

	// Event metrics
	EventsPublished *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace.
// Each collector owns its registry so tests can build as many as they need.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	storeOperations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of entity store operations",
		},
		[]string{"collection", "operation", "outcome"},
	)

	storeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Entity store operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"collection", "operation"},
	)

	eventsPublished := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of lifecycle events handed to the event bus",
		},
		[]string{"event_type", "status"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		storeOperations,
		storeDuration,
		eventsPublished,
	)

	return &Collector{
		registry:        registry,
		HTTPRequests:    httpRequests,
		HTTPDuration:    httpDuration,
		StoreOperations: storeOperations,
		StoreDuration:   storeDuration,
		EventsPublished: eventsPublished,
	}
}

// RecordStoreOperation records the outcome and duration of a store call.
// It is safe to call on a nil collector.
func (c *Collector) RecordStoreOperation(collection, operation, outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.StoreOperations.WithLabelValues(collection, operation, outcome).Inc()
	c.StoreDuration.WithLabelValues(collection, operation).Observe(duration.Seconds())
}

// RecordHTTPRequest records a served HTTP request
func (c *Collector) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordEventPublished records the result of a publish attempt
func (c *Collector) RecordEventPublished(eventType, status string) {
	if c == nil {
		return
	}
	c.EventsPublished.WithLabelValues(eventType, status).Inc()
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler exposes the collector registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
