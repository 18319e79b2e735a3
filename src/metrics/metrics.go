// Package metrics holds the service's Prometheus collectors, exposed at
// GET /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmoasis_http_requests_total",
		Help: "Total HTTP requests handled.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "filmoasis_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	HTTPInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filmoasis_http_requests_in_flight",
		Help: "Requests currently being served.",
	})

	StatisticsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "filmoasis_statistics_duration_seconds",
		Help:    "Time to compute the statistics report.",
		Buckets: prometheus.DefBuckets,
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmoasis_catalog_events_published_total",
		Help: "Catalog events published, by event type and sink.",
	}, []string{"type", "sink"})

	EventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmoasis_catalog_events_dropped_total",
		Help: "Catalog events that could not be delivered, by sink.",
	}, []string{"sink"})

	EventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filmoasis_catalog_event_subscribers",
		Help: "Connected catalog event subscribers.",
	})

	ArtworkMirrored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmoasis_artwork_mirrored_total",
		Help: "Artwork images processed by the mirror job, by result.",
	}, []string{"result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
