// Package metrics exposes Prometheus instrumentation for the fulfillment
// service. A single Metrics value is created at startup and shared by the
// HTTP layer and background jobs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	orderTransitions  *prometheus.CounterVec
	tripTransitions   *prometheus.CounterVec
	bulkTargets       *prometheus.CounterVec
	scheduledReleases prometheus.Counter
}

// New creates a Metrics value with all collectors registered on a private
// registry, alongside the standard Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_order_transitions_total",
			Help: "Order lifecycle transitions, labelled by action and outcome.",
		}, []string{"action", "outcome"}),
		tripTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_trip_transitions_total",
			Help: "Trip lifecycle transitions, labelled by action and outcome.",
		}, []string{"action", "outcome"}),
		bulkTargets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_bulk_targets_total",
			Help: "Bulk action targets, labelled by action and outcome.",
		}, []string{"action", "outcome"}),
		scheduledReleases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_scheduled_orders_released_total",
			Help: "Scheduled orders promoted to the active queue by the release job.",
		}),
	}

	registry.MustRegister(m.orderTransitions, m.tripTransitions, m.bulkTargets, m.scheduledReleases)
	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveOrderTransition records one order transition attempt.
func (m *Metrics) ObserveOrderTransition(action string, err error) {
	m.orderTransitions.WithLabelValues(action, outcome(err)).Inc()
}

// ObserveTripTransition records one trip transition attempt.
func (m *Metrics) ObserveTripTransition(action string, err error) {
	m.tripTransitions.WithLabelValues(action, outcome(err)).Inc()
}

// ObserveBulkTargets records the per-target outcome counts of a bulk action.
func (m *Metrics) ObserveBulkTargets(action string, succeeded, failed int) {
	m.bulkTargets.WithLabelValues(action, "success").Add(float64(succeeded))
	m.bulkTargets.WithLabelValues(action, "failure").Add(float64(failed))
}

// ObserveScheduledReleases records orders promoted by the release job.
func (m *Metrics) ObserveScheduledReleases(count int) {
	m.scheduledReleases.Add(float64(count))
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
