package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the inventory service.
// Tracks item and photo lifecycle counts and request durations.
type Metrics struct {
	registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	ItemsRegistered prometheus.Counter
	ItemsDeleted    prometheus.Counter
	PhotosStored    prometheus.Counter
	PhotosDeleted   prometheus.Counter
}

// New creates a Metrics instance registered on its own registry, together
// with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "inventory_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
		ItemsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_items_registered_total",
			Help: "Total number of items registered",
		}),
		ItemsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_items_deleted_total",
			Help: "Total number of items deleted",
		}),
		PhotosStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_photos_stored_total",
			Help: "Total number of photo files written",
		}),
		PhotosDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_photos_deleted_total",
			Help: "Total number of photo files removed",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records the duration of a request.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
