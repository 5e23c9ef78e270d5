// Package metrics exposes Prometheus collectors for draws and HTTP traffic.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service records into.
type Metrics struct {
	DrawsTotal          *prometheus.CounterVec
	DrawDuration        prometheus.Histogram
	TicketsBurned       prometheus.Counter
	TicketsSkipped      prometheus.Counter
	ParticipantsLoaded  prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge
}

// New registers all collectors with reg. Passing a fresh registry keeps
// tests independent of the global default registerer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DrawsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "raffle_draws_total",
			Help: "Total number of draws by outcome",
		}, []string{"status"}),
		DrawDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "raffle_draw_duration_seconds",
			Help:    "Duration of a complete draw including persistence",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		TicketsBurned: f.NewCounter(prometheus.CounterOpts{
			Name: "raffle_tickets_burned_total",
			Help: "Tickets discarded because their owner had already won",
		}),
		TicketsSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "raffle_tickets_skipped_total",
			Help: "Tickets routed to the skipped queue by the consolation filter",
		}),
		ParticipantsLoaded: f.NewGauge(prometheus.GaugeOpts{
			Name: "raffle_participants",
			Help: "Participants in the current pool",
		}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "raffle_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "raffle_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "raffle_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
	}
}

// ObserveDraw records a finished draw. Call with time.Now() at the start.
func (m *Metrics) ObserveDraw(status string, start time.Time, burned, skipped int) {
	m.DrawsTotal.WithLabelValues(status).Inc()
	m.DrawDuration.Observe(time.Since(start).Seconds())
	m.TicketsBurned.Add(float64(burned))
	m.TicketsSkipped.Add(float64(skipped))
}

// SetParticipants records the size of the current pool.
func (m *Metrics) SetParticipants(n int) {
	m.ParticipantsLoaded.Set(float64(n))
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
