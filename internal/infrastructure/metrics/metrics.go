package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels shared by reservation and checkout counters.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomePartial   = "partial"
	OutcomeTransport = "transport_error"
)

// Recorder publishes register activity. A nil Recorder is valid and records nothing.
type Recorder struct {
	reservations    *prometheus.CounterVec
	checkouts       *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	openSessions    prometheus.Gauge
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "stock_reservations_total",
			Help:      "Stock reservation calls by action and outcome.",
		}, []string{"action", "outcome"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pos",
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls to the retail backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		openSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pos",
			Name:      "open_invoice_sessions",
			Help:      "Invoice sessions currently open across all registers.",
		}),
	}
	reg.MustRegister(r.reservations, r.checkouts, r.backendDuration, r.openSessions)
	return r
}

func (r *Recorder) Reservation(action, outcome string) {
	if r == nil {
		return
	}
	r.reservations.WithLabelValues(action, outcome).Inc()
}

func (r *Recorder) Checkout(outcome string) {
	if r == nil {
		return
	}
	r.checkouts.WithLabelValues(outcome).Inc()
}

func (r *Recorder) BackendCall(endpoint string, started time.Time) {
	if r == nil {
		return
	}
	r.backendDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}

func (r *Recorder) SessionOpened() {
	if r == nil {
		return
	}
	r.openSessions.Inc()
}

func (r *Recorder) SessionClosed() {
	if r == nil {
		return
	}
	r.openSessions.Dec()
}
