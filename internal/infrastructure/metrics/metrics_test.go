package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.Reservation("RESERVAR", OutcomeSuccess)
	r.Reservation("RESERVAR", OutcomeSuccess)
	r.Reservation("RESTAR", OutcomeTransport)
	r.Checkout(OutcomeRejected)
	r.SessionOpened()
	r.SessionOpened()
	r.SessionClosed()
	r.BackendCall("pos/CreateInvoice", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(r.reservations.WithLabelValues("RESERVAR", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reservations.WithLabelValues("RESTAR", OutcomeTransport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.checkouts.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.openSessions))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Reservation("RESERVAR", OutcomeSuccess)
		r.Checkout(OutcomeSuccess)
		r.SessionOpened()
		r.SessionClosed()
		r.BackendCall("x", time.Now())
	})
}
