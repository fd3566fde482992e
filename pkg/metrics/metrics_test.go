package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecorders(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "test")

	m.RecordBookingCreated()
	m.RecordBookingCreated()
	m.RecordBookingConflict()
	m.RecordPaymentFailure("create")
	m.RecordStatusTransition("pending", "confirmed", "reconciler")

	assert.Equal(t, 2.0, counterValue(t, m.BookingsCreated))
	assert.Equal(t, 1.0, counterValue(t, m.BookingConflicts))
	assert.Equal(t, 1.0, counterValue(t, m.PaymentFailures.WithLabelValues("create")))
	assert.Equal(t, 1.0, counterValue(t, m.StatusTransitions.WithLabelValues("pending", "confirmed", "reconciler")))
}

func TestRecorders_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordBookingCreated()
		m.RecordBookingConflict()
		m.RecordPaymentFailure("create")
		m.RecordStatusTransition("pending", "cancelled", "admin")
		m.RecordReconcilerRun("ok")
		m.RecordTxRetry()
	})
}
