package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "irs")

	m.BookingCreated()
	m.BookingCreated()
	m.BookingCanceled(true)
	m.PenaltyIssued("LateCancellation")
	m.CheckedIn(false)
	m.CheckedOut(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("irs")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCanceled.WithLabelValues("irs", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PenaltiesIssued.WithLabelValues("irs", "LateCancellation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckIns.WithLabelValues("irs", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckOuts.WithLabelValues("irs", "true")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.BookingCreated()
		m.BookingCanceled(false)
		m.PenaltyIssued("LateCheckIn")
		m.CheckedIn(true)
		m.CheckedOut(false)
	})
	assert.Equal(t, "", m.ServiceName())
}
