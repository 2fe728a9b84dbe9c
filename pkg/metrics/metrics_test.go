package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordConflict("overlaps_appointment")
		m.RecordQuotaRejection("appointments")
		m.ObserveHTTPRequest(http.MethodGet, "/x", 200, time.Millisecond)
		m.ObserveDBCall("query", time.Millisecond, nil)
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := New("test")

	m.RecordConflict("overlaps_break")
	m.RecordConflict("overlaps_break")
	m.RecordQuotaRejection("staff")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues("overlaps_break")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quotaRejections.WithLabelValues("staff")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("test")
	m.RecordTransition("confirmed")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "saloneo_scheduling_status_transitions_total")
}
