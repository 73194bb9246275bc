package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.ObserveAdmission("admitted")
	m.ObserveAdmission("admitted")
	m.ObserveAdmission("slot_conflict")
	m.ObserveTransition("pending", "confirmed", "administrator")
	m.ObserveHTTPRequest("POST", "/api/v1/reservations", 201, 10*time.Millisecond)
	m.ObserveDBQuery("QueryContext", time.Millisecond, errors.New("boom"))
	m.SetDBStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.admissionDecisions.WithLabelValues("admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.admissionDecisions.WithLabelValues("slot_conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lifecycleTransitions.WithLabelValues("pending", "confirmed", "administrator")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/reservations", "201")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbConnections.WithLabelValues("in_use")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAdmission("admitted")
		m.ObserveTransition("a", "b", "c")
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDBQuery("ExecContext", time.Second, nil)
		m.SetDBStats(sql.DBStats{})
	})
}
