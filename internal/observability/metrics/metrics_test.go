//go:build unit

package metrics_test

import (
	"errors"
	"testing"
	"time"

	"previsit-intake/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIntakeMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewIntakeMetrics(reg)

	m.ObserveBooking(metrics.OutcomeCreated)
	m.ObserveBooking(metrics.OutcomeConflict)
	m.ObserveBooking(metrics.OutcomeConflict)
	m.ObserveAnswer(metrics.OutcomeRecorded)
	m.ObserveQuestion(metrics.SourceCache)
	m.ObserveReport(metrics.OutcomeGenerated)
	m.ObserveGenerator(metrics.KindReport, nil, 250*time.Millisecond)
	m.ObserveGenerator(metrics.KindQuestion, errors.New("boom"), time.Second)

	count, err := promtest.GatherAndCount(reg,
		"previsit_calendar_bookings_total",
		"previsit_generator_duration_seconds",
	)
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestIntakeMetricsNilSafe(t *testing.T) {
	var m *metrics.IntakeMetrics
	m.ObserveBooking(metrics.OutcomeCreated)
	m.ObserveAnswer(metrics.OutcomeRejected)
	m.ObserveQuestion(metrics.SourceGenerator)
	m.ObserveReport(metrics.OutcomeFailed)
	m.ObserveGenerator(metrics.KindReport, nil, time.Millisecond)
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)

	m.Observe("POST", "/api/calendar/events", "201", 10*time.Millisecond)
	m.Observe("POST", "/api/calendar/events", "409", 5*time.Millisecond)

	count, err := promtest.GatherAndCount(reg, "previsit_http_requests_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)

	var nilMetrics *metrics.HTTPMetrics
	nilMetrics.Observe("GET", "/health", "200", time.Millisecond)
}
