package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "previsit"

// IntakeMetrics exposes counters/histograms for booking and intake flows.
// A nil *IntakeMetrics is valid and records nothing.
type IntakeMetrics struct {
	bookingsTotal     *prometheus.CounterVec
	answersTotal      *prometheus.CounterVec
	questionsTotal    *prometheus.CounterVec
	reportsTotal      *prometheus.CounterVec
	generatorDuration *prometheus.HistogramVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calendar",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		answersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "answers_total",
			Help:      "Recorded intake answers by outcome",
		}, []string{"outcome"}),
		questionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "questions_total",
			Help:      "Next-question requests by source",
		}, []string{"source"}),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "generated_total",
			Help:      "Report generation requests by outcome",
		}, []string{"outcome"}),
		generatorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "duration_seconds",
			Help:      "Latency of external question/report generator calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.answersTotal, m.questionsTotal, m.reportsTotal, m.generatorDuration)
	return m
}

// Outcome labels
const (
	OutcomeCreated    = "created"
	OutcomeConflict   = "conflict"
	OutcomeInvalid    = "invalid"
	OutcomeDuplicate  = "duplicate"
	OutcomeRecorded   = "recorded"
	OutcomeRejected   = "rejected"
	OutcomeGenerated  = "generated"
	OutcomeMemoized   = "memoized"
	OutcomeIncomplete = "incomplete"
	OutcomeFailed     = "failed"
	OutcomeError      = "error"

	SourceGenerator   = "generator"
	SourceCache       = "cache"
	SourceUnavailable = "unavailable"
	SourceComplete    = "complete"

	KindQuestion = "question"
	KindReport   = "report"
)

func (m *IntakeMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *IntakeMetrics) ObserveAnswer(outcome string) {
	if m == nil {
		return
	}
	m.answersTotal.WithLabelValues(outcome).Inc()
}

func (m *IntakeMetrics) ObserveQuestion(source string) {
	if m == nil {
		return
	}
	m.questionsTotal.WithLabelValues(source).Inc()
}

func (m *IntakeMetrics) ObserveReport(outcome string) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(outcome).Inc()
}

func (m *IntakeMetrics) ObserveGenerator(kind string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.generatorDuration.WithLabelValues(kind, status).Observe(elapsed.Seconds())
}

// HTTPMetrics tracks request counts and latency per matched route.
// A nil *HTTPMetrics is valid and records nothing.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

func (m *HTTPMetrics) Observe(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
