package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/observability/metrics"
	"previsit-intake/internal/pkg/ptr"
	"previsit-intake/internal/usecase/shared"
)

type NextQuestionResult struct {
	// Question is nil when the intake is complete or no question is
	// available right now.
	Question   *string
	Count      int
	IsComplete bool
}

type HistoryView struct {
	BookingID  string
	History    []intake.QAPair
	Count      int
	IsComplete bool
	Report     *ReportView
}

type IntakeQueries interface {
	History(ctx context.Context, bookingID string) (*HistoryView, error)
	NextQuestion(ctx context.Context, bookingID string) (*NextQuestionResult, error)
}

type intakeQueriesImpl struct {
	reads     shared.Reads
	generator shared.QuestionGenerator
	cache     shared.QuestionCache
	timeout   time.Duration
	metrics   *metrics.IntakeMetrics
	logger    *slog.Logger
}

func NewIntakeQueries(
	uow shared.UnitOfWork,
	generator shared.QuestionGenerator,
	cache shared.QuestionCache,
	timeout time.Duration,
	m *metrics.IntakeMetrics,
	logger *slog.Logger,
) IntakeQueries {
	return &intakeQueriesImpl{
		reads:     uow.Reads(),
		generator: generator,
		cache:     cache,
		timeout:   timeout,
		metrics:   m,
		logger:    logger,
	}
}

func (q *intakeQueriesImpl) History(ctx context.Context, bookingID string) (*HistoryView, error) {
	record, err := q.reads.Record(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	view := &HistoryView{
		BookingID:  bookingID,
		History:    record.History,
		Count:      record.Count(),
		IsComplete: intake.IsComplete(record.Count()),
	}
	if view.History == nil {
		view.History = []intake.QAPair{}
	}
	if record.Report != nil {
		view.Report = NewReportView(record.Booking, record.Report)
	}
	return view, nil
}

// NextQuestion never fails because of the generator; failures degrade to a
// nil question.
func (q *intakeQueriesImpl) NextQuestion(ctx context.Context, bookingID string) (*NextQuestionResult, error) {
	record, err := q.reads.Record(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	count := record.Count()
	result := &NextQuestionResult{Count: count, IsComplete: intake.IsComplete(count)}
	if result.IsComplete {
		q.metrics.ObserveQuestion(metrics.SourceComplete)
		return result, nil
	}

	if cached, ok := q.cachedQuestion(ctx, bookingID, count); ok {
		q.metrics.ObserveQuestion(metrics.SourceCache)
		result.Question = ptr.Of(cached)
		return result, nil
	}

	question, ok := q.generate(ctx, bookingID, record.History)
	if !ok {
		q.metrics.ObserveQuestion(metrics.SourceUnavailable)
		return result, nil
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, bookingID, count, question); err != nil {
			q.logger.WarnContext(ctx, "failed to cache question",
				"booking_id", bookingID,
				"error", err)
		}
	}
	q.metrics.ObserveQuestion(metrics.SourceGenerator)
	result.Question = ptr.Of(question)
	return result, nil
}

func (q *intakeQueriesImpl) cachedQuestion(ctx context.Context, bookingID string, count int) (string, bool) {
	if q.cache == nil {
		return "", false
	}
	question, ok, err := q.cache.Get(ctx, bookingID, count)
	if err != nil {
		q.logger.WarnContext(ctx, "question cache lookup failed",
			"booking_id", bookingID,
			"error", err)
		return "", false
	}
	return question, ok
}

func (q *intakeQueriesImpl) generate(ctx context.Context, bookingID string, history []intake.QAPair) (string, bool) {
	if q.generator == nil {
		return "", false
	}

	started := time.Now()
	question, err := shared.CallWithTimeout(ctx, q.timeout, func(ctx context.Context) (string, error) {
		return q.generator.NextQuestion(ctx, history)
	})
	q.metrics.ObserveGenerator(metrics.KindQuestion, err, time.Since(started))
	if err != nil {
		q.logger.WarnContext(ctx, "question generator failed",
			"booking_id", bookingID,
			"count", len(history),
			"error", err)
		return "", false
	}

	question = strings.TrimSpace(question)
	if question == "" {
		q.logger.WarnContext(ctx, "question generator returned no question",
			"booking_id", bookingID,
			"count", len(history))
		return "", false
	}
	return question, true
}
