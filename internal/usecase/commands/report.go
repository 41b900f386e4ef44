package commands

import (
	"context"
	"log/slog"
	"time"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/observability/metrics"
	"previsit-intake/internal/pkg/clock"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/shared"

	"go.opentelemetry.io/otel/attribute"
)

type GenerateReportInput struct {
	BookingID string
	// Regenerate overwrites an existing report instead of returning it.
	Regenerate bool
}

type GenerateReportResult struct {
	Report *report.Report
	// Memoized is true when an existing report was returned as is.
	Memoized bool
}

type ReportCommands interface {
	GenerateReport(ctx context.Context, input GenerateReportInput) (*GenerateReportResult, error)
}

type reportCommandsImpl struct {
	uow       shared.UnitOfWork
	generator shared.ReportGenerator
	timeout   time.Duration
	clock     clock.Clock
	metrics   *metrics.IntakeMetrics
	logger    *slog.Logger
}

func NewReportCommands(
	uow shared.UnitOfWork,
	generator shared.ReportGenerator,
	timeout time.Duration,
	clk clock.Clock,
	m *metrics.IntakeMetrics,
	logger *slog.Logger,
) ReportCommands {
	return &reportCommandsImpl{
		uow:       uow,
		generator: generator,
		timeout:   timeout,
		clock:     clk,
		metrics:   m,
		logger:    logger,
	}
}

func (uc *reportCommandsImpl) GenerateReport(ctx context.Context, input GenerateReportInput) (*GenerateReportResult, error) {
	ctx, span := tracer.Start(ctx, "report.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("previsit.booking_id", input.BookingID),
		attribute.Bool("previsit.regenerate", input.Regenerate),
	)

	record, err := uc.uow.Reads().Record(ctx, input.BookingID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if record.Report != nil && !input.Regenerate {
		uc.metrics.ObserveReport(metrics.OutcomeMemoized)
		return &GenerateReportResult{Report: record.Report, Memoized: true}, nil
	}

	if !intake.IsComplete(record.Count()) {
		uc.metrics.ObserveReport(metrics.OutcomeIncomplete)
		return nil, NewIncompleteError(record.Count())
	}

	// A complete history cannot change, so the generator runs outside the
	// booking lock on this snapshot.
	content, err := uc.generate(ctx, shared.NewReportSubject(record.Booking), record.History)
	if err != nil {
		span.RecordError(err)
		uc.metrics.ObserveReport(metrics.OutcomeFailed)
		uc.logger.ErrorContext(ctx, "report generation failed",
			"booking_id", input.BookingID,
			"error", err)
		return nil, err
	}

	var result GenerateReportResult
	err = uc.uow.WithinBooking(ctx, input.BookingID, func(ctx context.Context, tx shared.RecordTx) error {
		history, err := tx.History(ctx)
		if err != nil {
			return err
		}
		if !intake.IsComplete(len(history)) {
			return NewIncompleteError(len(history))
		}

		if !input.Regenerate {
			existing, err := tx.Report(ctx)
			if err != nil {
				return err
			}
			if existing != nil {
				result = GenerateReportResult{Report: existing, Memoized: true}
				return nil
			}
		}

		rep := report.NewReport(input.BookingID, content, uc.clock.Now())
		if err := tx.SaveReport(ctx, rep); err != nil {
			return err
		}
		result = GenerateReportResult{Report: rep}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		uc.metrics.ObserveReport(metrics.OutcomeError)
		return nil, err
	}

	if result.Memoized {
		uc.metrics.ObserveReport(metrics.OutcomeMemoized)
	} else {
		uc.metrics.ObserveReport(metrics.OutcomeGenerated)
		uc.logger.InfoContext(ctx, "report generated", "booking_id", input.BookingID)
	}
	return &result, nil
}

func (uc *reportCommandsImpl) generate(ctx context.Context, subject shared.ReportSubject, history []intake.QAPair) (report.Content, error) {
	if uc.generator == nil {
		return report.Content{}, &GeneratorError{Kind: metrics.KindReport, Err: errs.ErrGeneratorUnavailable}
	}

	started := time.Now()
	content, err := shared.CallWithTimeout(ctx, uc.timeout, func(ctx context.Context) (report.Content, error) {
		return uc.generator.Generate(ctx, subject, history)
	})
	uc.metrics.ObserveGenerator(metrics.KindReport, err, time.Since(started))
	if err != nil {
		return report.Content{}, &GeneratorError{Kind: metrics.KindReport, Err: err}
	}
	return content, nil
}
