package commands

import (
	"context"
	"log/slog"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/observability/metrics"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/shared"

	"go.opentelemetry.io/otel/attribute"
)

type AnswerResult struct {
	Count      int
	IsComplete bool
}

type IntakeCommands interface {
	RecordAnswer(ctx context.Context, bookingID, question, answer string) (*AnswerResult, error)
}

type intakeCommandsImpl struct {
	uow     shared.UnitOfWork
	metrics *metrics.IntakeMetrics
	logger  *slog.Logger
}

func NewIntakeCommands(uow shared.UnitOfWork, m *metrics.IntakeMetrics, logger *slog.Logger) IntakeCommands {
	return &intakeCommandsImpl{uow: uow, metrics: m, logger: logger}
}

// RecordAnswer appends without checking the question against the one issued.
func (uc *intakeCommandsImpl) RecordAnswer(ctx context.Context, bookingID, question, answer string) (*AnswerResult, error) {
	ctx, span := tracer.Start(ctx, "intake.record_answer")
	defer span.End()
	span.SetAttributes(attribute.String("previsit.booking_id", bookingID))

	var count int
	err := uc.uow.WithinBooking(ctx, bookingID, func(ctx context.Context, tx shared.RecordTx) error {
		history, err := tx.History(ctx)
		if err != nil {
			return err
		}

		session := intake.NewSession(bookingID, history)
		pair := intake.QAPair{Question: question, Answer: answer}
		if err := session.Append(pair); err != nil {
			if errs.Is(err, errs.ErrIntakeComplete) {
				return &IntakeCompleteError{Count: session.Count()}
			}
			return err
		}

		if err := tx.AppendAnswer(ctx, session.Count()-1, pair); err != nil {
			return err
		}
		count = session.Count()
		return nil
	})
	if err != nil {
		span.RecordError(err)
		if errs.Is(err, errs.ErrIntakeComplete) {
			uc.metrics.ObserveAnswer(metrics.OutcomeRejected)
		} else {
			uc.metrics.ObserveAnswer(metrics.OutcomeError)
		}
		return nil, err
	}

	uc.metrics.ObserveAnswer(metrics.OutcomeRecorded)
	span.SetAttributes(attribute.Int("previsit.answer_count", count))
	uc.logger.InfoContext(ctx, "intake answer recorded",
		"booking_id", bookingID,
		"count", count)

	return &AnswerResult{Count: count, IsComplete: intake.IsComplete(count)}, nil
}
