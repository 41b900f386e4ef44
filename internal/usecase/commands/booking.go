package commands

import (
	"context"
	"log/slog"
	"time"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/observability/metrics"
	"previsit-intake/internal/pkg/clock"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/shared"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("previsit.usecase.commands")

type CreateBookingInput struct {
	// ID is optional; a uuid is assigned when empty.
	ID          string
	PatientName string
	PhoneNumber string
	DoctorName  string
	Start       time.Time
	End         time.Time
	Timezone    string
	Notes       string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics *metrics.IntakeMetrics
	logger  *slog.Logger
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, m *metrics.IntakeMetrics, logger *slog.Logger) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clk, metrics: m, logger: logger}
}

func (uc *bookingCommandsImpl) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.create")
	defer span.End()

	candidate, err := booking.NewBooking(&booking.Services{Clock: uc.clock}, booking.Spec{
		ID:          input.ID,
		PatientName: input.PatientName,
		PhoneNumber: input.PhoneNumber,
		DoctorName:  input.DoctorName,
		Start:       input.Start,
		End:         input.End,
		Timezone:    input.Timezone,
		Notes:       input.Notes,
	})
	if err != nil {
		uc.metrics.ObserveBooking(metrics.OutcomeInvalid)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("previsit.booking_id", candidate.ID()),
		attribute.String("previsit.range", candidate.TimeRange().String()),
	)

	err = uc.uow.WithinCalendar(ctx, func(ctx context.Context, tx shared.CalendarTx) error {
		conflicts, err := tx.FindConflicts(ctx, candidate.TimeRange())
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{Range: candidate.TimeRange(), Conflicts: conflicts}
		}

		exists, err := tx.Exists(ctx, candidate.ID())
		if err != nil {
			return err
		}
		if exists {
			return errs.Wrapf(errs.ErrDuplicateBooking, "booking %s already exists", candidate.ID())
		}

		return tx.Insert(ctx, candidate)
	})
	if err != nil {
		span.RecordError(err)
		switch {
		case errs.Is(err, errs.ErrBookingConflict):
			uc.metrics.ObserveBooking(metrics.OutcomeConflict)
		case errs.Is(err, errs.ErrDuplicateBooking):
			uc.metrics.ObserveBooking(metrics.OutcomeDuplicate)
		default:
			uc.metrics.ObserveBooking(metrics.OutcomeError)
		}
		return nil, err
	}

	uc.metrics.ObserveBooking(metrics.OutcomeCreated)
	uc.logger.InfoContext(ctx, "booking created",
		"booking_id", candidate.ID(),
		"start", candidate.Start(),
		"end", candidate.End())
	return candidate, nil
}
