package shared

import (
	"context"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
)

type UnitOfWork interface {
	// WithinCalendar: the single critical section for calendar writes.
	// Conflict check and insert inside fn are atomic against other callers.
	WithinCalendar(ctx context.Context, fn func(ctx context.Context, tx CalendarTx) error) error
	// WithinBooking: serializes fn against other writers of the same booking.
	// Returns ErrBookingNotFound without calling fn for unknown ids.
	WithinBooking(ctx context.Context, bookingID string, fn func(ctx context.Context, tx RecordTx) error) error
	// Reads: consistent reads outside any write section
	Reads() Reads
}

type CalendarTx interface {
	FindConflicts(ctx context.Context, r booking.TimeRange) ([]*booking.Booking, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, b *booking.Booking) error
}

// RecordTx is scoped to one locked booking.
type RecordTx interface {
	Booking() *booking.Booking
	History(ctx context.Context) ([]intake.QAPair, error)
	AppendAnswer(ctx context.Context, position int, pair intake.QAPair) error
	// Report returns nil when none has been generated.
	Report(ctx context.Context) (*report.Report, error)
	SaveReport(ctx context.Context, r *report.Report) error
}

type Reads interface {
	BookingByID(ctx context.Context, id string) (*booking.Booking, error)
	FindConflicts(ctx context.Context, r booking.TimeRange) ([]*booking.Booking, error)
	BookingsStartingIn(ctx context.Context, p booking.Period) ([]*booking.Booking, error)
	// Record reads booking, history and report as one snapshot.
	Record(ctx context.Context, id string) (*Record, error)
}

// Record is the full persisted state of one booking.
type Record struct {
	Booking *booking.Booking
	History []intake.QAPair
	Report  *report.Report
}

func (r *Record) Count() int {
	return len(r.History)
}
