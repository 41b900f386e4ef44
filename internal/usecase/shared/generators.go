package shared

import (
	"context"
	"time"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
)

// QuestionGenerator produces the next intake question from the answers so far.
// An empty string means no question could be produced.
type QuestionGenerator interface {
	NextQuestion(ctx context.Context, history []intake.QAPair) (string, error)
}

type ReportGenerator interface {
	Generate(ctx context.Context, subject ReportSubject, history []intake.QAPair) (report.Content, error)
}

// QuestionCache remembers the question issued at a given answer count so
// repeated polls return the same text.
type QuestionCache interface {
	Get(ctx context.Context, bookingID string, count int) (string, bool, error)
	Set(ctx context.Context, bookingID string, count int, question string) error
}

// ReportSubject carries the booking identity passed to the report generator.
type ReportSubject struct {
	BookingID   string
	PatientName string
	PhoneNumber string
	DoctorName  string
	Start       time.Time
	End         time.Time
	Timezone    string
}

func NewReportSubject(b *booking.Booking) ReportSubject {
	return ReportSubject{
		BookingID:   b.ID(),
		PatientName: b.PatientName(),
		PhoneNumber: b.PhoneNumber(),
		DoctorName:  b.DoctorName(),
		Start:       b.Start(),
		End:         b.End(),
		Timezone:    b.Timezone().String(),
	}
}

// CallWithTimeout runs fn with a deadline and returns once it passes, even
// when fn ignores ctx. A non-positive timeout only honours ctx.
func CallWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{val: v, err: err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
