package queries

import (
	"context"
	"time"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/pkg/config"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/shared"
)

// Read models (DTO for read side)
type BookingView struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patient_name"`
	PhoneNumber string    `json:"phone_number"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Timezone    string    `json:"timezone"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewBookingView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:          b.ID(),
		PatientName: b.PatientName(),
		PhoneNumber: b.PhoneNumber(),
		DoctorName:  b.DoctorName(),
		Start:       b.Start(),
		End:         b.End(),
		Timezone:    b.Timezone().String(),
		Notes:       b.Notes(),
		CreatedAt:   b.CreatedAt(),
	}
}

func NewBookingViews(bs []*booking.Booking) []*BookingView {
	views := make([]*BookingView, 0, len(bs))
	for _, b := range bs {
		views = append(views, NewBookingView(b))
	}
	return views
}

type Availability struct {
	Available bool
	Conflicts []*BookingView
}

type SlotView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type SuggestSlotsInput struct {
	Day         time.Time
	SlotMinutes int
	NumSlots    int
}

const (
	defaultNumSlots = 3
	maxNumSlots     = 48
)

type BookingQueries interface {
	CheckAvailability(ctx context.Context, start, end time.Time) (*Availability, error)
	GetBooking(ctx context.Context, id string) (*BookingView, error)
	ListInPeriod(ctx context.Context, period booking.Period) ([]*BookingView, error)
	SuggestSlots(ctx context.Context, input SuggestSlotsInput) ([]SlotView, error)
}

type bookingQueriesImpl struct {
	reads    shared.Reads
	schedule config.ScheduleConfig
}

func NewBookingQueries(uow shared.UnitOfWork, schedule config.ScheduleConfig) BookingQueries {
	return &bookingQueriesImpl{reads: uow.Reads(), schedule: schedule}
}

func (q *bookingQueriesImpl) CheckAvailability(ctx context.Context, start, end time.Time) (*Availability, error) {
	r, err := booking.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}

	conflicts, err := q.reads.FindConflicts(ctx, r)
	if err != nil {
		return nil, err
	}
	return &Availability{
		Available: len(conflicts) == 0,
		Conflicts: NewBookingViews(conflicts),
	}, nil
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, id string) (*BookingView, error) {
	b, err := q.reads.BookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewBookingView(b), nil
}

func (q *bookingQueriesImpl) ListInPeriod(ctx context.Context, period booking.Period) ([]*BookingView, error) {
	bs, err := q.reads.BookingsStartingIn(ctx, period)
	if err != nil {
		return nil, err
	}
	return NewBookingViews(bs), nil
}

// SuggestSlots lists free slots within the clinic day of input.Day (UTC).
func (q *bookingQueriesImpl) SuggestSlots(ctx context.Context, input SuggestSlotsInput) ([]SlotView, error) {
	slotMinutes := input.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = q.schedule.DefaultSlotMinutes
	}
	if slotMinutes < 0 {
		return nil, errs.Wrapf(errs.ErrInvalidTimeRange, "slot length %d must be positive", slotMinutes)
	}
	numSlots := input.NumSlots
	if numSlots <= 0 {
		numSlots = defaultNumSlots
	}
	if numSlots > maxNumSlots {
		numSlots = maxNumSlots
	}

	y, m, d := input.Day.UTC().Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	day, err := booking.NewTimeRange(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	booked, err := q.reads.FindConflicts(ctx, day)
	if err != nil {
		return nil, err
	}

	hours := booking.ClinicDay{StartHour: q.schedule.DayStartHour, EndHour: q.schedule.DayEndHour}
	free := booking.FreeSlots(dayStart, hours, time.Duration(slotMinutes)*time.Minute, numSlots, booked)

	slots := make([]SlotView, 0, len(free))
	for _, r := range free {
		slots = append(slots, SlotView{Start: r.Start(), End: r.End()})
	}
	return slots, nil
}
