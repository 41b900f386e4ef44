package memstore

import (
	"context"
	"sync"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/shared"
)

// Store keeps bookings, intake logs and reports in process memory.
// Calendar writes hold mu exclusively; record writes hold the per-booking lock.
type Store struct {
	mu       sync.RWMutex
	bookings map[string]*booking.Booking
	// ordered by start for conflict scans
	calendar []*booking.Booking
	records  map[string]*record
}

type record struct {
	mu      sync.RWMutex
	history []intake.QAPair
	report  *report.Report
}

func NewStore() *Store {
	return &Store{
		bookings: make(map[string]*booking.Booking),
		records:  make(map[string]*record),
	}
}

func NewUnitOfWork(s *Store) shared.UnitOfWork {
	return s
}

func (s *Store) WithinCalendar(ctx context.Context, fn func(ctx context.Context, tx shared.CalendarTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &calendarTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, b := range tx.pending {
		s.insertLocked(b)
	}
	return nil
}

func (s *Store) WithinBooking(ctx context.Context, bookingID string, fn func(ctx context.Context, tx shared.RecordTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, rec, ok := s.lookup(bookingID)
	if !ok {
		return errs.Wrapf(errs.ErrBookingNotFound, "booking %s", bookingID)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	tx := &recordTx{booking: b, rec: rec}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	rec.history = append(rec.history, tx.pendingAnswers...)
	if tx.pendingReport != nil {
		rec.report = tx.pendingReport
	}
	return nil
}

func (s *Store) Reads() shared.Reads {
	return &reads{store: s}
}

func (s *Store) lookup(id string) (*booking.Booking, *record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil, false
	}
	return b, s.records[id], true
}

func (s *Store) insertLocked(b *booking.Booking) {
	s.bookings[b.ID()] = b
	s.records[b.ID()] = &record{}

	// keep calendar sorted by start
	i := len(s.calendar)
	for i > 0 && s.calendar[i-1].Start().After(b.Start()) {
		i--
	}
	s.calendar = append(s.calendar, nil)
	copy(s.calendar[i+1:], s.calendar[i:])
	s.calendar[i] = b
}

func (s *Store) conflictsLocked(r booking.TimeRange) []*booking.Booking {
	var conflicts []*booking.Booking
	for _, b := range s.calendar {
		if !b.Start().Before(r.End()) {
			break
		}
		if b.Overlaps(r) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

type calendarTx struct {
	store   *Store
	pending []*booking.Booking
}

func (t *calendarTx) FindConflicts(_ context.Context, r booking.TimeRange) ([]*booking.Booking, error) {
	conflicts := t.store.conflictsLocked(r)
	for _, b := range t.pending {
		if b.Overlaps(r) {
			conflicts = append(conflicts, b)
		}
	}
	booking.SortByStart(conflicts)
	return conflicts, nil
}

func (t *calendarTx) Exists(_ context.Context, id string) (bool, error) {
	if _, ok := t.store.bookings[id]; ok {
		return true, nil
	}
	for _, b := range t.pending {
		if b.ID() == id {
			return true, nil
		}
	}
	return false, nil
}

func (t *calendarTx) Insert(ctx context.Context, b *booking.Booking) error {
	exists, _ := t.Exists(ctx, b.ID())
	if exists {
		return errs.Wrapf(errs.ErrDuplicateBooking, "booking %s already exists", b.ID())
	}
	t.pending = append(t.pending, b)
	return nil
}

type recordTx struct {
	booking        *booking.Booking
	rec            *record
	pendingAnswers []intake.QAPair
	pendingReport  *report.Report
}

func (t *recordTx) Booking() *booking.Booking {
	return t.booking
}

func (t *recordTx) History(_ context.Context) ([]intake.QAPair, error) {
	h := make([]intake.QAPair, 0, len(t.rec.history)+len(t.pendingAnswers))
	h = append(h, t.rec.history...)
	h = append(h, t.pendingAnswers...)
	return h, nil
}

func (t *recordTx) AppendAnswer(_ context.Context, position int, pair intake.QAPair) error {
	if want := len(t.rec.history) + len(t.pendingAnswers); position != want {
		return errs.Newf("answer position %d out of sequence, expected %d", position, want)
	}
	t.pendingAnswers = append(t.pendingAnswers, pair)
	return nil
}

func (t *recordTx) Report(_ context.Context) (*report.Report, error) {
	if t.pendingReport != nil {
		return t.pendingReport, nil
	}
	return t.rec.report, nil
}

func (t *recordTx) SaveReport(_ context.Context, r *report.Report) error {
	t.pendingReport = r
	return nil
}

type reads struct {
	store *Store
}

func (r *reads) BookingByID(_ context.Context, id string) (*booking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.bookings[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrBookingNotFound, "booking %s", id)
	}
	return b, nil
}

func (r *reads) FindConflicts(_ context.Context, tr booking.TimeRange) ([]*booking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.conflictsLocked(tr), nil
}

func (r *reads) BookingsStartingIn(_ context.Context, p booking.Period) ([]*booking.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return booking.StartingIn(r.store.calendar, p), nil
}

func (r *reads) Record(_ context.Context, id string) (*shared.Record, error) {
	b, rec, ok := r.store.lookup(id)
	if !ok {
		return nil, errs.Wrapf(errs.ErrBookingNotFound, "booking %s", id)
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()
	history := make([]intake.QAPair, len(rec.history))
	copy(history, rec.history)
	return &shared.Record{Booking: b, History: history, Report: rec.report}, nil
}
