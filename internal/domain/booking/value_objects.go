package booking

import (
	"fmt"
	"strings"
	"time"

	"previsit-intake/internal/pkg/errs"
)

// TimeRange is a half-open interval [start, end) of absolute instants.
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, errs.Wrapf(errs.ErrInvalidTimeRange,
			"end %s must be after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return TimeRange{start: start.UTC(), end: end.UTC()}, nil
}

// MustTimeRange panics on an invalid range. Only for fixtures.
func MustTimeRange(start, end time.Time) TimeRange {
	r, err := NewTimeRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r TimeRange) Start() time.Time { return r.start }
func (r TimeRange) End() time.Time   { return r.end }

func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Overlaps reports whether the two ranges share at least one instant.
// Touching endpoints do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

func (r TimeRange) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.RFC3339Nano), r.end.Format(time.RFC3339Nano))
}

func (r TimeRange) String() string {
	return r.ToTstzrange()
}

// Period selects bookings by start instant: from <= start < to.
type Period struct {
	from time.Time
	to   time.Time
}

// MonthPeriod covers one calendar month in UTC.
func MonthPeriod(year int, month time.Month) Period {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{from: from, to: from.AddDate(0, 1, 0)}
}

// ParseMonth accepts "YYYY-MM".
func ParseMonth(s string) (Period, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Period{}, errs.Wrapf(errs.ErrInvalidBooking, "invalid month %q, expected YYYY-MM", s)
	}
	return MonthPeriod(t.Year(), t.Month()), nil
}

func (p Period) From() time.Time { return p.from }
func (p Period) To() time.Time   { return p.to }

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.from) && t.Before(p.to)
}

// Timezone is the IANA zone used to display a booking. It has no effect on
// the absolute instants of the range.
type Timezone struct {
	name string
}

const DefaultTimezone = "UTC"

func NewTimezone(name string) (Timezone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	if _, err := time.LoadLocation(name); err != nil {
		return Timezone{}, errs.Wrapf(errs.ErrInvalidBooking, "unknown timezone %q", name)
	}
	return Timezone{name: name}, nil
}

func (tz Timezone) String() string {
	if tz.name == "" {
		return DefaultTimezone
	}
	return tz.name
}

type Patient struct {
	name  string
	phone string
}

func NewPatient(name, phone string) (Patient, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return Patient{}, errs.Wrap(errs.ErrInvalidBooking, "patient name is required")
	}
	if phone == "" {
		return Patient{}, errs.Wrap(errs.ErrInvalidBooking, "phone number is required")
	}
	return Patient{name: name, phone: phone}, nil
}

func (p Patient) Name() string  { return p.name }
func (p Patient) Phone() string { return p.phone }
