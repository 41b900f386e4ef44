package booking

import (
	"strings"
	"time"

	"previsit-intake/internal/pkg/clock"
	"previsit-intake/internal/pkg/errs"

	"github.com/google/uuid"
)

const maxIDLength = 128

type Services struct {
	Clock clock.Clock
}

type Spec struct {
	ID          string
	PatientName string
	PhoneNumber string
	DoctorName  string
	Start       time.Time
	End         time.Time
	Timezone    string
	Notes       string
}

// Booking is immutable once committed.
type Booking struct {
	id         string
	patient    Patient
	doctorName string
	timeRange  TimeRange
	timezone   Timezone
	notes      string
	createdAt  time.Time
}

// NewBooking validates a candidate. An empty ID is replaced by a fresh uuid.
func NewBooking(services *Services, spec Spec) (*Booking, error) {
	tr, err := NewTimeRange(spec.Start, spec.End)
	if err != nil {
		return nil, err
	}

	patient, err := NewPatient(spec.PatientName, spec.PhoneNumber)
	if err != nil {
		return nil, err
	}

	tz, err := NewTimezone(spec.Timezone)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(spec.ID)
	if id == "" {
		id = uuid.NewString()
	}
	if len(id) > maxIDLength {
		return nil, errs.Wrapf(errs.ErrInvalidBooking, "id exceeds %d characters", maxIDLength)
	}

	return &Booking{
		id:         id,
		patient:    patient,
		doctorName: strings.TrimSpace(spec.DoctorName),
		timeRange:  tr,
		timezone:   tz,
		notes:      spec.Notes,
		createdAt:  services.Clock.Now(),
	}, nil
}

func ReconstructBooking(
	id string,
	patient Patient,
	doctorName string,
	timeRange TimeRange,
	timezone Timezone,
	notes string,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		patient:    patient,
		doctorName: doctorName,
		timeRange:  timeRange,
		timezone:   timezone,
		notes:      notes,
		createdAt:  createdAt,
	}
}

func (b *Booking) ID() string           { return b.id }
func (b *Booking) PatientName() string  { return b.patient.Name() }
func (b *Booking) PhoneNumber() string  { return b.patient.Phone() }
func (b *Booking) DoctorName() string   { return b.doctorName }
func (b *Booking) TimeRange() TimeRange { return b.timeRange }
func (b *Booking) Start() time.Time     { return b.timeRange.Start() }
func (b *Booking) End() time.Time       { return b.timeRange.End() }
func (b *Booking) Timezone() Timezone   { return b.timezone }
func (b *Booking) Notes() string        { return b.notes }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

func (b *Booking) Overlaps(r TimeRange) bool {
	return b.timeRange.Overlaps(r)
}
