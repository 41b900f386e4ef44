//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	reqdto "previsit-intake/internal/handler/dto/request"
	"previsit-intake/internal/pkg/clock"
	"previsit-intake/internal/usecase/commands"
)

// BaseStart is the 2025-01-15 14:00 UTC slot used throughout the tests.
var BaseStart = time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID          string
	PatientName string
	PhoneNumber string
	DoctorName  string
	Start       time.Time
	End         time.Time
	Timezone    string
	Notes       string
	CreatedAt   time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		PatientName: "Jane Doe",
		PhoneNumber: "+1-555-0100",
		DoctorName:  "Dr. Smith",
		Start:       BaseStart,
		End:         BaseStart.Add(30 * time.Minute),
		Timezone:    "UTC",
		Notes:       "Follow-up visit",
		CreatedAt:   BaseStart.Add(-24 * time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildSpec() booking.Spec {
	return booking.Spec{
		ID:          b.ID,
		PatientName: b.PatientName,
		PhoneNumber: b.PhoneNumber,
		DoctorName:  b.DoctorName,
		Start:       b.Start,
		End:         b.End,
		Timezone:    b.Timezone,
		Notes:       b.Notes,
	}
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	services := &booking.Services{Clock: clock.NewMockClock(b.CreatedAt)}
	return booking.NewBooking(services, b.BuildSpec())
}

// MustBuildDomain assigns "booking-<start>" when no ID was set so fixtures
// stay deterministic.
func (b *BookingBuilder) MustBuildDomain() *booking.Booking {
	if b.ID == "" {
		b.ID = fmt.Sprintf("booking-%s", b.Start.Format("20060102T1504"))
	}
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) BuildInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ID:          b.ID,
		PatientName: b.PatientName,
		PhoneNumber: b.PhoneNumber,
		DoctorName:  b.DoctorName,
		Start:       b.Start,
		End:         b.End,
		Timezone:    b.Timezone,
		Notes:       b.Notes,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ID:          b.ID,
		PatientName: b.PatientName,
		PhoneNumber: b.PhoneNumber,
		DoctorName:  b.DoctorName,
		Start:       b.Start,
		End:         b.End,
		Timezone:    b.Timezone,
		Notes:       b.Notes,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id string) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithPatient(name, phone string) *BookingBuilder {
	b.PatientName = name
	b.PhoneNumber = phone
	return b
}

func (b *BookingBuilder) WithRange(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

// At places a slot of the given length starting offset after BaseStart.
func (b *BookingBuilder) At(offset, length time.Duration) *BookingBuilder {
	b.Start = BaseStart.Add(offset)
	b.End = b.Start.Add(length)
	return b
}

func (b *BookingBuilder) WithTimezone(tz string) *BookingBuilder {
	b.Timezone = tz
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.Notes = notes
	return b
}

// Intake fixtures

func QAHistory(n int) []intake.QAPair {
	h := make([]intake.QAPair, 0, n)
	for i := 1; i <= n; i++ {
		h = append(h, intake.QAPair{
			Question: fmt.Sprintf("Question %d?", i),
			Answer:   fmt.Sprintf("Answer %d", i),
		})
	}
	return h
}

func ReportContent() report.Content {
	return report.Content{
		PrimaryConcern: "Recurring headaches",
		Medications: []report.Medication{
			{Name: "Ibuprofen", Dosage: "200mg", Frequency: "twice daily", Duration: "2 weeks"},
		},
		MedicalHistory:     "No prior conditions",
		AIInsights:         "Possible tension headaches",
		SuggestedQuestions: []string{"How is your sleep?"},
		Notes:              "Patient consented to AI assistance",
	}
}
