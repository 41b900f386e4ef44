package queries

import (
	"context"
	"fmt"
	"time"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/pkg/ptr"
	"previsit-intake/internal/usecase/shared"
)

const placeholderNotes = "Pre-visit report not yet generated."

type ReportView struct {
	BookingID          string
	Title              string
	PatientName        string
	DoctorName         string
	PrimaryConcern     string
	Medications        []report.Medication
	MedicalHistory     string
	AIInsights         string
	SuggestedQuestions []string
	Notes              string
	Generated          bool
	GeneratedAt        *time.Time
}

func NewReportView(b *booking.Booking, r *report.Report) *ReportView {
	return &ReportView{
		BookingID:          b.ID(),
		Title:              reportTitle(b),
		PatientName:        b.PatientName(),
		DoctorName:         b.DoctorName(),
		PrimaryConcern:     r.PrimaryConcern(),
		Medications:        r.Medications(),
		MedicalHistory:     r.MedicalHistory(),
		AIInsights:         r.AIInsights(),
		SuggestedQuestions: r.SuggestedQuestions(),
		Notes:              r.Notes(),
		Generated:          true,
		GeneratedAt:        ptr.TimeOrNil(r.GeneratedAt()),
	}
}

func newPlaceholderReportView(b *booking.Booking) *ReportView {
	return &ReportView{
		BookingID:          b.ID(),
		Title:              reportTitle(b),
		PatientName:        b.PatientName(),
		DoctorName:         b.DoctorName(),
		Medications:        []report.Medication{},
		SuggestedQuestions: []string{},
		Notes:              placeholderNotes,
	}
}

func reportTitle(b *booking.Booking) string {
	return fmt.Sprintf("Appointment Report - %s", b.PatientName())
}

type ReportQueries interface {
	// GetReport returns a placeholder view when no report exists yet.
	GetReport(ctx context.Context, bookingID string) (*ReportView, error)
}

type reportQueriesImpl struct {
	reads shared.Reads
}

func NewReportQueries(uow shared.UnitOfWork) ReportQueries {
	return &reportQueriesImpl{reads: uow.Reads()}
}

func (q *reportQueriesImpl) GetReport(ctx context.Context, bookingID string) (*ReportView, error) {
	record, err := q.reads.Record(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if record.Report == nil {
		return newPlaceholderReportView(record.Booking), nil
	}
	return NewReportView(record.Booking, record.Report), nil
}
