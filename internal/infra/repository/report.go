package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/infra"

	"github.com/jackc/pgx/v5"
)

type ReportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) *ReportRepository {
	return &ReportRepository{db: db}
}

// Find returns nil without error when no report exists.
func (r *ReportRepository) Find(ctx context.Context, bookingID string) (*report.Report, error) {
	var (
		raw         []byte
		generatedAt time.Time
	)
	err := r.db.QueryRow(ctx,
		`SELECT content, generated_at FROM reports WHERE booking_id = $1`,
		bookingID).Scan(&raw, &generatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to load report", err)
	}

	var content report.Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, infra.WrapRepoErr("failed to decode report", err)
	}
	return report.NewReport(bookingID, content, generatedAt.UTC()), nil
}

// Save overwrites any earlier report for the booking.
func (r *ReportRepository) Save(ctx context.Context, rep *report.Report) error {
	raw, err := json.Marshal(rep.Content())
	if err != nil {
		return infra.WrapRepoErr("failed to encode report", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO reports (booking_id, content, generated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (booking_id) DO UPDATE SET content = EXCLUDED.content, generated_at = EXCLUDED.generated_at`,
		rep.BookingID(), raw, rep.GeneratedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to save report", err)
	}
	return nil
}
