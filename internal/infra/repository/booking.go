package repository

import (
	"context"
	"errors"
	"time"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/infra"

	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, patient_name, phone_number, doctor_name, lower(slot), upper(slot), timezone, notes, created_at`

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return r.scanOne(row)
}

// FindByIDForUpdate row-locks the booking until the surrounding transaction ends.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id string) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	return r.scanOne(row)
}

func (r *BookingRepository) FindConflicts(ctx context.Context, tr booking.TimeRange) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE slot && $1::tstzrange ORDER BY lower(slot), id`,
		tr.ToTstzrange())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find conflicting bookings", err)
	}
	return r.scanAll(rows)
}

func (r *BookingRepository) StartingIn(ctx context.Context, p booking.Period) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE lower(slot) >= $1 AND lower(slot) < $2 ORDER BY lower(slot), id`,
		p.From(), p.To())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	return r.scanAll(rows)
}

func (r *BookingRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check booking id", err)
	}
	return exists, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bookings (id, patient_name, phone_number, doctor_name, slot, timezone, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5::tstzrange, $6, $7, $8)`,
		b.ID(),
		b.PatientName(),
		b.PhoneNumber(),
		b.DoctorName(),
		b.TimeRange().ToTstzrange(),
		b.Timezone().String(),
		b.Notes(),
		b.CreatedAt(),
	)
	if err == nil {
		return nil
	}

	switch pgErrCode(err) {
	case pgErrCodeExclusionViolation:
		return infra.WrapRepoErr("booking overlaps an existing booking", err, infra.KindConflict)
	case pgErrCodeUniqueViolation:
		return infra.WrapRepoErr("booking id already exists", err, infra.KindDuplicateKey)
	default:
		return infra.WrapRepoErr("failed to insert booking", err)
	}
}

func (r *BookingRepository) scanOne(row pgx.Row) (*booking.Booking, error) {
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read booking", err)
	}
	return b, nil
}

func (r *BookingRepository) scanAll(rows pgx.Rows) ([]*booking.Booking, error) {
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to read booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return out, nil
}

func scanBooking(s scanner) (*booking.Booking, error) {
	var (
		id, patientName, phone, doctor, tzName, notes string
		start, end, createdAt                         time.Time
	)
	if err := s.Scan(&id, &patientName, &phone, &doctor, &start, &end, &tzName, &notes, &createdAt); err != nil {
		return nil, err
	}

	patient, err := booking.NewPatient(patientName, phone)
	if err != nil {
		return nil, err
	}
	tr, err := booking.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	tz, err := booking.NewTimezone(tzName)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(id, patient, doctor, tr, tz, notes, createdAt.UTC()), nil
}
