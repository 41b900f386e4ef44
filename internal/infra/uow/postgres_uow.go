package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/infra/repository"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	// calendarLockKey guards the calendar critical section across processes.
	calendarLockKey int64 = 0x70726576
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// Pool is the subset of *pgxpool.Pool the unit of work needs.
type Pool interface {
	repository.DBTX
	BeginTx(ctx context.Context, options pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool   Pool
	logger *slog.Logger
}

func NewPostgresUoW(pool Pool, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:   pool,
		logger: logger,
	}
}

// WithinCalendar serializes calendar writers with a transaction-scoped
// advisory lock; the exclusion constraint backs it up.
func (u *PostgresUoW) WithinCalendar(ctx context.Context, fn func(ctx context.Context, tx shared.CalendarTx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, calendarLockKey); err != nil {
			return errs.Wrap(err, "failed to lock calendar")
		}
		return fn(ctx, repository.NewBookingRepository(tx))
	})
}

func (u *PostgresUoW) WithinBooking(ctx context.Context, bookingID string, fn func(ctx context.Context, tx shared.RecordTx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx pgx.Tx) error {
		b, err := repository.NewBookingRepository(tx).FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		return fn(ctx, &recordTx{
			booking: b,
			answers: repository.NewIntakeRepository(tx),
			reports: repository.NewReportRepository(tx),
		})
	})
}

func (u *PostgresUoW) Reads() shared.Reads {
	return &pgReads{uow: u}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx pgx.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		tx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = tx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.WarnContext(ctx, "rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				u.logger.ErrorContext(ctx, "transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		u.logger.WarnContext(ctx, "retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

// Read-only snapshot so booking, history and report agree with each other.
func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			u.logger.WarnContext(ctx, "failed to rollback read-only transaction", "error", rollbackErr.Error())
		}
		return err
	}

	return tx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type recordTx struct {
	booking *booking.Booking
	answers *repository.IntakeRepository
	reports *repository.ReportRepository
}

func (t *recordTx) Booking() *booking.Booking {
	return t.booking
}

func (t *recordTx) History(ctx context.Context) ([]intake.QAPair, error) {
	return t.answers.History(ctx, t.booking.ID())
}

func (t *recordTx) AppendAnswer(ctx context.Context, position int, pair intake.QAPair) error {
	return t.answers.Append(ctx, t.booking.ID(), position, pair)
}

func (t *recordTx) Report(ctx context.Context) (*report.Report, error) {
	return t.reports.Find(ctx, t.booking.ID())
}

func (t *recordTx) SaveReport(ctx context.Context, r *report.Report) error {
	return t.reports.Save(ctx, r)
}

type pgReads struct {
	uow *PostgresUoW
}

func (r *pgReads) BookingByID(ctx context.Context, id string) (*booking.Booking, error) {
	return repository.NewBookingRepository(r.uow.pool).FindByID(ctx, id)
}

func (r *pgReads) FindConflicts(ctx context.Context, tr booking.TimeRange) ([]*booking.Booking, error) {
	return repository.NewBookingRepository(r.uow.pool).FindConflicts(ctx, tr)
}

func (r *pgReads) BookingsStartingIn(ctx context.Context, p booking.Period) ([]*booking.Booking, error) {
	return repository.NewBookingRepository(r.uow.pool).StartingIn(ctx, p)
}

func (r *pgReads) Record(ctx context.Context, id string) (*shared.Record, error) {
	var rec *shared.Record
	err := r.uow.runReadOnlyTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		b, err := repository.NewBookingRepository(tx).FindByID(ctx, id)
		if err != nil {
			return err
		}
		history, err := repository.NewIntakeRepository(tx).History(ctx, id)
		if err != nil {
			return err
		}
		rep, err := repository.NewReportRepository(tx).Find(ctx, id)
		if err != nil {
			return err
		}
		rec = &shared.Record{Booking: b, History: history, Report: rep}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
