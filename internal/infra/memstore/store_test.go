//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/infra/memstore"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/shared"
	"previsit-intake/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memstore.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.NewStore()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) insert(b *booking.Booking) {
	err := s.store.WithinCalendar(s.ctx, func(ctx context.Context, tx shared.CalendarTx) error {
		return tx.Insert(ctx, b)
	})
	s.Require().NoError(err)
}

func (s *StoreTestSuite) TestWithinCalendar() {
	s.Run("insert is visible after commit", func() {
		b := builder.NewBookingBuilder().WithID("a").MustBuildDomain()
		s.insert(b)

		got, err := s.store.Reads().BookingByID(s.ctx, "a")
		s.Require().NoError(err)
		s.Equal(b, got)
	})

	s.Run("failed section commits nothing", func() {
		b := builder.NewBookingBuilder().WithID("rolled-back").At(2*time.Hour, 30*time.Minute).MustBuildDomain()
		boom := errors.New("boom")

		err := s.store.WithinCalendar(s.ctx, func(ctx context.Context, tx shared.CalendarTx) error {
			s.Require().NoError(tx.Insert(ctx, b))
			return boom
		})
		s.ErrorIs(err, boom)

		_, err = s.store.Reads().BookingByID(s.ctx, "rolled-back")
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("duplicate id", func() {
		b := builder.NewBookingBuilder().WithID("a").At(4*time.Hour, 30*time.Minute).MustBuildDomain()
		err := s.store.WithinCalendar(s.ctx, func(ctx context.Context, tx shared.CalendarTx) error {
			return tx.Insert(ctx, b)
		})
		s.ErrorIs(err, errs.ErrDuplicateBooking)
	})

	s.Run("canceled context", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		err := s.store.WithinCalendar(ctx, func(context.Context, shared.CalendarTx) error {
			s.Fail("fn must not run")
			return nil
		})
		s.ErrorIs(err, context.Canceled)
	})
}

func (s *StoreTestSuite) TestReads() {
	first := builder.NewBookingBuilder().WithID("first").At(0, 30*time.Minute).MustBuildDomain()
	second := builder.NewBookingBuilder().WithID("second").At(time.Hour, 30*time.Minute).MustBuildDomain()
	nextMonth := builder.NewBookingBuilder().WithID("feb").WithRange(
		time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 3, 9, 30, 0, 0, time.UTC),
	).MustBuildDomain()
	s.insert(second)
	s.insert(nextMonth)
	s.insert(first)

	s.Run("find conflicts ordered by start", func() {
		r := booking.MustTimeRange(builder.BaseStart.Add(10*time.Minute), builder.BaseStart.Add(70*time.Minute))
		got, err := s.store.Reads().FindConflicts(s.ctx, r)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("first", got[0].ID())
		s.Equal("second", got[1].ID())
	})

	s.Run("adjacent range is free", func() {
		r := booking.MustTimeRange(builder.BaseStart.Add(30*time.Minute), builder.BaseStart.Add(time.Hour))
		got, err := s.store.Reads().FindConflicts(s.ctx, r)
		s.Require().NoError(err)
		s.Empty(got)
	})

	s.Run("bookings starting in month", func() {
		got, err := s.store.Reads().BookingsStartingIn(s.ctx, booking.MonthPeriod(2025, time.January))
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("first", got[0].ID())
	})

	s.Run("record of unknown booking", func() {
		_, err := s.store.Reads().Record(s.ctx, "missing")
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("empty record", func() {
		rec, err := s.store.Reads().Record(s.ctx, "first")
		s.Require().NoError(err)
		s.Equal(0, rec.Count())
		s.Nil(rec.Report)
	})
}

func (s *StoreTestSuite) TestWithinBooking() {
	b := builder.NewBookingBuilder().WithID("b1").MustBuildDomain()
	s.insert(b)

	s.Run("unknown booking does not call fn", func() {
		err := s.store.WithinBooking(s.ctx, "missing", func(context.Context, shared.RecordTx) error {
			s.Fail("fn must not run")
			return nil
		})
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("answers are appended in order", func() {
		want := builder.QAHistory(3)
		for i, pair := range want {
			err := s.store.WithinBooking(s.ctx, "b1", func(ctx context.Context, tx shared.RecordTx) error {
				s.Equal("b1", tx.Booking().ID())
				return tx.AppendAnswer(ctx, i, pair)
			})
			s.Require().NoError(err)
		}

		rec, err := s.store.Reads().Record(s.ctx, "b1")
		s.Require().NoError(err)
		if diff := cmp.Diff(want, rec.History); diff != "" {
			s.Failf("history mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("out of sequence position is rejected", func() {
		err := s.store.WithinBooking(s.ctx, "b1", func(ctx context.Context, tx shared.RecordTx) error {
			return tx.AppendAnswer(ctx, 0, intake.QAPair{Question: "q", Answer: "a"})
		})
		s.Error(err)

		rec, _ := s.store.Reads().Record(s.ctx, "b1")
		s.Equal(3, rec.Count())
	})

	s.Run("failed section discards report", func() {
		boom := errors.New("boom")
		err := s.store.WithinBooking(s.ctx, "b1", func(ctx context.Context, tx shared.RecordTx) error {
			s.Require().NoError(tx.SaveReport(ctx, report.NewReport("b1", builder.ReportContent(), builder.BaseStart)))
			return boom
		})
		s.ErrorIs(err, boom)

		rec, _ := s.store.Reads().Record(s.ctx, "b1")
		s.Nil(rec.Report)
	})

	s.Run("saved report overwrites", func() {
		for _, concern := range []string{"first", "second"} {
			content := builder.ReportContent()
			content.PrimaryConcern = concern
			err := s.store.WithinBooking(s.ctx, "b1", func(ctx context.Context, tx shared.RecordTx) error {
				return tx.SaveReport(ctx, report.NewReport("b1", content, builder.BaseStart))
			})
			s.Require().NoError(err)
		}

		rec, _ := s.store.Reads().Record(s.ctx, "b1")
		s.Require().NotNil(rec.Report)
		s.Equal("second", rec.Report.PrimaryConcern())
	})
}

func TestStore_ConcurrentAppendsKeepSequence(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	b := builder.NewBookingBuilder().WithID("b1").MustBuildDomain()
	require.NoError(t, store.WithinCalendar(ctx, func(ctx context.Context, tx shared.CalendarTx) error {
		return tx.Insert(ctx, b)
	}))

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.WithinBooking(ctx, "b1", func(ctx context.Context, tx shared.RecordTx) error {
				h, err := tx.History(ctx)
				if err != nil {
					return err
				}
				return tx.AppendAnswer(ctx, len(h), intake.QAPair{Question: fmt.Sprintf("q%d", i), Answer: "a"})
			})
		}(i)
	}
	wg.Wait()

	rec, err := store.Reads().Record(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, writers, rec.Count())
}
