//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/infra/memstore"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/queries"
	"previsit-intake/internal/usecase/shared"
	"previsit-intake/tests/common/builder"
	"previsit-intake/tests/common/testutil"
	sharedmock "previsit-intake/tests/mock/shared"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func seedBooking(t *testing.T, store *memstore.Store, id string, n int) {
	t.Helper()
	ctx := context.Background()
	b := builder.NewBookingBuilder().WithID(id).MustBuildDomain()
	require.NoError(t, store.WithinCalendar(ctx, func(ctx context.Context, tx shared.CalendarTx) error {
		return tx.Insert(ctx, b)
	}))
	for i, pair := range builder.QAHistory(n) {
		require.NoError(t, store.WithinBooking(ctx, id, func(ctx context.Context, tx shared.RecordTx) error {
			return tx.AppendAnswer(ctx, i, pair)
		}))
	}
}

type IntakeQueriesTestSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	store     *memstore.Store
	generator *sharedmock.MockQuestionGenerator
	cache     *sharedmock.MockQuestionCache
	q         queries.IntakeQueries
}

func (s *IntakeQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.NewStore()
	s.generator = sharedmock.NewMockQuestionGenerator(s.ctrl)
	s.cache = sharedmock.NewMockQuestionCache(s.ctrl)
	s.q = queries.NewIntakeQueries(memstore.NewUnitOfWork(s.store), s.generator, s.cache, 50*time.Millisecond, nil, testutil.DiscardLogger())
}

func (s *IntakeQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestIntakeQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(IntakeQueriesTestSuite))
}

func (s *IntakeQueriesTestSuite) TestNextQuestion_Generated() {
	seedBooking(s.T(), s.store, "b1", 2)

	gomock.InOrder(
		s.cache.EXPECT().Get(gomock.Any(), "b1", 2).Return("", false, nil),
		s.generator.EXPECT().NextQuestion(gomock.Any(), builder.QAHistory(2)).Return("  Any allergies?\n", nil),
		s.cache.EXPECT().Set(gomock.Any(), "b1", 2, "Any allergies?").Return(nil),
	)

	res, err := s.q.NextQuestion(s.ctx, "b1")
	s.Require().NoError(err)
	s.Require().NotNil(res.Question)
	s.Equal("Any allergies?", *res.Question)
	s.Equal(2, res.Count)
	s.False(res.IsComplete)
}

func (s *IntakeQueriesTestSuite) TestNextQuestion_CacheHit() {
	seedBooking(s.T(), s.store, "b1", 1)
	s.cache.EXPECT().Get(gomock.Any(), "b1", 1).Return("Cached?", true, nil)

	res, err := s.q.NextQuestion(s.ctx, "b1")
	s.Require().NoError(err)
	s.Require().NotNil(res.Question)
	s.Equal("Cached?", *res.Question)
}

func (s *IntakeQueriesTestSuite) TestNextQuestion_CompleteSkipsGenerator() {
	seedBooking(s.T(), s.store, "b1", intake.MaxQuestions)

	res, err := s.q.NextQuestion(s.ctx, "b1")
	s.Require().NoError(err)
	s.Nil(res.Question)
	s.True(res.IsComplete)
	s.Equal(intake.MaxQuestions, res.Count)
}

func (s *IntakeQueriesTestSuite) TestNextQuestion_DegradesOnGeneratorProblems() {
	release := make(chan struct{})
	defer close(release)

	cases := []struct {
		name  string
		setup func()
	}{
		{
			name: "generator error",
			setup: func() {
				s.generator.EXPECT().NextQuestion(gomock.Any(), gomock.Any()).Return("", errors.New("quota exceeded"))
			},
		},
		{
			name: "empty output",
			setup: func() {
				s.generator.EXPECT().NextQuestion(gomock.Any(), gomock.Any()).Return("   ", nil)
			},
		},
		{
			name: "timeout",
			setup: func() {
				s.generator.EXPECT().NextQuestion(gomock.Any(), gomock.Any()).
					DoAndReturn(func(context.Context, []intake.QAPair) (string, error) {
						<-release
						return "too late", nil
					})
			},
		},
	}

	seedBooking(s.T(), s.store, "b1", 3)
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.cache.EXPECT().Get(gomock.Any(), "b1", 3).Return("", false, nil)
			tc.setup()

			res, err := s.q.NextQuestion(s.ctx, "b1")
			s.Require().NoError(err)
			s.Nil(res.Question)
			s.Equal(3, res.Count)
			s.False(res.IsComplete)
		})
	}
}

func (s *IntakeQueriesTestSuite) TestNextQuestion_CacheErrorsAreIgnored() {
	seedBooking(s.T(), s.store, "b1", 0)

	s.cache.EXPECT().Get(gomock.Any(), "b1", 0).Return("", false, errors.New("redis down"))
	s.generator.EXPECT().NextQuestion(gomock.Any(), gomock.Any()).Return("Do you consent?", nil)
	s.cache.EXPECT().Set(gomock.Any(), "b1", 0, "Do you consent?").Return(errors.New("redis down"))

	res, err := s.q.NextQuestion(s.ctx, "b1")
	s.Require().NoError(err)
	s.Require().NotNil(res.Question)
	s.Equal("Do you consent?", *res.Question)
}

func (s *IntakeQueriesTestSuite) TestNextQuestion_UnknownBooking() {
	_, err := s.q.NextQuestion(s.ctx, "missing")
	s.ErrorIs(err, errs.ErrBookingNotFound)
}

func (s *IntakeQueriesTestSuite) TestHistory() {
	seedBooking(s.T(), s.store, "b1", intake.MaxQuestions)

	view, err := s.q.History(s.ctx, "b1")
	s.Require().NoError(err)
	s.Equal(builder.QAHistory(intake.MaxQuestions), view.History)
	s.True(view.IsComplete)
	s.Nil(view.Report)

	s.Require().NoError(s.store.WithinBooking(s.ctx, "b1", func(ctx context.Context, tx shared.RecordTx) error {
		return tx.SaveReport(ctx, report.NewReport("b1", builder.ReportContent(), builder.BaseStart))
	}))

	view, err = s.q.History(s.ctx, "b1")
	s.Require().NoError(err)
	s.Require().NotNil(view.Report)
	s.Equal("Recurring headaches", view.Report.PrimaryConcern)
}
