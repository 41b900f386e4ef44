//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/infra/memstore"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/commands"
	"previsit-intake/internal/usecase/shared"
	"previsit-intake/tests/common/builder"
	"previsit-intake/tests/common/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedBooking stores a booking with n answers already recorded.
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

func TestIntakeCommands_RecordAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("count is monotonic and completes at seven", func(t *testing.T) {
		store := memstore.NewStore()
		seedBooking(t, store, "b1", 0)
		uc := commands.NewIntakeCommands(memstore.NewUnitOfWork(store), nil, testutil.DiscardLogger())

		for i, pair := range builder.QAHistory(intake.MaxQuestions) {
			res, err := uc.RecordAnswer(ctx, "b1", pair.Question, pair.Answer)
			require.NoError(t, err)
			assert.Equal(t, i+1, res.Count)
			assert.Equal(t, i+1 == intake.MaxQuestions, res.IsComplete, "answer %d", i+1)
		}

		rec, err := store.Reads().Record(ctx, "b1")
		require.NoError(t, err)
		if diff := cmp.Diff(builder.QAHistory(intake.MaxQuestions), rec.History); diff != "" {
			t.Errorf("history mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("eighth answer is rejected", func(t *testing.T) {
		store := memstore.NewStore()
		seedBooking(t, store, "b1", intake.MaxQuestions)
		uc := commands.NewIntakeCommands(memstore.NewUnitOfWork(store), nil, testutil.DiscardLogger())

		_, err := uc.RecordAnswer(ctx, "b1", "extra?", "extra")
		require.ErrorIs(t, err, errs.ErrIntakeComplete)

		var complete *commands.IntakeCompleteError
		require.True(t, errs.As(err, &complete))
		assert.Equal(t, intake.MaxQuestions, complete.Count)

		rec, _ := store.Reads().Record(ctx, "b1")
		assert.Equal(t, intake.MaxQuestions, rec.Count())
	})

	t.Run("question is not matched against anything", func(t *testing.T) {
		store := memstore.NewStore()
		seedBooking(t, store, "b1", 0)
		uc := commands.NewIntakeCommands(memstore.NewUnitOfWork(store), nil, testutil.DiscardLogger())

		res, err := uc.RecordAnswer(ctx, "b1", "", "free text")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
	})

	t.Run("unknown booking", func(t *testing.T) {
		uc := commands.NewIntakeCommands(memstore.NewUnitOfWork(memstore.NewStore()), nil, testutil.DiscardLogger())

		_, err := uc.RecordAnswer(ctx, "missing", "q", "a")
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

func TestIntakeCommands_ConcurrentAnswersStopAtSeven(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewStore()
	seedBooking(t, store, "b1", 0)
	uc := commands.NewIntakeCommands(memstore.NewUnitOfWork(store), nil, testutil.DiscardLogger())

	const callers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		recorded int
		rejected int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.RecordAnswer(ctx, "b1", fmt.Sprintf("q%d", i), "a")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				recorded++
			case errs.Is(err, errs.ErrIntakeComplete):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, intake.MaxQuestions, recorded)
	assert.Equal(t, callers-intake.MaxQuestions, rejected)

	rec, err := store.Reads().Record(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, intake.MaxQuestions, rec.Count())
}
