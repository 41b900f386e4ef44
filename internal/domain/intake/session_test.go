//go:build unit

package intake_test

import (
	"testing"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	t.Run("count grows with each answer until complete", func(t *testing.T) {
		s := intake.NewSession("b1", nil)
		for i, pair := range builder.QAHistory(intake.MaxQuestions) {
			assert.False(t, s.IsComplete(), "complete before answer %d", i+1)
			require.NoError(t, s.Append(pair))
			assert.Equal(t, i+1, s.Count())
		}
		assert.True(t, s.IsComplete())
	})

	t.Run("eighth answer is rejected and log unchanged", func(t *testing.T) {
		s := intake.NewSession("b1", builder.QAHistory(intake.MaxQuestions))

		err := s.Append(intake.QAPair{Question: "extra", Answer: "extra"})
		require.ErrorIs(t, err, errs.ErrIntakeComplete)
		assert.Equal(t, intake.MaxQuestions, s.Count())
	})

	t.Run("appending does not touch the caller's history", func(t *testing.T) {
		history := make([]intake.QAPair, 3, intake.MaxQuestions)
		copy(history, builder.QAHistory(3))
		want := builder.QAHistory(3)

		s := intake.NewSession("b1", history)
		require.NoError(t, s.Append(intake.QAPair{Question: "Q4?", Answer: "A4"}))

		assert.Equal(t, 4, s.Count())
		if diff := cmp.Diff(want, history); diff != "" {
			t.Errorf("caller history changed (-want +got):\n%s", diff)
		}
		assert.Equal(t, intake.QAPair{}, history[:4][3])
	})
}
