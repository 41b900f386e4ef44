//go:build unit

package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeRepository_History(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM intake_answers WHERE booking_id = $1 ORDER BY position")).
		WithArgs("evt-1").
		WillReturnRows(pgxmock.NewRows([]string{"question", "answer"}).
			AddRow("Do you consent?", "Yes").
			AddRow("What brings you in?", "Headaches"))

	got, err := NewIntakeRepository(mock).History(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, []intake.QAPair{
		{Question: "Do you consent?", Answer: "Yes"},
		{Question: "What brings you in?", Answer: "Headaches"},
	}, got)
}

func TestIntakeRepository_HistoryEmpty(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM intake_answers")).
		WithArgs("evt-1").
		WillReturnRows(pgxmock.NewRows([]string{"question", "answer"}))

	got, err := NewIntakeRepository(mock).History(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIntakeRepository_Append(t *testing.T) {
	pair := intake.QAPair{Question: "Q?", Answer: "A"}

	t.Run("success", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO intake_answers")).
			WithArgs("evt-1", 3, "Q?", "A").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, NewIntakeRepository(mock).Append(context.Background(), "evt-1", 3, pair))
	})

	t.Run("position taken", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO intake_answers")).
			WithArgs("evt-1", 3, "Q?", "A").
			WillReturnError(&pgconn.PgError{Code: pgErrCodeUniqueViolation})

		err := NewIntakeRepository(mock).Append(context.Background(), "evt-1", 3, pair)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})
}

func TestReportRepository(t *testing.T) {
	generatedAt := time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC)
	content := report.Content{
		PrimaryConcern: "Recurring headaches",
		Medications:    []report.Medication{{Name: "Ibuprofen", Dosage: "200mg"}},
	}

	t.Run("find missing returns nil", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM reports WHERE booking_id = $1")).
			WithArgs("evt-1").
			WillReturnError(pgx.ErrNoRows)

		got, err := NewReportRepository(mock).Find(context.Background(), "evt-1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("find decodes content", func(t *testing.T) {
		mock := newMockPool(t)
		raw := []byte(`{"primary_concern":"Recurring headaches","medications":[{"name":"Ibuprofen","dosage":"200mg"}]}`)
		mock.ExpectQuery(regexp.QuoteMeta("FROM reports WHERE booking_id = $1")).
			WithArgs("evt-1").
			WillReturnRows(pgxmock.NewRows([]string{"content", "generated_at"}).AddRow(raw, generatedAt))

		got, err := NewReportRepository(mock).Find(context.Background(), "evt-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Recurring headaches", got.PrimaryConcern())
		require.Len(t, got.Medications(), 1)
		assert.Equal(t, "200mg", got.Medications()[0].Dosage)
		assert.Equal(t, generatedAt, got.GeneratedAt())
	})

	t.Run("save upserts", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (booking_id) DO UPDATE")).
			WithArgs("evt-1", pgxmock.AnyArg(), generatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := NewReportRepository(mock).Save(context.Background(), report.NewReport("evt-1", content, generatedAt))
		assert.NoError(t, err)
	})
}
