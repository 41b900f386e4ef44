//go:build unit

package response_test

import (
	"testing"
	"time"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/report"
	"previsit-intake/internal/domain/workflow"
	"previsit-intake/internal/handler/dto/response"
	"previsit-intake/internal/usecase"
	"previsit-intake/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBookingView(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	t.Run("copies every field", func(t *testing.T) {
		v := &queries.BookingView{
			ID:          "evt-1",
			PatientName: "Ada",
			PhoneNumber: "555-0100",
			DoctorName:  "Dr. Who",
			Start:       start,
			End:         start.Add(30 * time.Minute),
			Timezone:    "UTC",
			Notes:       "first visit",
			CreatedAt:   start.Add(-time.Hour),
		}

		got, err := response.FromBookingView(v)
		require.NoError(t, err)

		want := &response.BookingResponse{
			ID:          "evt-1",
			PatientName: "Ada",
			PhoneNumber: "555-0100",
			DoctorName:  "Dr. Who",
			Start:       start,
			End:         start.Add(30 * time.Minute),
			Timezone:    "UTC",
			Notes:       "first visit",
			CreatedAt:   start.Add(-time.Hour),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("FromBookingView mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil view", func(t *testing.T) {
		got, err := response.FromBookingView(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty list encodes as empty slice", func(t *testing.T) {
		got, err := response.FromBookingViews(nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFromReportView(t *testing.T) {
	generatedAt := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("maps booking id and medications", func(t *testing.T) {
		v := &queries.ReportView{
			BookingID:      "evt-1",
			Title:          "Pre-visit report",
			PatientName:    "Ada",
			PrimaryConcern: "headache",
			Medications:    []report.Medication{{Name: "ibuprofen", Dosage: "200mg"}},
			Generated:      true,
			GeneratedAt:    &generatedAt,
		}

		got, err := response.FromReportView(v)
		require.NoError(t, err)
		assert.Equal(t, "evt-1", got.EventID)
		assert.Equal(t, "headache", got.PrimaryConcern)
		assert.Equal(t, []response.MedicationResponse{{Name: "ibuprofen", Dosage: "200mg"}}, got.Medications)
		assert.Equal(t, []string{}, got.SuggestedQuestions)
		require.NotNil(t, got.GeneratedAt)
		assert.True(t, generatedAt.Equal(*got.GeneratedAt))
	})

	t.Run("nil view", func(t *testing.T) {
		got, err := response.FromReportView(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestFromStateView(t *testing.T) {
	got, err := response.FromStateView(&usecase.StateView{
		BookingID: "evt-9",
		State:     workflow.StateNew,
		History:   []intake.QAPair{},
		Progress:  "0/7",
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-9", got.EventID)
	assert.Nil(t, got.Booking)
	assert.Nil(t, got.Report)
	assert.Equal(t, []response.QAPairResponse{}, got.QAHistory)
}
