//go:build unit

package workflow_test

import (
	"testing"

	"previsit-intake/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name         string
		exists       bool
		count        int
		reportExists bool
		want         workflow.State
	}{
		{"no booking", false, 0, false, workflow.StateNew},
		{"booked", true, 0, false, workflow.StateBooked},
		{"first answer", true, 1, false, workflow.StateQuestionsInProgress},
		{"sixth answer", true, 6, false, workflow.StateQuestionsInProgress},
		{"seventh answer", true, 7, false, workflow.StateQuestionsComplete},
		{"report generated", true, 7, true, workflow.StateReportGenerated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workflow.Derive(tt.exists, tt.count, tt.reportExists))
		})
	}
}

func TestProgressMessage(t *testing.T) {
	assert.Equal(t, "4/7 completed", workflow.ProgressMessage(4))
}
