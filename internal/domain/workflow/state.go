package workflow

import (
	"fmt"

	"previsit-intake/internal/domain/intake"
)

// State is derived from the booking, its answer count and its report.
// It is never stored.
type State string

const (
	StateNew                 State = "NEW"
	StateBooked              State = "BOOKED"
	StateQuestionsInProgress State = "QUESTIONS_IN_PROGRESS"
	StateQuestionsComplete   State = "QUESTIONS_COMPLETE"
	StateReportGenerated     State = "REPORT_GENERATED"
)

func (s State) String() string {
	return string(s)
}

func Derive(exists bool, count int, reportExists bool) State {
	switch {
	case !exists:
		return StateNew
	case reportExists:
		return StateReportGenerated
	case intake.IsComplete(count):
		return StateQuestionsComplete
	case count > 0:
		return StateQuestionsInProgress
	default:
		return StateBooked
	}
}

// ProgressMessage renders the "n/7 completed" line shown to patients.
func ProgressMessage(count int) string {
	return fmt.Sprintf("%d/%d completed", count, intake.MaxQuestions)
}
