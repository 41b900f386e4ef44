package commands

import (
	"fmt"
	"strings"

	"previsit-intake/internal/domain/booking"
	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/pkg/errs"
)

// ConflictError carries every stored booking overlapping the requested range.
type ConflictError struct {
	Range     booking.TimeRange
	Conflicts []*booking.Booking
}

func (e *ConflictError) Error() string {
	ids := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		ids = append(ids, c.ID())
	}
	return fmt.Sprintf("time range %s conflicts with %s", e.Range, strings.Join(ids, ", "))
}

func (e *ConflictError) Is(target error) bool {
	return target == errs.ErrBookingConflict
}

// IncompleteError is returned when a report is requested before the intake
// reached MaxQuestions answers.
type IncompleteError struct {
	Count    int
	Required int
}

func NewIncompleteError(count int) *IncompleteError {
	return &IncompleteError{Count: count, Required: intake.MaxQuestions}
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("intake incomplete: %d/%d completed", e.Count, e.Required)
}

func (e *IncompleteError) Is(target error) bool {
	return target == errs.ErrIntakeIncomplete
}

// IntakeCompleteError rejects answers beyond MaxQuestions.
type IntakeCompleteError struct {
	Count int
}

func (e *IntakeCompleteError) Error() string {
	return fmt.Sprintf("intake already complete with %d answers", e.Count)
}

func (e *IntakeCompleteError) Is(target error) bool {
	return target == errs.ErrIntakeComplete
}

// GeneratorError wraps a failed or timed out external generator call.
type GeneratorError struct {
	Kind string
	Err  error
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("%s generator failed: %v", e.Kind, e.Err)
}

func (e *GeneratorError) Unwrap() error {
	return e.Err
}

func (e *GeneratorError) Is(target error) bool {
	return target == errs.ErrGeneratorFailed
}
