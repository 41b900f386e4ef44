package api

import (
	"net/http"

	resdto "previsit-intake/internal/handler/dto/response"
	"previsit-intake/internal/handler/httperr"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/commands"
	"previsit-intake/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type conflictDetail struct {
	Conflicts []*resdto.BookingResponse `json:"conflicts"`
}

type incompleteDetail struct {
	Count    int `json:"count"`
	Required int `json:"required"`
}

type intakeCompleteDetail struct {
	Count int `json:"count"`
}

// abortWithUseCaseError maps usecase and domain errors onto HTTP statuses.
func abortWithUseCaseError(c *gin.Context, err error) {
	var (
		conflictErr   *commands.ConflictError
		incompleteErr *commands.IncompleteError
		completeErr   *commands.IntakeCompleteError
	)

	switch {
	case errs.As(err, &conflictErr):
		var detail any
		if conflicts, mapErr := resdto.FromBookingViews(queries.NewBookingViews(conflictErr.Conflicts)); mapErr == nil {
			detail = conflictDetail{Conflicts: conflicts}
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot conflicts with existing booking", detail)
	case errs.Is(err, errs.ErrBookingConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot conflicts with existing booking", nil)
	case errs.Is(err, errs.ErrDuplicateBooking):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking already exists", nil)
	case errs.Is(err, errs.ErrInvalidTimeRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time range", nil)
	case errs.Is(err, errs.ErrInvalidBooking):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errs.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.As(err, &incompleteErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Intake incomplete",
			incompleteDetail{Count: incompleteErr.Count, Required: incompleteErr.Required})
	case errs.As(err, &completeErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Intake already complete",
			intakeCompleteDetail{Count: completeErr.Count})
	case errs.Is(err, errs.ErrIntakeIncomplete):
		httperr.AbortWithError(c, http.StatusConflict, err, "Intake incomplete", nil)
	case errs.Is(err, errs.ErrIntakeComplete):
		httperr.AbortWithError(c, http.StatusConflict, err, "Intake already complete", nil)
	case errs.Is(err, errs.ErrGeneratorFailed):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Report generation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
