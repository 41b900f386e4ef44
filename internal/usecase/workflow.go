package usecase

import (
	"context"
	"log/slog"

	"previsit-intake/internal/domain/intake"
	"previsit-intake/internal/domain/workflow"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase/commands"
	"previsit-intake/internal/usecase/queries"
	"previsit-intake/internal/usecase/shared"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("previsit.usecase")

type ProcessStatus string

const (
	StatusBookingComplete    ProcessStatus = "booking_complete"
	StatusAnsweringQuestions ProcessStatus = "answering_questions"
	StatusQuestionsComplete  ProcessStatus = "questions_complete"
	StatusReportGenerated    ProcessStatus = "report_generated"
	StatusQuestionReady      ProcessStatus = "question_ready"
)

const questionsCompleteMessage = "All questions completed. Ready to generate report."

// StateView is the derived lifecycle of one booking. Unknown ids yield
// Exists=false and StateNew.
type StateView struct {
	BookingID    string
	Exists       bool
	Count        int
	IsComplete   bool
	ReportExists bool
	State        workflow.State
	Progress     string
	Booking      *queries.BookingView
	History      []intake.QAPair
	Report       *queries.ReportView
}

// ProcessInput drives one step of the unified workflow. Exactly one of
// Booking or BookingID must be set.
type ProcessInput struct {
	Booking        *commands.CreateBookingInput
	BookingID      string
	Question       string
	Answer         string
	GenerateReport bool
	Regenerate     bool
}

type ProcessResult struct {
	Status       ProcessStatus
	BookingID    string
	Booking      *queries.BookingView
	NextQuestion *string
	Count        int
	IsComplete   bool
	Report       *queries.ReportView
	State        *StateView
	Message      string
}

type WorkflowUseCase interface {
	GetState(ctx context.Context, bookingID string) (*StateView, error)
	Process(ctx context.Context, input ProcessInput) (*ProcessResult, error)
}

type workflowUseCaseImpl struct {
	uow           shared.UnitOfWork
	bookingCmds   commands.BookingCommands
	intakeCmds    commands.IntakeCommands
	reportCmds    commands.ReportCommands
	intakeQueries queries.IntakeQueries
	reportQueries queries.ReportQueries
	logger        *slog.Logger
}

func NewWorkflowUseCase(
	uow shared.UnitOfWork,
	bookingCmds commands.BookingCommands,
	intakeCmds commands.IntakeCommands,
	reportCmds commands.ReportCommands,
	intakeQueries queries.IntakeQueries,
	reportQueries queries.ReportQueries,
	logger *slog.Logger,
) WorkflowUseCase {
	return &workflowUseCaseImpl{
		uow:           uow,
		bookingCmds:   bookingCmds,
		intakeCmds:    intakeCmds,
		reportCmds:    reportCmds,
		intakeQueries: intakeQueries,
		reportQueries: reportQueries,
		logger:        logger,
	}
}

func (uc *workflowUseCaseImpl) GetState(ctx context.Context, bookingID string) (*StateView, error) {
	record, err := uc.uow.Reads().Record(ctx, bookingID)
	if err != nil {
		if errs.Is(err, errs.ErrBookingNotFound) {
			return &StateView{
				BookingID: bookingID,
				State:     workflow.StateNew,
				Progress:  workflow.ProgressMessage(0),
				History:   []intake.QAPair{},
			}, nil
		}
		return nil, err
	}

	count := record.Count()
	view := &StateView{
		BookingID:    bookingID,
		Exists:       true,
		Count:        count,
		IsComplete:   intake.IsComplete(count),
		ReportExists: record.Report != nil,
		State:        workflow.Derive(true, count, record.Report != nil),
		Progress:     workflow.ProgressMessage(count),
		Booking:      queries.NewBookingView(record.Booking),
		History:      record.History,
	}
	if view.History == nil {
		view.History = []intake.QAPair{}
	}
	if record.Report != nil {
		view.Report = queries.NewReportView(record.Booking, record.Report)
	}
	return view, nil
}

func (uc *workflowUseCaseImpl) Process(ctx context.Context, input ProcessInput) (*ProcessResult, error) {
	ctx, span := tracer.Start(ctx, "workflow.process",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("previsit.booking_id", input.BookingID)),
	)
	defer span.End()

	result, err := uc.dispatch(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "workflow step failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("previsit.status", string(result.Status)))
	return result, nil
}

func (uc *workflowUseCaseImpl) dispatch(ctx context.Context, input ProcessInput) (*ProcessResult, error) {
	switch {
	case input.Booking != nil && input.BookingID != "":
		return nil, errs.Wrap(errs.ErrInvalidBooking, "provide either a booking or an event id, not both")
	case input.Booking != nil:
		return uc.book(ctx, *input.Booking)
	case input.BookingID == "":
		return nil, errs.Wrap(errs.ErrInvalidBooking, "must provide either a booking or an event id")
	}

	hasQuestion, hasAnswer := input.Question != "", input.Answer != ""
	switch {
	case hasQuestion != hasAnswer:
		return nil, errs.Wrap(errs.ErrInvalidBooking, "question and answer must be provided together")
	case hasAnswer:
		return uc.answer(ctx, input)
	case input.GenerateReport:
		return uc.report(ctx, input.BookingID, input.Regenerate)
	default:
		return uc.questionReady(ctx, input.BookingID)
	}
}

func (uc *workflowUseCaseImpl) book(ctx context.Context, in commands.CreateBookingInput) (*ProcessResult, error) {
	b, err := uc.bookingCmds.CreateBooking(ctx, in)
	if err != nil {
		return nil, err
	}

	next, err := uc.intakeQueries.NextQuestion(ctx, b.ID())
	if err != nil {
		return nil, err
	}
	return &ProcessResult{
		Status:       StatusBookingComplete,
		BookingID:    b.ID(),
		Booking:      queries.NewBookingView(b),
		NextQuestion: next.Question,
		Count:        next.Count,
		IsComplete:   next.IsComplete,
	}, nil
}

func (uc *workflowUseCaseImpl) answer(ctx context.Context, input ProcessInput) (*ProcessResult, error) {
	res, err := uc.intakeCmds.RecordAnswer(ctx, input.BookingID, input.Question, input.Answer)
	if err != nil {
		return nil, err
	}

	if !res.IsComplete {
		next, err := uc.intakeQueries.NextQuestion(ctx, input.BookingID)
		if err != nil {
			return nil, err
		}
		return &ProcessResult{
			Status:       StatusAnsweringQuestions,
			BookingID:    input.BookingID,
			NextQuestion: next.Question,
			Count:        res.Count,
		}, nil
	}

	if input.GenerateReport {
		result, err := uc.report(ctx, input.BookingID, input.Regenerate)
		if err == nil {
			return result, nil
		}
		// The answer is already stored; report failure leaves the intake complete.
		uc.logger.WarnContext(ctx, "report generation after final answer failed",
			"booking_id", input.BookingID,
			"error", err)
	}

	return &ProcessResult{
		Status:     StatusQuestionsComplete,
		BookingID:  input.BookingID,
		Count:      res.Count,
		IsComplete: true,
		Message:    questionsCompleteMessage,
	}, nil
}

func (uc *workflowUseCaseImpl) report(ctx context.Context, bookingID string, regenerate bool) (*ProcessResult, error) {
	if _, err := uc.reportCmds.GenerateReport(ctx, commands.GenerateReportInput{
		BookingID:  bookingID,
		Regenerate: regenerate,
	}); err != nil {
		return nil, err
	}

	view, err := uc.reportQueries.GetReport(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &ProcessResult{
		Status:     StatusReportGenerated,
		BookingID:  bookingID,
		Report:     view,
		Count:      intake.MaxQuestions,
		IsComplete: true,
	}, nil
}

func (uc *workflowUseCaseImpl) questionReady(ctx context.Context, bookingID string) (*ProcessResult, error) {
	next, err := uc.intakeQueries.NextQuestion(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	state, err := uc.GetState(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &ProcessResult{
		Status:       StatusQuestionReady,
		BookingID:    bookingID,
		NextQuestion: next.Question,
		Count:        next.Count,
		IsComplete:   next.IsComplete,
		State:        state,
	}, nil
}
