package api

import (
	"log/slog"
	"net/http"

	reqdto "previsit-intake/internal/handler/dto/request"
	resdto "previsit-intake/internal/handler/dto/response"
	"previsit-intake/internal/handler/httperr"
	"previsit-intake/internal/usecase/commands"
	"previsit-intake/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PreVisitHandler struct {
	intakeCmds commands.IntakeCommands
	reportCmds commands.ReportCommands
	intakeQ    queries.IntakeQueries
	reportQ    queries.ReportQueries
	logger     *slog.Logger
}

func NewPreVisitHandler(
	intakeCmds commands.IntakeCommands,
	reportCmds commands.ReportCommands,
	intakeQ queries.IntakeQueries,
	reportQ queries.ReportQueries,
	logger *slog.Logger,
) *PreVisitHandler {
	return &PreVisitHandler{
		intakeCmds: intakeCmds,
		reportCmds: reportCmds,
		intakeQ:    intakeQ,
		reportQ:    reportQ,
		logger:     logger,
	}
}

// @Summary Next intake question
// @Description Get the next intake question for a booking; question is null when complete or unavailable
// @Tags pre-visit
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.QuestionResponse
// @Failure 404 {object} httperr.Response
// @Router /pre-visit/question/{id} [get]
func (h *PreVisitHandler) NextQuestion(c *gin.Context) {
	id := c.Param("id")
	result, err := h.intakeQ.NextQuestion(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromNextQuestion(id, result))
}

// @Summary Record intake answer
// @Description Append a question and answer pair and return the next question
// @Tags pre-visit
// @Accept json
// @Produce json
// @Param request body reqdto.AnswerRequest true "Answer"
// @Success 200 {object} resdto.AnswerResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /pre-visit/answer [post]
func (h *PreVisitHandler) Answer(c *gin.Context) {
	var req reqdto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	ctx := c.Request.Context()
	result, err := h.intakeCmds.RecordAnswer(ctx, req.EventID, req.Question, req.Answer)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	res := resdto.AnswerResponse{
		Success:       true,
		QuestionCount: result.Count,
		IsComplete:    result.IsComplete,
	}
	if !result.IsComplete {
		next, err := h.intakeQ.NextQuestion(ctx, req.EventID)
		if err != nil {
			// The answer is stored; the client can poll for the question.
			h.logger.WarnContext(ctx, "next question lookup failed", "event_id", req.EventID, "error", err)
		} else {
			res.NextQuestion = next.Question
		}
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Generate pre-visit report
// @Description Generate the report once all intake questions are answered
// @Tags pre-visit
// @Accept json
// @Produce json
// @Param request body reqdto.GenerateReportRequest true "Report request"
// @Success 200 {object} resdto.GenerateReportResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /pre-visit/generate-report [post]
func (h *PreVisitHandler) GenerateReport(c *gin.Context) {
	var req reqdto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	ctx := c.Request.Context()
	result, err := h.reportCmds.GenerateReport(ctx, commands.GenerateReportInput{
		BookingID:  req.EventID,
		Regenerate: req.Regenerate,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	view, err := h.reportQ.GetReport(ctx, req.EventID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	report, err := resdto.FromReportView(view)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.GenerateReportResponse{
		Success:  true,
		Memoized: result.Memoized,
		Report:   report,
	})
}

// @Summary Intake history
// @Description Get the recorded answers and report for a booking
// @Tags pre-visit
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.HistoryResponse
// @Failure 404 {object} httperr.Response
// @Router /pre-visit/history/{id} [get]
func (h *PreVisitHandler) History(c *gin.Context) {
	view, err := h.intakeQ.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromHistoryView(view)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
