package api

import (
	"net/http"

	reqdto "previsit-intake/internal/handler/dto/request"
	resdto "previsit-intake/internal/handler/dto/response"
	"previsit-intake/internal/handler/httperr"
	"previsit-intake/internal/pkg/errs"
	"previsit-intake/internal/usecase"

	"github.com/gin-gonic/gin"
)

var errUserMessageUnsupported = errs.New("free-text user_message is not supported")

type WorkflowHandler struct {
	uc usecase.WorkflowUseCase
}

func NewWorkflowHandler(uc usecase.WorkflowUseCase) *WorkflowHandler {
	return &WorkflowHandler{uc: uc}
}

// @Summary Workflow state
// @Description Get the derived workflow state; unknown ids report NEW
// @Tags workflow
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.WorkflowStateResponse
// @Router /workflow/state/{id} [get]
func (h *WorkflowHandler) State(c *gin.Context) {
	view, err := h.uc.GetState(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromStateView(view)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Process workflow step
// @Description Book, answer, generate a report or fetch the next question in one call
// @Tags workflow
// @Accept json
// @Produce json
// @Param request body reqdto.WorkflowProcessRequest true "Workflow step"
// @Success 200 {object} resdto.WorkflowProcessResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /workflow/process [post]
func (h *WorkflowHandler) Process(c *gin.Context) {
	var req reqdto.WorkflowProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if req.UserMessage != "" && req.Booking == nil && req.EventID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errUserMessageUnsupported,
			"Free-text messages are not supported; send a structured booking or event_id", nil)
		return
	}

	result, err := h.uc.Process(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	status := http.StatusOK
	if result.Status == usecase.StatusBookingComplete {
		status = http.StatusCreated
	}
	res, err := resdto.FromProcessResult(result)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(status, res)
}
