package api

import (
	"net/http"

	resdto "previsit-intake/internal/handler/dto/response"
	"previsit-intake/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	q queries.ReportQueries
}

func NewReportHandler(q queries.ReportQueries) *ReportHandler {
	return &ReportHandler{q: q}
}

// @Summary Get report
// @Description Get the pre-visit report; a placeholder is returned before generation
// @Tags report
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.ReportResponse
// @Failure 404 {object} httperr.Response
// @Router /report/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	view, err := h.q.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromReportView(view)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
