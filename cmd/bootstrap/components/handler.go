package components

import (
	"previsit-intake/internal/handler"
	"previsit-intake/internal/handler/api"
	"previsit-intake/internal/handler/middleware"
	"previsit-intake/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCalendarHandler,
		api.NewPreVisitHandler,
		api.NewReportHandler,
		api.NewWorkflowHandler,
		newHandlers,
		newObservability,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	calendar *api.CalendarHandler,
	preVisit *api.PreVisitHandler,
	report *api.ReportHandler,
	workflow *api.WorkflowHandler,
) handler.Handlers {
	return handler.Handlers{
		Calendar: calendar,
		PreVisit: preVisit,
		Report:   report,
		Workflow: workflow,
	}
}

func newObservability(logger *middleware.Logger, m *metrics.HTTPMetrics, gatherer prometheus.Gatherer) handler.Observability {
	return handler.Observability{
		Logger:   logger,
		Metrics:  m,
		Gatherer: gatherer,
	}
}
