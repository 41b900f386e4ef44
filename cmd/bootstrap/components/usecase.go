package components

import (
	"log/slog"

	"previsit-intake/internal/observability/metrics"
	"previsit-intake/internal/pkg/clock"
	"previsit-intake/internal/pkg/config"
	"previsit-intake/internal/usecase"
	"previsit-intake/internal/usecase/commands"
	"previsit-intake/internal/usecase/queries"
	"previsit-intake/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	fx.Provide(usecase.NewWorkflowUseCase),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewIntakeCommands,
		newReportCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		newBookingQueries,
		newIntakeQueries,
		queries.NewReportQueries,
	),
)

func newReportCommands(
	uow shared.UnitOfWork,
	gen shared.ReportGenerator,
	cfg config.Config,
	clk clock.Clock,
	m *metrics.IntakeMetrics,
	logger *slog.Logger,
) commands.ReportCommands {
	return commands.NewReportCommands(uow, gen, cfg.LLM.Timeout, clk, m, logger)
}

func newBookingQueries(uow shared.UnitOfWork, cfg config.Config) queries.BookingQueries {
	return queries.NewBookingQueries(uow, cfg.Schedule)
}

func newIntakeQueries(
	uow shared.UnitOfWork,
	gen shared.QuestionGenerator,
	cache shared.QuestionCache,
	cfg config.Config,
	m *metrics.IntakeMetrics,
	logger *slog.Logger,
) queries.IntakeQueries {
	return queries.NewIntakeQueries(uow, gen, cache, cfg.LLM.Timeout, m, logger)
}
