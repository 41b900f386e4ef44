package bootstrap

import (
	"context"
	"log/slog"

	"previsit-intake/internal/infra/llm"
	"previsit-intake/internal/pkg/config"
	"previsit-intake/internal/usecase/shared"

	"go.uber.org/fx"
)

var LLMModule = fx.Module("llm",
	fx.Provide(
		NewGenerators,
	),
)

type Generators struct {
	fx.Out

	Question shared.QuestionGenerator
	Report   shared.ReportGenerator
}

func NewGenerators(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Generators, error) {
	if cfg.LLM.Provider != config.LLMProviderGemini {
		logger.Info("using scripted intake generators")
		return Generators{
			Question: llm.NewScriptedQuestionGenerator(),
			Report:   llm.NewScriptedReportGenerator(),
		}, nil
	}

	client, err := llm.NewGeminiClient(context.Background(), cfg.LLM)
	if err != nil {
		return Generators{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	logger.Info("using gemini intake generators", "model", cfg.LLM.Model)
	return Generators{
		Question: llm.NewGeminiQuestionGenerator(client),
		Report:   llm.NewGeminiReportGenerator(client),
	}, nil
}
