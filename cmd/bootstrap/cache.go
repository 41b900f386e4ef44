package bootstrap

import (
	"context"
	"log/slog"

	"previsit-intake/internal/infra/cache"
	"previsit-intake/internal/pkg/config"
	"previsit-intake/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewQuestionCache,
	),
)

// NewQuestionCache falls back to a no-op cache when Redis is disabled or
// unreachable; questions are then regenerated on every poll.
func NewQuestionCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.QuestionCache {
	if !cfg.Redis.Enabled {
		return cache.NopQuestionCache{}
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, question cache disabled", "addr", cfg.Redis.Addr, "error", err)
		return cache.NopQuestionCache{}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	logger.Info("question cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.QuestionTTL)
	return cache.NewRedisQuestionCache(client, cfg.Redis.QuestionTTL)
}
