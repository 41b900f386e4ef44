package bootstrap

import (
	"previsit-intake/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	CacheModule,
	LLMModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
