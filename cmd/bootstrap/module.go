package bootstrap

import (
	"garden-stock-api/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	StoreModule,
	components.RepositoryModule,
	components.ScraperModule,
	components.UseCaseModule,
	components.HandlerModule,
	SchedulerModule,
)
