package bootstrap

import (
	"garden-stock-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections hands each component only the part of config.Config it reads.
var ConfigSections = fx.Provide(splitConfig)

type configSections struct {
	fx.Out

	Scraper   config.ScraperConfig
	Scheduler config.SchedulerConfig
	Tracing   config.TracingConfig
}

func splitConfig(cfg config.Config) configSections {
	return configSections{
		Scraper:   cfg.Scraper,
		Scheduler: cfg.Scheduler,
		Tracing:   cfg.Tracing,
	}
}
