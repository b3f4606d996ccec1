package components

import (
	"garden-stock-api/internal/infra/scraper"
	"garden-stock-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var ScraperModule = fx.Module("scraper",
	fx.Provide(
		fx.Annotate(
			scraper.NewFetcher,
			fx.As(new(shared.PageFetcher)),
		),
		fx.Annotate(
			scraper.NewGridExtractor,
			fx.As(new(shared.PageExtractor)),
		),
	),
)
