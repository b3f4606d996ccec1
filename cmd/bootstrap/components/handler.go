package components

import (
	"garden-stock-api/internal/handler"
	"garden-stock-api/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewStockHandler,
	),
	fx.Invoke(handler.NewRouter),
)
