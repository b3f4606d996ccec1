package bootstrap

import (
	"context"

	"garden-stock-api/internal/pkg/config"
	"garden-stock-api/internal/pkg/telemetry"

	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Invoke(SetupTracing),
)

func SetupTracing(lc fx.Lifecycle, cfg config.TracingConfig) error {
	shutdown, err := telemetry.SetupTracing(context.Background(), cfg)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
