package bootstrap

import (
	"context"

	"garden-stock-api/internal/infra/scheduler"
	"garden-stock-api/internal/pkg/config"
	"garden-stock-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(func(*scheduler.Scheduler) {}),
)

func NewScheduler(lc fx.Lifecycle, cfg config.SchedulerConfig, cmds commands.RefreshCommands) (*scheduler.Scheduler, error) {
	s, err := scheduler.New(cfg, cmds)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})

	return s, nil
}
