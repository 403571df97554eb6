package worker

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("worker",
	fx.Provide(
		NewQueue,
		NewSyncer,
		NewWorker,
		NewMaintenance,
	),
	fx.Invoke(func(lc fx.Lifecycle, worker *Worker, maintenance *Maintenance) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := worker.Start(ctx); err != nil {
					return err
				}

				return maintenance.Start(ctx)
			},
			OnStop: func(ctx context.Context) error {
				if err := maintenance.Stop(ctx); err != nil {
					return err
				}

				return worker.Stop(ctx)
			},
		})
	}),
)
