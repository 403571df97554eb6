package dependencies

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/pkg/httpclient"
	"github.com/fulexo/platform/internal/pkg/xredis"
	"github.com/fulexo/platform/internal/ratelimit"
	"github.com/fulexo/platform/internal/server/db"
	"github.com/fulexo/platform/internal/store"
)

var Module = fx.Module("dependencies",
	fx.Provide(log.New),
	fx.Provide(db.NewPool),
	fx.Provide(store.New),
	fx.Provide(xredis.NewClient),
	fx.Provide(httpclient.NewHttpClient),
	fx.Provide(NewExecutors),
	fx.Provide(func(client *redis.Client) *ratelimit.Gate {
		return ratelimit.NewGate(ratelimit.NewRedisStore(client))
	}),
	fx.Invoke(func(lc fx.Lifecycle, st *store.Store) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return st.Migrate(ctx)
			},
		})
	}),
	fx.Invoke(func(lc fx.Lifecycle, executor executors.ScheduledExecutor) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return executor.Shutdown(ctx)
			},
		})
	}),
	fx.Invoke(func(lc fx.Lifecycle, pool *pgxpool.Pool, client *redis.Client) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				pool.Close()
				return client.Close()
			},
		})
	}),
)
