package worker

import (
	"context"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/store"
)

type MaintenanceParams struct {
	fx.In

	Queue    *Queue
	Store    *store.Store
	Executor executors.ScheduledExecutor
	Config   Config
}

func NewMaintenance(params MaintenanceParams) *Maintenance {
	return &Maintenance{
		queue:    params.Queue,
		store:    params.Store,
		executor: params.Executor,
		config:   params.Config.WithDefaults(),
	}
}

// Maintenance owns the cron side of background work. It only enqueues
// jobs; the consumers do the heavy lifting so scheduled work shares the
// same metrics and error handling as on-demand work.
type Maintenance struct {
	queue    *Queue
	store    *store.Store
	executor executors.ScheduledExecutor

	config  Config
	cancels []context.CancelFunc
}

func (m *Maintenance) Start(ctx context.Context) error {
	cancelSync, err := m.executor.ScheduleFuncAtCronRate(
		m.scheduleShopSyncs,
		executors.CRONRule{Expr: m.config.SyncCron},
	)
	if err != nil {
		return err
	}

	m.cancels = append(m.cancels, cancelSync)

	cancelCleanup, err := m.executor.ScheduleFuncAtCronRate(
		m.scheduleBillingCleanup,
		executors.CRONRule{Expr: m.config.CleanupCron},
	)
	if err != nil {
		return err
	}

	m.cancels = append(m.cancels, cancelCleanup)

	log.Info(ctx, "maintenance schedules registered",
		log.String("sync_cron", m.config.SyncCron),
		log.String("cleanup_cron", m.config.CleanupCron),
	)

	return nil
}

func (m *Maintenance) Stop(ctx context.Context) error {
	for _, cancel := range m.cancels {
		cancel()
	}

	return nil
}

// scheduleShopSyncs enqueues a sync for every store that still has a
// usable connection, across all tenants.
func (m *Maintenance) scheduleShopSyncs(ctx context.Context) {
	shops, err := authz.RunWithSystemBypass(ctx, "sync-scheduler", func(bypassCtx context.Context) ([]*objects.Store, error) {
		return m.store.Shops().ListAllUnscoped(bypassCtx)
	})
	if err != nil {
		log.Error(ctx, "failed to list stores for scheduled sync", log.Cause(err))
		return
	}

	for _, shop := range shops {
		if shop.Status == objects.StoreStatusDisconnected {
			continue
		}

		if err := m.queue.EnqueueShopSync(ctx, shop.TenantID, shop.ID); err != nil {
			log.Error(ctx, "failed to enqueue scheduled sync",
				log.String("shop_id", shop.ID),
				log.Cause(err),
			)
		}
	}

	log.Info(ctx, "scheduled store syncs", log.Any("stores", len(shops)))
}

func (m *Maintenance) scheduleBillingCleanup(ctx context.Context) {
	if err := m.queue.Enqueue(ctx, Job{Type: JobTypeCleanupBilling}); err != nil {
		log.Error(ctx, "failed to enqueue billing cleanup", log.Cause(err))
	}
}
