package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/server/biz"
)

type WorkerParams struct {
	fx.In

	Queue          *Queue
	Syncer         *Syncer
	BillingService *biz.BillingService
	Config         Config
}

func NewWorker(params WorkerParams) *Worker {
	return &Worker{
		queue:   params.Queue,
		syncer:  params.Syncer,
		billing: params.BillingService,
		config:  params.Config.WithDefaults(),
	}
}

// Worker consumes the job queue. Each job runs detached from the HTTP
// request that enqueued it, under a system principal with the job's
// tenant re-bound.
type Worker struct {
	queue   *Queue
	syncer  *Syncer
	billing *biz.BillingService
	config  Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (w *Worker) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	for i := 0; i < w.config.Concurrency; i++ {
		w.wg.Add(1)

		go func() {
			defer w.wg.Done()
			w.consume(runCtx)
		}()
	}

	log.Info(ctx, "job consumers started", log.Any("concurrency", w.config.Concurrency))

	return nil
}

func (w *Worker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) consume(ctx context.Context) {
	for {
		job, err := w.queue.Dequeue(ctx, w.config.PollTimeout)
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			log.Error(ctx, "failed to dequeue job", log.Cause(err))
			time.Sleep(time.Second)

			continue
		}

		if job == nil {
			continue
		}

		w.handle(ctx, job)
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	start := time.Now()

	err := w.dispatch(ctx, job)

	jobDuration.WithLabelValues(string(job.Type)).Observe(time.Since(start).Seconds())

	if err != nil {
		jobsProcessed.WithLabelValues(string(job.Type), "error").Inc()
		log.Error(ctx, "job failed",
			log.String("job_id", job.ID),
			log.String("job_type", string(job.Type)),
			log.String("tenant_id", job.TenantID),
			log.Cause(err),
		)

		return
	}

	jobsProcessed.WithLabelValues(string(job.Type), "ok").Inc()
	log.Info(ctx, "job finished",
		log.String("job_id", job.ID),
		log.String("job_type", string(job.Type)),
		log.Any("duration", time.Since(start)),
	)
}

func (w *Worker) dispatch(ctx context.Context, job *Job) error {
	switch job.Type {
	case JobTypeSyncShop:
		return w.syncer.SyncShop(ctx, job.TenantID, job.ShopID)
	case JobTypeCleanupBilling:
		_, err := w.billing.CleanupDrafts(authz.NewSystemContext(ctx), w.config.DraftRetention)
		return err
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}
