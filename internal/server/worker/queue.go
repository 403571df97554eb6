// Package worker runs the background side of the platform: the redis
// job queue, the WooCommerce store sync pipeline and the scheduled
// maintenance tasks.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/log"
)

// queueKey is the redis list shared by the API and the consumers.
const queueKey = "fulexo:jobs"

type JobType string

const (
	JobTypeSyncShop       JobType = "sync-shop"
	JobTypeCleanupBilling JobType = "cleanup-billing"
)

// Job is one unit of background work. TenantID travels with the job so
// the consumer can re-bind the originating tenant before touching data.
type Job struct {
	ID         string    `json:"id"`
	Type       JobType   `json:"type"`
	TenantID   string    `json:"tenantId,omitempty"`
	ShopID     string    `json:"shopId,omitempty"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

type QueueParams struct {
	fx.In

	Redis *redis.Client
}

func NewQueue(params QueueParams) *Queue {
	return &Queue{redis: params.Redis}
}

// Queue is a redis-list backed FIFO job queue.
type Queue struct {
	redis *redis.Client
}

func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	job.EnqueuedAt = time.Now().UTC()

	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := q.redis.LPush(ctx, queueKey, payload).Err(); err != nil {
		return err
	}

	log.Debug(ctx, "job enqueued",
		log.String("job_id", job.ID),
		log.String("job_type", string(job.Type)),
	)

	return nil
}

// EnqueueShopSync schedules a full sync of one store.
func (q *Queue) EnqueueShopSync(ctx context.Context, tenantID, shopID string) error {
	return q.Enqueue(ctx, Job{
		Type:     JobTypeSyncShop,
		TenantID: tenantID,
		ShopID:   shopID,
	})
}

// Dequeue blocks up to timeout for the next job. A nil job with a nil
// error means the poll timed out.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	values, err := q.redis.BRPop(ctx, timeout, queueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, err
	}

	// BRPop returns [key, value].
	if len(values) != 2 {
		return nil, nil
	}

	var job Job
	if err := json.Unmarshal([]byte(values[1]), &job); err != nil {
		return nil, err
	}

	return &job, nil
}

// Depth reports the number of queued jobs.
func (q *Queue) Depth(ctx context.Context) (int64, error) {
	return q.redis.LLen(ctx, queueKey).Result()
}
