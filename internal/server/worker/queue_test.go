package worker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewQueue(QueueParams{Redis: client})
}

func TestQueue_RoundTrip(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	require.NoError(t, queue.EnqueueShopSync(ctx, "t-1", "shop-1"))

	depth, err := queue.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), depth)

	job, err := queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, JobTypeSyncShop, job.Type)
	assert.Equal(t, "t-1", job.TenantID)
	assert.Equal(t, "shop-1", job.ShopID)
	assert.NotEmpty(t, job.ID)
	assert.False(t, job.EnqueuedAt.IsZero())
}

func TestQueue_FIFO(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	require.NoError(t, queue.EnqueueShopSync(ctx, "t-1", "first"))
	require.NoError(t, queue.EnqueueShopSync(ctx, "t-1", "second"))

	job, err := queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", job.ShopID)

	job, err = queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "second", job.ShopID)
}

func TestQueue_DequeueTimeout(t *testing.T) {
	queue := newTestQueue(t)

	job, err := queue.Dequeue(context.Background(), 10*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, job)
}
