package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fulexo/platform/internal/objects"
)

func TestOrderLifecycle(t *testing.T) {
	allowed := func(from, to objects.OrderStatus) bool {
		for _, next := range validOrderTransitions[from] {
			if next == to {
				return true
			}
		}

		return false
	}

	assert.True(t, allowed(objects.OrderStatusPending, objects.OrderStatusProcessing))
	assert.True(t, allowed(objects.OrderStatusPending, objects.OrderStatusCancelled))
	assert.True(t, allowed(objects.OrderStatusProcessing, objects.OrderStatusCompleted))
	assert.True(t, allowed(objects.OrderStatusProcessing, objects.OrderStatusCancelled))
	assert.True(t, allowed(objects.OrderStatusCompleted, objects.OrderStatusRefunded))

	// Terminal states and skips stay closed.
	assert.False(t, allowed(objects.OrderStatusPending, objects.OrderStatusCompleted))
	assert.False(t, allowed(objects.OrderStatusPending, objects.OrderStatusRefunded))
	assert.False(t, allowed(objects.OrderStatusCancelled, objects.OrderStatusPending))
	assert.False(t, allowed(objects.OrderStatusRefunded, objects.OrderStatusCompleted))
	assert.False(t, allowed(objects.OrderStatusCompleted, objects.OrderStatusProcessing))
}

func TestBillingBatchLifecycle(t *testing.T) {
	allowed := func(from, to objects.BillingBatchStatus) bool {
		for _, next := range validBatchTransitions[from] {
			if next == to {
				return true
			}
		}

		return false
	}

	assert.True(t, allowed(objects.BillingBatchStatusDraft, objects.BillingBatchStatusFinalized))
	assert.True(t, allowed(objects.BillingBatchStatusFinalized, objects.BillingBatchStatusPaid))

	assert.False(t, allowed(objects.BillingBatchStatusDraft, objects.BillingBatchStatusPaid))
	assert.False(t, allowed(objects.BillingBatchStatusPaid, objects.BillingBatchStatusDraft))
	assert.False(t, allowed(objects.BillingBatchStatusFinalized, objects.BillingBatchStatusDraft))
}
