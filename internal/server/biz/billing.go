package biz

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/store"
)

type BillingServiceParams struct {
	fx.In

	Store *store.Store
}

func NewBillingService(params BillingServiceParams) *BillingService {
	return &BillingService{
		AbstractService: &AbstractService{store: params.Store},
	}
}

type BillingService struct {
	*AbstractService
}

type GenerateBatchInput struct {
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
	Currency    string    `json:"currency"`
}

// GenerateBatch sums the tenant's completed orders inside the period
// into a draft billing batch.
func (s *BillingService) GenerateBatch(ctx context.Context, input GenerateBatchInput) (*objects.BillingBatch, error) {
	if !input.PeriodEnd.After(input.PeriodStart) {
		return nil, errs.Validation("Period end must be after period start", nil)
	}

	total, err := s.store.Billing().OrderTotal(ctx, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	batch := &objects.BillingBatch{
		PeriodStart: input.PeriodStart.UTC(),
		PeriodEnd:   input.PeriodEnd.UTC(),
		Total:       total,
		Currency:    currency,
		Status:      objects.BillingBatchStatusDraft,
	}

	if err := s.store.Billing().Create(ctx, batch); err != nil {
		return nil, err
	}

	log.Info(ctx, "billing batch generated",
		log.String("batch_id", batch.ID),
		log.String("total", batch.Total.String()),
	)

	return batch, nil
}

func (s *BillingService) GetBatch(ctx context.Context, id string) (*objects.BillingBatch, error) {
	batch, err := s.store.Billing().GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errs.NotFound("Billing batch", id)
		}

		return nil, err
	}

	return batch, nil
}

func (s *BillingService) ListBatches(ctx context.Context, page objects.PageParams) ([]*objects.BillingBatch, int64, error) {
	return s.store.Billing().List(ctx, page)
}

// validBatchTransitions encodes the billing batch lifecycle.
var validBatchTransitions = map[objects.BillingBatchStatus][]objects.BillingBatchStatus{
	objects.BillingBatchStatusDraft:     {objects.BillingBatchStatusFinalized},
	objects.BillingBatchStatusFinalized: {objects.BillingBatchStatusPaid},
	objects.BillingBatchStatusPaid:      {},
}

func (s *BillingService) SetBatchStatus(ctx context.Context, id string, status objects.BillingBatchStatus) (*objects.BillingBatch, error) {
	batch, err := s.GetBatch(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false

	for _, next := range validBatchTransitions[batch.Status] {
		if next == status {
			allowed = true
			break
		}
	}

	if !allowed {
		return nil, errs.Business(fmt.Sprintf("Invalid batch transition from %s to %s", batch.Status, status))
	}

	if err := s.store.Billing().UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	batch.Status = status

	return batch, nil
}

// CleanupDrafts removes draft batches older than the retention cutoff.
// Runs across tenants from the maintenance worker.
func (s *BillingService) CleanupDrafts(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)

	return s.store.Billing().DeleteDraftsBefore(ctx, cutoff)
}
