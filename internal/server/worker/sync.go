package worker

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/pkg/httpclient"
	"github.com/fulexo/platform/internal/server/biz"
	"github.com/fulexo/platform/internal/store"
	"github.com/fulexo/platform/internal/woo"
)

type SyncerParams struct {
	fx.In

	Store       *store.Store
	ShopService *biz.ShopService
	HttpClient  *httpclient.HttpClient
	Config      Config
}

func NewSyncer(params SyncerParams) *Syncer {
	return &Syncer{
		store:    params.Store,
		shops:    params.ShopService,
		http:     params.HttpClient,
		pageSize: params.Config.WithDefaults().SyncPageSize,
	}
}

// Syncer pulls orders and products from a connected WooCommerce store
// into the tenant's data. It always runs with the owning tenant bound,
// so every upsert lands inside that tenant.
type Syncer struct {
	store    *store.Store
	shops    *biz.ShopService
	http     *httpclient.HttpClient
	pageSize int
}

// SyncShop performs a full pull of one store.
func (s *Syncer) SyncShop(ctx context.Context, tenantID, shopID string) error {
	ctx = contexts.WithTenantID(authz.NewSystemContext(ctx), tenantID)

	shop, err := s.store.Shops().GetByID(ctx, shopID)
	if err != nil {
		return err
	}

	key, secret, err := s.shops.Credentials(ctx, shop)
	if err != nil {
		return err
	}

	client := woo.NewClient(s.http, woo.Config{
		BaseURL:        shop.BaseURL,
		ConsumerKey:    key,
		ConsumerSecret: secret,
	})

	if err := s.store.Shops().UpdateStatus(ctx, shop.ID, objects.StoreStatusSyncing); err != nil {
		return err
	}

	if err := s.pull(ctx, client, shop); err != nil {
		s.markFailed(ctx, shop.ID, err)
		return err
	}

	return s.store.Shops().MarkSynced(ctx, shop.ID, time.Now().UTC())
}

func (s *Syncer) pull(ctx context.Context, client *woo.Client, shop *objects.Store) error {
	var orders, products int

	// Orders and products are independent resources, pull them in
	// parallel.
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		n, err := s.pullOrders(groupCtx, client, shop)
		orders = n

		return err
	})
	group.Go(func() error {
		n, err := s.pullProducts(groupCtx, client, shop)
		products = n

		return err
	})

	if err := group.Wait(); err != nil {
		return err
	}

	log.Info(ctx, "store sync finished",
		log.String("shop_id", shop.ID),
		log.Any("orders", orders),
		log.Any("products", products),
	)

	return nil
}

func (s *Syncer) pullOrders(ctx context.Context, client *woo.Client, shop *objects.Store) (int, error) {
	total := 0

	for page := 1; ; page++ {
		batch, err := client.ListOrders(ctx, page, s.pageSize)
		if err != nil {
			return total, err
		}

		for _, remote := range batch {
			order, err := remote.ToOrder()
			if err != nil {
				log.Warn(ctx, "skipping unparseable order",
					log.String("shop_id", shop.ID),
					log.String("number", remote.Number),
					log.Cause(err),
				)

				continue
			}

			order.StoreID = &shop.ID
			if err := s.store.Orders().Upsert(ctx, order); err != nil {
				return total, err
			}

			syncedEntities.WithLabelValues("order").Inc()
			total++
		}

		if len(batch) < s.pageSize {
			return total, nil
		}
	}
}

func (s *Syncer) pullProducts(ctx context.Context, client *woo.Client, shop *objects.Store) (int, error) {
	total := 0

	for page := 1; ; page++ {
		batch, err := client.ListProducts(ctx, page, s.pageSize)
		if err != nil {
			return total, err
		}

		for _, remote := range batch {
			// Products without a SKU cannot be reconciled across syncs.
			if remote.SKU == "" {
				continue
			}

			product, err := remote.ToProduct()
			if err != nil {
				continue
			}

			product.StoreID = &shop.ID
			if err := s.store.Products().Upsert(ctx, product); err != nil {
				return total, err
			}

			syncedEntities.WithLabelValues("product").Inc()
			total++
		}

		if len(batch) < s.pageSize {
			return total, nil
		}
	}
}

// markFailed records the connection state after a failed sync. Auth
// failures flip the store to disconnected so the UI prompts for new
// credentials; transient failures restore the connected state.
func (s *Syncer) markFailed(ctx context.Context, shopID string, cause error) {
	status := objects.StoreStatusConnected

	var httpErr *httpclient.Error
	if errors.As(cause, &httpErr) {
		if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
			status = objects.StoreStatusDisconnected
		}
	}

	if err := s.store.Shops().UpdateStatus(ctx, shopID, status); err != nil {
		log.Error(ctx, "failed to update store status after sync failure",
			log.String("shop_id", shopID),
			log.Cause(err),
		)
	}
}
