package biz

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/pkg/xcrypto"
	"github.com/fulexo/platform/internal/store"
)

type ShopServiceParams struct {
	fx.In

	Store  *store.Store
	Cipher *xcrypto.Cipher
}

func NewShopService(params ShopServiceParams) *ShopService {
	return &ShopService{
		AbstractService: &AbstractService{store: params.Store},
		cipher:          params.Cipher,
	}
}

// ShopService manages WooCommerce connections. Consumer credentials are
// encrypted before they reach the store and only decrypted for sync.
type ShopService struct {
	*AbstractService

	cipher *xcrypto.Cipher
}

type ConnectShopInput struct {
	Name           string `json:"name" binding:"required"`
	BaseURL        string `json:"baseUrl" binding:"required,url"`
	ConsumerKey    string `json:"consumerKey" binding:"required"`
	ConsumerSecret string `json:"consumerSecret" binding:"required"`
}

func (s *ShopService) ConnectShop(ctx context.Context, input ConnectShopInput) (*objects.Store, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(input.BaseURL), "/")

	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errs.Validation("Invalid base URL", map[string]any{"baseUrl": input.BaseURL})
	}

	key, err := s.cipher.Encrypt(input.ConsumerKey)
	if err != nil {
		return nil, errs.Internal(err)
	}

	secret, err := s.cipher.Encrypt(input.ConsumerSecret)
	if err != nil {
		return nil, errs.Internal(err)
	}

	shop := &objects.Store{
		Name:           input.Name,
		BaseURL:        baseURL,
		ConsumerKey:    key,
		ConsumerSecret: secret,
		Status:         objects.StoreStatusDisconnected,
	}

	if err := s.store.Shops().Create(ctx, shop); err != nil {
		return nil, err
	}

	log.Info(ctx, "shop connected",
		log.String("store_id", shop.ID),
		log.String("base_url", shop.BaseURL),
	)

	return shop, nil
}

func (s *ShopService) GetShop(ctx context.Context, id string) (*objects.Store, error) {
	shop, err := s.store.Shops().GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errs.NotFound("Store", id)
		}

		return nil, err
	}

	return shop, nil
}

func (s *ShopService) ListShops(ctx context.Context, page objects.PageParams) ([]*objects.Store, int64, error) {
	return s.store.Shops().List(ctx, page)
}

// Credentials decrypts the consumer key pair of a shop for a sync run.
func (s *ShopService) Credentials(ctx context.Context, shop *objects.Store) (key, secret string, err error) {
	key, err = s.cipher.Decrypt(shop.ConsumerKey)
	if err != nil {
		return "", "", errs.Internal(err)
	}

	secret, err = s.cipher.Decrypt(shop.ConsumerSecret)
	if err != nil {
		return "", "", errs.Internal(err)
	}

	return key, secret, nil
}

func (s *ShopService) DisconnectShop(ctx context.Context, id string) error {
	if err := s.store.Shops().UpdateStatus(ctx, id, objects.StoreStatusDisconnected); err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("Store", id)
		}

		return err
	}

	return nil
}

func (s *ShopService) DeleteShop(ctx context.Context, id string) error {
	if err := s.store.Shops().Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("Store", id)
		}

		return err
	}

	return nil
}
