package biz

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/pkg/xcache"
	"github.com/fulexo/platform/internal/store"
)

const (
	// SystemKeySecretKey is the settings key holding the JWT signing key.
	SystemKeySecretKey = "system_jwt_secret_key"

	// SystemKeyInitialized marks a completed first-run setup.
	SystemKeyInitialized = "system_initialized"
)

type SystemServiceParams struct {
	fx.In

	Store       *store.Store
	CacheConfig xcache.Config
	Redis       *redis.Client `optional:"true"`
}

func NewSystemService(params SystemServiceParams) *SystemService {
	return &SystemService{
		AbstractService: &AbstractService{store: params.Store},
		cache:           xcache.NewFromConfig[string](params.CacheConfig, params.Redis),
	}
}

// SystemService owns cross-tenant system settings. Every read and write
// goes through the audited bypass since settings are not tenant rows.
type SystemService struct {
	*AbstractService

	cache xcache.Cache[string]
}

// GenerateSecretKey generates a random signing key.
func GenerateSecretKey() (string, error) {
	bytes := make([]byte, 32)

	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}

// SecretKey returns the JWT signing key, creating one on first use.
func (s *SystemService) SecretKey(ctx context.Context) (string, error) {
	value, err := s.getSystemValue(ctx, SystemKeySecretKey)
	if err == nil && value != "" {
		return value, nil
	}

	if err != nil && !store.IsNotFound(err) {
		return "", err
	}

	secretKey, err := GenerateSecretKey()
	if err != nil {
		return "", err
	}

	if err := s.setSystemValue(ctx, SystemKeySecretKey, secretKey); err != nil {
		return "", err
	}

	log.Info(ctx, "generated new jwt signing key")

	return secretKey, nil
}

// SetSecretKey rotates the signing key, invalidating all live sessions.
func (s *SystemService) SetSecretKey(ctx context.Context, secretKey string) error {
	return s.setSystemValue(ctx, SystemKeySecretKey, secretKey)
}

// Initialized reports whether first-run setup has completed.
func (s *SystemService) Initialized(ctx context.Context) (bool, error) {
	value, err := s.getSystemValue(ctx, SystemKeyInitialized)
	if err != nil {
		if store.IsNotFound(err) {
			return false, nil
		}

		return false, err
	}

	return value == "true", nil
}

// MarkInitialized records a completed first-run setup.
func (s *SystemService) MarkInitialized(ctx context.Context) error {
	return s.setSystemValue(ctx, SystemKeyInitialized, "true")
}

func (s *SystemService) getSystemValue(ctx context.Context, key string) (string, error) {
	cacheKey := "system:" + key

	if v, err := s.cache.Get(ctx, cacheKey); err == nil && v != "" {
		return v, nil
	}

	if err := authz.RequireSystemPrincipal(ctx); err != nil {
		return "", err
	}

	value, err := s.store.GetSetting(ctx, key)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, cacheKey, value); err != nil {
		log.Warn(ctx, "failed to cache system setting", log.String("key", key), log.Cause(err))
	}

	return value, nil
}

func (s *SystemService) setSystemValue(ctx context.Context, key, value string) error {
	if err := authz.RequireSystemPrincipal(ctx); err != nil {
		return err
	}

	if err := s.store.SetSetting(ctx, key, value); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, "system:"+key); err != nil {
		log.Warn(ctx, "failed to invalidate cache", log.String("key", key), log.Cause(err))
	}

	return nil
}
