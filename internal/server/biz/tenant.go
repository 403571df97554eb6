package biz

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/store"
)

type TenantServiceParams struct {
	fx.In

	Store *store.Store
}

func NewTenantService(params TenantServiceParams) *TenantService {
	return &TenantService{
		AbstractService: &AbstractService{store: params.Store},
	}
}

// TenantService manages tenants. Tenant rows are not tenant-scoped, so
// every store call runs through an audited bypass; route guards restrict
// the endpoints to admins.
type TenantService struct {
	*AbstractService
}

type CreateTenantInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a tenant name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

func (s *TenantService) CreateTenant(ctx context.Context, input CreateTenantInput) (*objects.Tenant, error) {
	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Name)
	}

	if slug == "" {
		return nil, errs.Validation("Tenant name is required", nil)
	}

	tenant := &objects.Tenant{
		Name:   input.Name,
		Slug:   slug,
		Status: objects.TenantStatusActive,
	}

	_, err := authz.RunWithSystemBypass(ctx, "admin-tenant-create", func(bypassCtx context.Context) (struct{}, error) {
		if _, err := s.store.Tenants().GetBySlug(bypassCtx, slug); err == nil {
			return struct{}{}, errs.Conflict("Tenant slug already in use")
		} else if !store.IsNotFound(err) {
			return struct{}{}, err
		}

		return struct{}{}, s.store.Tenants().Create(bypassCtx, tenant)
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "tenant created",
		log.String("tenant_id", tenant.ID),
		log.String("slug", tenant.Slug),
	)

	return tenant, nil
}

func (s *TenantService) GetTenant(ctx context.Context, id string) (*objects.Tenant, error) {
	tenant, err := authz.RunWithSystemBypass(ctx, "admin-tenant-get", func(bypassCtx context.Context) (*objects.Tenant, error) {
		return s.store.Tenants().GetByID(bypassCtx, id)
	})
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errs.NotFound("Tenant", id)
		}

		return nil, err
	}

	return tenant, nil
}

func (s *TenantService) ListTenants(ctx context.Context, page objects.PageParams) ([]*objects.Tenant, int64, error) {
	type result struct {
		tenants []*objects.Tenant
		total   int64
	}

	res, err := authz.RunWithSystemBypass(ctx, "admin-tenant-list", func(bypassCtx context.Context) (result, error) {
		tenants, total, err := s.store.Tenants().List(bypassCtx, page)
		return result{tenants: tenants, total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}

	return res.tenants, res.total, nil
}

func (s *TenantService) SetTenantStatus(ctx context.Context, id string, status objects.TenantStatus) error {
	if status != objects.TenantStatusActive && status != objects.TenantStatusSuspended {
		return errs.Validation("Invalid tenant status", map[string]any{"status": status})
	}

	_, err := authz.RunWithSystemBypass(ctx, "admin-tenant-status", func(bypassCtx context.Context) (struct{}, error) {
		return struct{}{}, s.store.Tenants().UpdateStatus(bypassCtx, id, status)
	})
	if err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("Tenant", id)
		}

		return err
	}

	log.Info(ctx, "tenant status updated",
		log.String("tenant_id", id),
		log.String("status", string(status)),
	)

	return nil
}
