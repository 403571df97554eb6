package biz

import (
	"context"
	"strings"

	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/store"
)

type UserServiceParams struct {
	fx.In

	Store *store.Store
}

func NewUserService(params UserServiceParams) *UserService {
	return &UserService{
		AbstractService: &AbstractService{store: params.Store},
	}
}

type UserService struct {
	*AbstractService
}

type CreateUserInput struct {
	Email    string       `json:"email" binding:"required,email"`
	Name     string       `json:"name"`
	Password string       `json:"password" binding:"required,min=8"`
	Role     objects.Role `json:"role" binding:"required"`

	// TenantID is honoured only for system-initiated provisioning;
	// requests from users always create inside their own tenant.
	TenantID string `json:"tenantId"`
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*objects.User, error) {
	if !input.Role.Valid() {
		return nil, errs.Validation("Invalid role", map[string]any{"role": input.Role})
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, errs.Internal(err)
	}

	user := &objects.User{
		TenantID:     input.TenantID,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         input.Name,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       objects.UserStatusActive,
	}

	// Email is globally unique since it is the login key.
	existing, err := authz.RunWithSystemBypass(ctx, "user-email-check", func(bypassCtx context.Context) (*objects.User, error) {
		return s.store.Users().GetByEmailUnscoped(bypassCtx, user.Email)
	})
	if err == nil && existing != nil {
		return nil, errs.Conflict("Email already in use")
	} else if err != nil && !store.IsNotFound(err) {
		return nil, err
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info(ctx, "user created",
		log.String("user_id", user.ID),
		log.String("tenant_id", user.TenantID),
		log.String("role", user.Role.String()),
	)

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*objects.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errs.NotFound("User", id)
		}

		return nil, err
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, page objects.PageParams) ([]*objects.User, int64, error) {
	return s.store.Users().List(ctx, page)
}

func (s *UserService) SetUserStatus(ctx context.Context, id string, status objects.UserStatus) error {
	if status != objects.UserStatusActive && status != objects.UserStatusDisabled {
		return errs.Validation("Invalid user status", map[string]any{"status": status})
	}

	if err := s.store.Users().UpdateStatus(ctx, id, status); err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("User", id)
		}

		return err
	}

	return nil
}
