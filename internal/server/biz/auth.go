package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/store"
)

type AuthServiceParams struct {
	fx.In

	SystemService *SystemService
	Store         *store.Store
	TokenTTL      time.Duration `name:"auth_token_ttl"`
}

func NewAuthService(params AuthServiceParams) *AuthService {
	ttl := params.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &AuthService{
		AbstractService: &AbstractService{store: params.Store},
		SystemService:   params.SystemService,
		tokenTTL:        ttl,
	}
}

type AuthService struct {
	*AbstractService

	SystemService *SystemService
	tokenTTL      time.Duration
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedPassword), nil
}

// VerifyPassword verifies a password against a bcrypt hash.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// GenerateToken issues a signed session token for a user. Claims carry
// the user, tenant and role so middleware can treat them as hints, but
// identity is always re-verified against the user row.
func (s *AuthService) GenerateToken(ctx context.Context, user *objects.User) (string, error) {
	secretKey, err := authz.RunWithSystemBypass(ctx, "auth-get-secret-key", func(bypassCtx context.Context) (string, error) {
		return s.SystemService.SecretKey(bypassCtx)
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret key: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
		"role":      user.Role.String(),
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// AuthenticateUser verifies email and password credentials.
func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) (*objects.User, error) {
	u, err := authz.RunWithSystemBypass(ctx, "auth-lookup", func(bypassCtx context.Context) (*objects.User, error) {
		return s.store.Users().GetByEmailUnscoped(bypassCtx, email)
	})
	if err != nil {
		if store.IsNotFound(err) {
			// Burn a comparison so unknown emails take as long as
			// wrong passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))

			return nil, errs.ErrInvalidCredentials
		}

		log.Error(ctx, "failed to get user", log.Cause(err))

		return nil, errs.Internal(err)
	}

	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	if u.Status != objects.UserStatusActive {
		return nil, errs.ErrInvalidCredentials
	}

	log.Debug(ctx, "user authenticated", log.String("user_id", u.ID))

	return u, nil
}

// AuthenticateToken validates a session token and returns its user.
func (s *AuthService) AuthenticateToken(ctx context.Context, tokenString string) (*objects.User, error) {
	secretKey, err := authz.RunWithSystemBypass(ctx, "auth-get-secret-key", func(bypassCtx context.Context) (string, error) {
		return s.SystemService.SecretKey(bypassCtx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method: %v", errs.ErrInvalidToken, token.Header["alg"])
		}

		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse token: %w", errs.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errs.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errs.ErrInvalidToken
	}

	u, err := authz.RunWithSystemBypass(ctx, "auth-lookup", func(bypassCtx context.Context) (*objects.User, error) {
		return s.store.Users().GetByIDUnscoped(bypassCtx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user: %w", errs.ErrInvalidToken, err)
	}

	if u.Status != objects.UserStatusActive {
		return nil, errs.ErrInvalidToken
	}

	return u, nil
}

// dummyHash is a bcrypt hash of an unguessable value, used to equalize
// timing between unknown-email and wrong-password failures.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("fulexo-timing-equalizer"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	return h
}()
