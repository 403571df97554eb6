package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/build"
	"github.com/fulexo/platform/internal/contexts"
	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/server/biz"
)

type SystemHandlersParams struct {
	fx.In

	SystemService *biz.SystemService
	TenantService *biz.TenantService
	UserService   *biz.UserService
	Pool          *pgxpool.Pool
	Redis         *redis.Client `optional:"true"`
}

func NewSystemHandlers(params SystemHandlersParams) *SystemHandlers {
	return &SystemHandlers{
		SystemService: params.SystemService,
		TenantService: params.TenantService,
		UserService:   params.UserService,
		pool:          params.Pool,
		redis:         params.Redis,
	}
}

// SystemHandlers serves health probes and the first-run setup flow.
type SystemHandlers struct {
	SystemService *biz.SystemService
	TenantService *biz.TenantService
	UserService   *biz.UserService

	pool  *pgxpool.Pool
	redis *redis.Client
}

type healthCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Health pings the backing services. Degraded dependencies report as
// unhealthy but the endpoint itself still answers.
func (h *SystemHandlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]healthCheck{
		"database": h.pingDatabase(ctx),
	}
	if h.redis != nil {
		checks["redis"] = h.pingRedis(ctx)
	}

	status := http.StatusOK
	overall := "healthy"

	for _, check := range checks {
		if check.Status != "healthy" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}
	}

	c.JSON(status, objects.NewResponse(gin.H{
		"status":  overall,
		"version": build.Version,
		"checks":  checks,
	}, "", status, c.Request.URL.Path))
}

func (h *SystemHandlers) pingDatabase(ctx context.Context) healthCheck {
	start := time.Now()
	if err := h.pool.Ping(ctx); err != nil {
		return healthCheck{Status: "unhealthy", Error: err.Error()}
	}

	return healthCheck{Status: "healthy", Latency: time.Since(start).String()}
}

func (h *SystemHandlers) pingRedis(ctx context.Context) healthCheck {
	start := time.Now()
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return healthCheck{Status: "unhealthy", Error: err.Error()}
	}

	return healthCheck{Status: "healthy", Latency: time.Since(start).String()}
}

// Status reports build info and whether first-run setup has completed.
func (h *SystemHandlers) Status(c *gin.Context) {
	initialized, err := h.SystemService.Initialized(authz.NewSystemContext(c.Request.Context()))
	if err != nil {
		Error(c, err)
		return
	}

	OK(c, gin.H{
		"build":       build.GetBuildInfo(),
		"initialized": initialized,
	}, "")
}

type InitializeRequest struct {
	TenantName    string `json:"tenantName" binding:"required"`
	AdminEmail    string `json:"adminEmail" binding:"required,email"`
	AdminName     string `json:"adminName"`
	AdminPassword string `json:"adminPassword" binding:"required,min=8"`
}

// Initialize performs first-run setup: the first tenant, its admin
// account, and the initialized marker. It refuses to run twice, so it
// can stay on an open route.
func (h *SystemHandlers) Initialize(c *gin.Context) {
	var req InitializeRequest
	if !BindJSON(c, &req) {
		return
	}

	sysCtx := authz.NewSystemContext(c.Request.Context())

	initialized, err := h.SystemService.Initialized(sysCtx)
	if err != nil {
		Error(c, err)
		return
	}
	if initialized {
		Error(c, errs.Conflict("System is already initialized"))
		return
	}

	tenant, err := h.TenantService.CreateTenant(sysCtx, biz.CreateTenantInput{
		Name: req.TenantName,
	})
	if err != nil {
		Error(c, err)
		return
	}

	admin, err := h.UserService.CreateUser(contexts.WithTenantID(sysCtx, tenant.ID), biz.CreateUserInput{
		Email:    req.AdminEmail,
		Name:     req.AdminName,
		Password: req.AdminPassword,
		Role:     objects.RoleAdmin,
		TenantID: tenant.ID,
	})
	if err != nil {
		Error(c, err)
		return
	}

	if err := h.SystemService.MarkInitialized(sysCtx); err != nil {
		Error(c, err)
		return
	}

	Created(c, gin.H{
		"tenant": tenant,
		"admin":  admin,
	}, "System initialized")
}
