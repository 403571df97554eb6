package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/authz"
	"github.com/fulexo/platform/internal/ratelimit"
	"github.com/fulexo/platform/internal/server/api"
	"github.com/fulexo/platform/internal/server/biz"
	"github.com/fulexo/platform/internal/server/middleware"
)

type Handlers struct {
	fx.In

	System    *api.SystemHandlers
	Auth      *api.AuthHandlers
	Tenants   *api.TenantHandlers
	Users     *api.UserHandlers
	Orders    *api.OrderHandlers
	Products  *api.ProductHandlers
	Customers *api.CustomerHandlers
	Shops     *api.ShopHandlers
	Billing   *api.BillingHandlers
	Calendar  *api.CalendarHandlers
}

func SetupRoutes(server *Server, handlers Handlers, authService *biz.AuthService, gate *ratelimit.Gate) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithLoggingTracing(server.Config.Trace))

	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	// Every request passes through context binding. Requests without a
	// valid token proceed as anonymous; the guards below decide access.
	tokenConfig := middleware.TokenConfig{
		Headers:    middleware.DefaultTokenConfig.Headers,
		CookieName: server.Config.Auth.CookieName,
	}
	server.Use(middleware.WithAuthContext(authService, tokenConfig))

	base := server.Group(server.Config.BasePath)

	publicGroup := base.Group("", middleware.WithTimeout(server.Config.RequestTimeout))
	{
		// Health and metrics - DO NOT AUTH
		publicGroup.GET("/health", handlers.System.Health)
		publicGroup.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	unsecuredGroup := base.Group("",
		middleware.WithTimeout(server.Config.RequestTimeout),
		middleware.WithRateLimit(gate, server.Config.Rates.Auth),
	)
	{
		// System status and first-run setup - DO NOT AUTH
		unsecuredGroup.GET("/system/status", handlers.System.Status)
		unsecuredGroup.POST("/system/initialize", handlers.System.Initialize)
		// User login - DO NOT AUTH
		unsecuredGroup.POST("/auth/signin", handlers.Auth.SignIn)
	}

	apiGroup := base.Group("/api",
		middleware.WithTimeout(server.Config.RequestTimeout),
		middleware.RequireAuth(authz.RequireAuthenticated),
		middleware.WithRateLimit(gate, server.Config.Rates.Default),
	)
	{
		apiGroup.GET("/auth/me", handlers.Auth.Me)
		apiGroup.POST("/auth/signout", handlers.Auth.SignOut)

		apiGroup.POST("/orders", handlers.Orders.Create)
		apiGroup.GET("/orders", handlers.Orders.List)
		apiGroup.GET("/orders/:id", handlers.Orders.Get)
		apiGroup.PUT("/orders/:id/status", handlers.Orders.SetStatus)
		apiGroup.DELETE("/orders/:id", handlers.Orders.Delete)

		apiGroup.POST("/products", handlers.Products.Create)
		apiGroup.GET("/products", handlers.Products.List)
		apiGroup.GET("/products/:id", handlers.Products.Get)
		apiGroup.PUT("/products/:id/price", handlers.Products.SetPrice)
		apiGroup.PUT("/products/:id/stock", handlers.Products.SetStock)
		apiGroup.DELETE("/products/:id", handlers.Products.Delete)

		apiGroup.POST("/customers", handlers.Customers.Create)
		apiGroup.GET("/customers", handlers.Customers.List)
		apiGroup.GET("/customers/:id", handlers.Customers.Get)
		apiGroup.PUT("/customers/:id", handlers.Customers.Update)
		apiGroup.DELETE("/customers/:id", handlers.Customers.Delete)

		apiGroup.POST("/shops", handlers.Shops.Connect)
		apiGroup.GET("/shops", handlers.Shops.List)
		apiGroup.GET("/shops/:id", handlers.Shops.Get)
		apiGroup.POST("/shops/:id/sync", middleware.WithTimeout(server.Config.SyncTimeout), handlers.Shops.Sync)
		apiGroup.POST("/shops/:id/disconnect", handlers.Shops.Disconnect)
		apiGroup.DELETE("/shops/:id", handlers.Shops.Delete)

		apiGroup.POST("/billing/batches", handlers.Billing.Generate)
		apiGroup.GET("/billing/batches", handlers.Billing.List)
		apiGroup.GET("/billing/batches/:id", handlers.Billing.Get)
		apiGroup.PUT("/billing/batches/:id/status", handlers.Billing.SetStatus)

		apiGroup.POST("/calendar/events", handlers.Calendar.Create)
		apiGroup.GET("/calendar/events", handlers.Calendar.List)
		apiGroup.GET("/calendar/events/:id", handlers.Calendar.Get)
		apiGroup.PUT("/calendar/events/:id", handlers.Calendar.Update)
		apiGroup.DELETE("/calendar/events/:id", handlers.Calendar.Delete)
	}

	adminGroup := apiGroup.Group("", middleware.RequireAuth(authz.RequireAdmin))
	{
		adminGroup.POST("/tenants", handlers.Tenants.Create)
		adminGroup.GET("/tenants", handlers.Tenants.List)
		adminGroup.GET("/tenants/:id", handlers.Tenants.Get)
		adminGroup.PUT("/tenants/:id/status", handlers.Tenants.SetStatus)

		adminGroup.POST("/users", handlers.Users.Create)
		adminGroup.GET("/users", handlers.Users.List)
		adminGroup.GET("/users/:id", handlers.Users.Get)
		adminGroup.PUT("/users/:id/status", handlers.Users.SetStatus)
	}
}
