package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/log"
	"github.com/fulexo/platform/internal/pkg/xcrypto"
	"github.com/fulexo/platform/internal/server/api"
	"github.com/fulexo/platform/internal/server/biz"
	"github.com/fulexo/platform/internal/server/dependencies"
	"github.com/fulexo/platform/internal/server/middleware"
	"github.com/fulexo/platform/internal/server/worker"
	"github.com/fulexo/platform/internal/tracing"
)

func New(config Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())

	return &Server{
		Config: config,
		Engine: engine,
	}
}

type Server struct {
	*gin.Engine

	Config Config
	server *http.Server
	addr   string
}

func (srv *Server) Run() error {
	log.Info(context.Background(), "run server",
		log.String("name", srv.Config.Name),
		log.String("host", srv.Config.Host),
		log.Int("port", srv.Config.Port),
	)
	addr := fmt.Sprintf("%s:%d", srv.Config.Host, srv.Config.Port)
	srv.server = &http.Server{
		Addr:         addr,
		Handler:      srv.Engine,
		ReadTimeout:  srv.Config.ReadTimeout,
		WriteTimeout: max(srv.Config.RequestTimeout, srv.Config.SyncTimeout),
	}
	srv.addr = addr

	err := srv.server.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}

	return nil
}

func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.server.Shutdown(ctx)
}

func Run(opts ...fx.Option) {
	app := fx.New(
		append([]fx.Option{
			fx.NopLogger,
			fx.Provide(New),
			fx.Provide(func(cfg Config) (*xcrypto.Cipher, error) {
				return xcrypto.NewCipher(cfg.Auth.EncryptionSecret)
			}),
			fx.Provide(
				fx.Annotate(
					func(cfg Config) time.Duration { return cfg.Auth.TokenTTL },
					fx.ResultTags(`name:"auth_token_ttl"`),
				),
				fx.Annotate(
					func(cfg Config) string { return cfg.Auth.CookieName },
					fx.ResultTags(`name:"auth_cookie_name"`),
				),
				fx.Annotate(
					func(cfg Config) bool { return cfg.Auth.CookieSecure },
					fx.ResultTags(`name:"auth_cookie_secure"`),
				),
			),
			dependencies.Module,
			biz.Module,
			api.Module,
			worker.Module,
			fx.Invoke(func(cfg log.Config) {
				log.SetGlobalConfig(cfg)
				tracing.SetupLogger(log.GetGlobalLogger())
				slog.SetDefault(log.GetGlobalLogger().AsSlog())
			}),
			fx.Invoke(SetupRoutes),
		}, opts...)...,
	)
	app.Run()
}
