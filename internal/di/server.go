package di

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ferrohq/ferro/internal/config"
	httpctrl "github.com/ferrohq/ferro/internal/controller/http"
	"github.com/ferrohq/ferro/internal/inertia"
	"github.com/ferrohq/ferro/internal/middleware"
	"github.com/ferrohq/ferro/internal/observability"
	"github.com/ferrohq/ferro/internal/security"
)

// HTTPServerModule provides HTTP server dependencies
var HTTPServerModule = fx.Module("http_server",
	fx.Provide(provideGinEngine),
	fx.Provide(provideHTTPServer),
	fx.Invoke(registerHTTPRoutes),
	fx.Invoke(startHTTPServer),
)

func provideGinEngine(
	cfg *config.AppConfig,
	logger *zap.Logger,
	rd *inertia.Renderer,
	csrf *security.CSRFProvider,
	mp *observability.MetricsProvider,
) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware. The renderer middleware must run before the
	// CSRF middleware so it can contribute the token as a shared prop.
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(observability.TracingMiddleware(cfg.Name))
	router.Use(observability.MetricsMiddleware(mp))
	router.Use(rd.Middleware())
	router.Use(csrf.Middleware())

	return router
}

func provideHTTPServer(cfg *config.ServerConfig, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Controllers is a struct that holds all HTTP controllers for fx to inject
type Controllers struct {
	fx.In

	Page *httpctrl.PageController
	API  *httpctrl.APIController
}

func registerHTTPRoutes(
	router *gin.Engine,
	controllers Controllers,
	csrf *security.CSRFProvider,
	mp *observability.MetricsProvider,
) {
	// Health endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(mp.Handler()))

	root := router.Group("/")
	root.Use(csrf.RequireToken())

	controllers.Page.RegisterRoutes(root)
	controllers.API.RegisterRoutes(root)
}

func startHTTPServer(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting HTTP server", zap.String("address", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
