package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ougirez/statdash/internal/api/controller"
	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/pkg/logger"
)

type APIService struct {
	router      *echo.Echo
	adminSecret string
}

// Serve blocks until the server stops. A graceful Shutdown is not an error.
func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler exposes the router, for tests.
func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(cfg config.HTTPConfig, services controller.Services, gatherer prometheus.Gatherer) (*APIService, error) {
	svc := &APIService{router: echo.New(), adminSecret: cfg.AdminSecret}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Logger.SetLevel(log.WARN)
	svc.router.JSONSerializer = JSONSerializer{}
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.Recover())
	svc.router.Use(RequestIDMiddleware)
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	if gatherer != nil {
		svc.router.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	if cfg.AdminSecret == "" {
		logger.Warnf(context.Background(), "http.admin_secret is empty, admin routes are open")
	}

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(services)

	sync := api.Group("/sync", svc.AdminMiddleware)
	sync.POST("/init", cntrl.InitSync)
	sync.POST("/items/:id", cntrl.ProcessSyncItem)
	sync.POST("/finish", cntrl.FinishSync)
	sync.POST("/run", cntrl.RunSync)
	sync.GET("/status", cntrl.SyncStatus)

	indicators := api.Group("/indicators")
	indicators.GET("", cntrl.ListIndicators)
	indicators.GET("/:id", cntrl.GetIndicator)
	indicators.POST("", cntrl.CreateIndicator, svc.AdminMiddleware)
	indicators.PUT("/:id", cntrl.UpdateIndicator, svc.AdminMiddleware)
	indicators.DELETE("/:id", cntrl.DeleteIndicator, svc.AdminMiddleware)

	dashboard := api.Group("/dashboard")
	dashboard.GET("", cntrl.GetHome)
	dashboard.GET("/nav", cntrl.GetNavLinks)
	dashboard.GET("/:slug", cntrl.GetDashboard)

	return svc, nil
}
