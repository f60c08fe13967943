package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ougirez/statdash/internal/api"
	"github.com/ougirez/statdash/internal/api/controller"
	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/httpclient"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/metrics"
	"github.com/ougirez/statdash/internal/pkg/store"
	"github.com/ougirez/statdash/internal/pkg/store/memstore"
	"github.com/ougirez/statdash/internal/pkg/store/sheets"
	"github.com/ougirez/statdash/internal/pkg/store/xpgx"
	"github.com/ougirez/statdash/internal/service/catalog"
	"github.com/ougirez/statdash/internal/service/dashboard"
	"github.com/ougirez/statdash/internal/service/orchestrator"
	"github.com/ougirez/statdash/internal/service/providers"
	"github.com/ougirez/statdash/internal/service/reconcile"
)

const flagConfig = "config"

// loadConfig reads --config and STATDASH_* and initialises the global logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(viper.New(), path)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding}); err != nil {
		return nil, fmt.Errorf("logger.Init: %w", err)
	}
	return cfg, nil
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, func(), error) {
	switch cfg.Backend {
	case config.StoreBackendSheets:
		st, err := sheets.New(ctx, cfg.SpreadsheetID, cfg.CredentialsFile, cfg.ReadPageSize)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil

	case config.StoreBackendPostgres:
		if cfg.DSN == "" {
			return nil, nil, fmt.Errorf("store.dsn: %w", constants.ErrConfigurationMissing)
		}
		pool, err := xpgx.NewPool(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("xpgx.NewPool: %w", err)
		}
		return store.NewStore(pool, cfg.ReadPageSize), pool.Close, nil

	case config.StoreBackendMemory:
		st := memstore.New()
		st.Seed(cfg.DataTable, reconcile.DataColumns)
		st.Seed(cfg.CatalogTable, catalog.Columns)
		return st, func() {}, nil
	}

	return nil, nil, fmt.Errorf("store.backend %q: %w", cfg.Backend, constants.ErrConfigurationMissing)
}

type application struct {
	orchestrator *orchestrator.Orchestrator
	catalog      *catalog.Service
	dashboard    *dashboard.Service
	registry     *prometheus.Registry
	close        func()
}

func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	st, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewSyncMetrics(reg)

	client := httpclient.NewDefaultClient(httpclient.Options{
		Timeout: cfg.BPS.Timeout,
		Headers: map[string]string{
			"User-Agent": cfg.BPS.UserAgent,
			"Referer":    cfg.BPS.Referer,
			"Origin":     cfg.BPS.Origin,
		},
		MaxRetries:    cfg.BPS.MaxRetries,
		RetryInterval: cfg.BPS.RetryInterval,
	})

	catalogSvc := catalog.NewCatalogService(st, cfg.Store)
	dashboardSvc, err := dashboard.NewDashboardService(st, catalogSvc, cfg.Store, cfg.Dashboard.CacheSize)
	if err != nil {
		closeStore()
		return nil, err
	}

	orch := orchestrator.NewOrchestrator(
		providers.NewProvidersService(client, cfg.BPS, m),
		catalogSvc,
		reconcile.NewFactory(st, cfg.Store, m),
		orchestrator.WithInvalidator(dashboardSvc),
		orchestrator.WithMetrics(m),
	)

	return &application{
		orchestrator: orch,
		catalog:      catalogSvc,
		dashboard:    dashboardSvc,
		registry:     reg,
		close:        closeStore,
	}, nil
}

func (a *application) apiService(cfg config.HTTPConfig) (*api.APIService, error) {
	return api.NewAPIService(cfg, controller.Services{
		Sync:      a.orchestrator,
		Catalog:   a.catalog,
		Dashboard: a.dashboard,
	}, a.registry)
}
