package controller

import (
	"context"

	"github.com/ougirez/statdash/internal/domain"
)

// SyncService is the sync workflow.
type SyncService interface {
	Init(ctx context.Context) (*domain.SyncJob, error)
	ProcessOne(ctx context.Context, indicatorID string) *domain.ItemResult
	Finish(ctx context.Context)
	Run(ctx context.Context, progress func(domain.Progress)) (*domain.RunReport, error)
	Status() *domain.SyncJob
}

type CatalogService interface {
	List(ctx context.Context) ([]*domain.Indicator, error)
	Get(ctx context.Context, id string) (*domain.Indicator, error)
	Create(ctx context.Context, ind *domain.Indicator) error
	Update(ctx context.Context, id string, upd domain.IndicatorUpdate) (*domain.Indicator, error)
	Delete(ctx context.Context, id string) error
}

type DashboardService interface {
	Get(ctx context.Context, slug string) (*domain.Dashboard, error)
	Home(ctx context.Context) (*domain.Dashboard, error)
	NavLinks(ctx context.Context) ([]string, error)
	Invalidate()
}

type Services struct {
	Sync      SyncService
	Catalog   CatalogService
	Dashboard DashboardService
}

type Controller struct {
	sync      SyncService
	catalog   CatalogService
	dashboard DashboardService
}

func NewController(services Services) *Controller {
	return &Controller{
		sync:      services.Sync,
		catalog:   services.Catalog,
		dashboard: services.Dashboard,
	}
}
