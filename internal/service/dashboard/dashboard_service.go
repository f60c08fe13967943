// Package dashboard serves the read side: per-category indicator data with view caching.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/store"
	"github.com/ougirez/statdash/internal/service/reconcile"
)

// homeKey caches the home view; category slugs are never empty.
const homeKey = ""

// Catalog is the part of the indicator catalog the dashboard reads.
type Catalog interface {
	Active(ctx context.Context) ([]*domain.Indicator, error)
}

type Service struct {
	store     store.Store
	catalog   Catalog
	dataTable string
	cache     *lru.Cache[string, *domain.Dashboard]
}

func NewDashboardService(st store.Store, catalog Catalog, cfg config.StoreConfig, cacheSize int) (*Service, error) {
	cache, err := lru.New[string, *domain.Dashboard](max(cacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("lru.New: %w", err)
	}
	return &Service{store: st, catalog: catalog, dataTable: cfg.DataTable, cache: cache}, nil
}

// Get returns the active indicators of category slug and their filtered rows.
func (s *Service) Get(ctx context.Context, slug string) (*domain.Dashboard, error) {
	key := strings.ToLower(strings.TrimSpace(slug))
	if key == homeKey {
		return &domain.Dashboard{Meta: []*domain.Indicator{}, Data: []*domain.DataPoint{}}, nil
	}

	return s.view(ctx, key, func(ind *domain.Indicator) bool { return ind.InCategory(key) })
}

// Home returns the indicators flagged for the landing page.
func (s *Service) Home(ctx context.Context) (*domain.Dashboard, error) {
	return s.view(ctx, homeKey, func(ind *domain.Indicator) bool { return ind.ShowOnHome })
}

// NavLinks lists the distinct categories of active indicators, capitalized and sorted.
func (s *Service) NavLinks(ctx context.Context) ([]string, error) {
	active, err := s.catalog.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.Active: %w", err)
	}

	seen := make(map[string]struct{})
	links := make([]string, 0)
	for _, ind := range active {
		name := capitalize(ind.Category)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		links = append(links, name)
	}
	sort.Strings(links)
	return links, nil
}

// Invalidate drops every cached view.
func (s *Service) Invalidate() {
	n := s.cache.Len()
	s.cache.Purge()
	logger.Debugf(context.Background(), "dashboard cache purged, %d views", n)
}

func (s *Service) view(ctx context.Context, key string, match func(*domain.Indicator) bool) (*domain.Dashboard, error) {
	if d, ok := s.cache.Get(key); ok {
		return d, nil
	}

	active, err := s.catalog.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.Active: %w", err)
	}

	selected := make(map[string]*domain.Indicator)
	meta := make([]*domain.Indicator, 0)
	for _, ind := range active {
		if match(ind) {
			selected[ind.ID] = ind
			meta = append(meta, ind)
		}
	}

	data := make([]*domain.DataPoint, 0)
	if len(selected) > 0 {
		data, err = s.rows(ctx, selected)
		if err != nil {
			return nil, err
		}
	}

	d := &domain.Dashboard{Meta: meta, Data: data}
	s.cache.Add(key, d)
	return d, nil
}

func (s *Service) rows(ctx context.Context, selected map[string]*domain.Indicator) ([]*domain.DataPoint, error) {
	actual, err := s.store.LoadHeaders(ctx, s.dataTable)
	if err != nil {
		return nil, fmt.Errorf("store.LoadHeaders, table-%s: %w", s.dataTable, err)
	}
	h := reconcile.ResolveHeaders(actual, reconcile.DataColumns)

	all, err := s.store.GetAllRows(ctx, s.dataTable)
	if err != nil {
		return nil, fmt.Errorf("store.GetAllRows, table-%s: %w", s.dataTable, err)
	}

	filters := make(map[string]filter, len(selected))
	for id, ind := range selected {
		filters[id] = newFilter(ind)
	}

	data := make([]*domain.DataPoint, 0)
	for _, row := range all {
		p := reconcile.FromRow(h, row)
		ind, ok := selected[p.IndicatorID]
		if !ok || !filters[p.IndicatorID].keep(p) {
			continue
		}
		p.IndicatorLabel = ind.Label
		data = append(data, p)
	}
	return data, nil
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
