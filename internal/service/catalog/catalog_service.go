// Package catalog reads and edits the indicator catalog table.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/store"
	"github.com/ougirez/statdash/internal/service/reconcile"
)

// Catalog table columns.
const (
	ColID             = "Id"
	ColLabel          = "Label"
	ColCategory       = "Kategori"
	ColStatus         = "Status"
	ColDescription    = "Deskripsi"
	ColChartType      = "TipeGrafik"
	ColColorTheme     = "Warna"
	ColTrendPolarity  = "TrendLogic"
	ColShowOnHome     = "ShowOnHome"
	ColTargetRPJMD    = "TargetRPJMD"
	ColCategoryFilter = "DataFilter"
	ColYearFilter     = "FilterTahun"
)

var Columns = []string{
	ColID, ColLabel, ColCategory, ColStatus, ColDescription, ColChartType,
	ColColorTheme, ColTrendPolarity, ColShowOnHome, ColTargetRPJMD,
	ColCategoryFilter, ColYearFilter,
}

const (
	sheetTrue  = "TRUE"
	sheetFalse = "FALSE"
)

type Service struct {
	store store.Store
	table string
}

func NewCatalogService(st store.Store, cfg config.StoreConfig) *Service {
	return &Service{store: st, table: cfg.CatalogTable}
}

type entry struct {
	row       store.Row
	indicator *domain.Indicator
}

func (s *Service) load(ctx context.Context) (reconcile.HeaderMap, []entry, error) {
	actual, err := s.store.LoadHeaders(ctx, s.table)
	if err != nil {
		return reconcile.HeaderMap{}, nil, fmt.Errorf("store.LoadHeaders, table-%s: %w", s.table, err)
	}
	h := reconcile.ResolveHeaders(actual, Columns)

	rows, err := s.store.GetAllRows(ctx, s.table)
	if err != nil {
		return reconcile.HeaderMap{}, nil, fmt.Errorf("store.GetAllRows, table-%s: %w", s.table, err)
	}

	entries := make([]entry, 0, len(rows))
	for _, row := range rows {
		ind := fromRow(h, row)
		if ind.ID == "" {
			continue
		}
		entries = append(entries, entry{row: row, indicator: ind})
	}
	return h, entries, nil
}

// List returns every catalog entry in table order.
func (s *Service) List(ctx context.Context) ([]*domain.Indicator, error) {
	_, entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Indicator, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.indicator)
	}
	return out, nil
}

// Active returns entries whose status is Aktif, in table order.
func (s *Service) Active(ctx context.Context) ([]*domain.Indicator, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]*domain.Indicator, 0, len(all))
	for _, ind := range all {
		if ind.Active() {
			active = append(active, ind)
		}
	}
	return active, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Indicator, error) {
	_, entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	e, ok := find(entries, id)
	if !ok {
		return nil, fmt.Errorf("indicator-%s: %w", id, constants.ErrIndicatorNotFound)
	}
	return e.indicator, nil
}

// Create appends a new entry with presentation defaults. Ids are unique.
func (s *Service) Create(ctx context.Context, ind *domain.Indicator) error {
	h, entries, err := s.load(ctx)
	if err != nil {
		return err
	}

	ind.ID = strings.TrimSpace(ind.ID)
	if _, ok := find(entries, ind.ID); ok {
		return fmt.Errorf("indicator-%s: %w", ind.ID, constants.ErrIndicatorExists)
	}
	ind.ApplyDefaults()

	if err = s.store.AddRows(ctx, s.table, []store.Record{toRecord(h, ind)}, 1); err != nil {
		return fmt.Errorf("store.AddRows, indicator-%s: %w", ind.ID, err)
	}

	logger.Infof(ctx, "indicator %s (%s) added to %s", ind.ID, ind.Label, ind.Category)
	return nil
}

// Update applies the non-nil fields of upd and returns the stored result.
func (s *Service) Update(ctx context.Context, id string, upd domain.IndicatorUpdate) (*domain.Indicator, error) {
	h, entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	e, ok := find(entries, id)
	if !ok {
		return nil, fmt.Errorf("indicator-%s: %w", id, constants.ErrIndicatorNotFound)
	}

	fields := make(store.Record)
	set := func(col string, v *string, dst *string) {
		if v == nil {
			return
		}
		*dst = strings.TrimSpace(*v)
		fields[h.Column(col)] = *dst
	}

	ind := *e.indicator
	set(ColStatus, upd.Status, &ind.Status)
	set(ColCategory, upd.Category, &ind.Category)
	set(ColDescription, upd.Description, &ind.Description)
	set(ColChartType, upd.ChartType, &ind.ChartType)
	set(ColColorTheme, upd.ColorTheme, &ind.ColorTheme)
	set(ColTrendPolarity, upd.TrendPolarity, &ind.TrendPolarity)
	set(ColTargetRPJMD, upd.TargetRPJMD, &ind.TargetRPJMD)
	set(ColCategoryFilter, upd.CategoryFilter, &ind.CategoryFilter)
	set(ColYearFilter, upd.YearFilter, &ind.YearFilter)
	if upd.ShowOnHome != nil {
		ind.ShowOnHome = *upd.ShowOnHome
		fields[h.Column(ColShowOnHome)] = formatBool(ind.ShowOnHome)
	}

	if err = s.store.UpdateRow(ctx, e.row, fields); err != nil {
		return nil, fmt.Errorf("store.UpdateRow, indicator-%s: %w", id, err)
	}
	return &ind, nil
}

// Delete removes the catalog entry. Data rows of the indicator are left in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, entries, err := s.load(ctx)
	if err != nil {
		return err
	}

	e, ok := find(entries, id)
	if !ok {
		return fmt.Errorf("indicator-%s: %w", id, constants.ErrIndicatorNotFound)
	}

	if err = s.store.DeleteRow(ctx, e.row); err != nil {
		return fmt.Errorf("store.DeleteRow, indicator-%s: %w", id, err)
	}
	return nil
}

func find(entries []entry, id string) (entry, bool) {
	id = strings.TrimSpace(id)
	for _, e := range entries {
		if e.indicator.ID == id {
			return e, true
		}
	}
	return entry{}, false
}

func fromRow(h reconcile.HeaderMap, row store.Row) *domain.Indicator {
	get := func(col string) string { return row.Get(h.Column(col)) }

	return &domain.Indicator{
		ID:             get(ColID),
		Label:          get(ColLabel),
		Category:       get(ColCategory),
		Status:         get(ColStatus),
		Description:    get(ColDescription),
		ChartType:      orDefault(get(ColChartType), domain.DefaultChartType),
		ColorTheme:     orDefault(get(ColColorTheme), domain.DefaultColorTheme),
		TrendPolarity:  orDefault(get(ColTrendPolarity), domain.DefaultTrendPolarity),
		ShowOnHome:     strings.EqualFold(get(ColShowOnHome), sheetTrue),
		TargetRPJMD:    get(ColTargetRPJMD),
		CategoryFilter: get(ColCategoryFilter),
		YearFilter:     get(ColYearFilter),
	}
}

func toRecord(h reconcile.HeaderMap, ind *domain.Indicator) store.Record {
	return store.Record{
		h.Column(ColID):             ind.ID,
		h.Column(ColLabel):          ind.Label,
		h.Column(ColCategory):       ind.Category,
		h.Column(ColStatus):         ind.Status,
		h.Column(ColDescription):    ind.Description,
		h.Column(ColChartType):      ind.ChartType,
		h.Column(ColColorTheme):     ind.ColorTheme,
		h.Column(ColTrendPolarity):  ind.TrendPolarity,
		h.Column(ColShowOnHome):     formatBool(ind.ShowOnHome),
		h.Column(ColTargetRPJMD):    ind.TargetRPJMD,
		h.Column(ColCategoryFilter): ind.CategoryFilter,
		h.Column(ColYearFilter):     ind.YearFilter,
	}
}

func formatBool(b bool) string {
	if b {
		return sheetTrue
	}
	return sheetFalse
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
