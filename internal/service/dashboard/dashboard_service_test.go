package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/pkg/store"
	"github.com/ougirez/statdash/internal/pkg/store/memstore"
	"github.com/ougirez/statdash/internal/service/reconcile"
)

type fakeCatalog struct {
	calls      int
	indicators []*domain.Indicator
}

func (f *fakeCatalog) Active(context.Context) ([]*domain.Indicator, error) {
	f.calls++
	return f.indicators, nil
}

func dataRow(id, category, year, value string) store.Record {
	return store.Record{
		reconcile.ColIndicatorID:    id,
		reconcile.ColCategory:       category,
		reconcile.ColYear:           year,
		reconcile.ColSubPeriod:      "0",
		reconcile.ColValue:          value,
		reconcile.ColIndicatorLabel: "from bps",
	}
}

func newService(t *testing.T) (*Service, *fakeCatalog, *memstore.Store) {
	t.Helper()

	st := memstore.New()
	st.Seed("Data", reconcile.DataColumns,
		dataRow("43", "Majene", "2022", "14.1"),
		dataRow("43", "Majene", "2023", "13.0"),
		dataRow("12", "Pertanian", "2023", "40"),
		dataRow("12", "Total", "2023", "100"),
		dataRow("12", "Industri", "2024", "20"),
		dataRow("99", "Majene", "2023", "1"),
	)

	cat := &fakeCatalog{indicators: []*domain.Indicator{
		{ID: "43", Label: "Kemiskinan", Category: "Kemiskinan", Status: domain.StatusActive, ShowOnHome: true},
		{ID: "12", Label: "PDRB", Category: "ekonomi", Status: domain.StatusActive, CategoryFilter: "!Total", YearFilter: "2023"},
		{ID: "7", Label: "IPM", Category: "EKONOMI", Status: domain.StatusActive},
	}}

	svc, err := NewDashboardService(st, cat, config.StoreConfig{DataTable: "Data"}, 8)
	require.NoError(t, err)
	return svc, cat, st
}

func TestService_Get(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)

	d, err := svc.Get(context.Background(), "Ekonomi")
	require.NoError(t, err)

	require.Len(t, d.Meta, 2)
	require.Len(t, d.Data, 1)
	assert.Equal(t, "Pertanian", d.Data[0].Category)
	assert.Equal(t, "PDRB", d.Data[0].IndicatorLabel)
	assert.Equal(t, "40", d.Data[0].Value.Decimal.String())
}

func TestService_Home(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)

	d, err := svc.Home(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Meta, 1)
	assert.Len(t, d.Data, 2)
}

func TestService_CacheAndInvalidate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, cat, st := newService(t)

	first, err := svc.Get(ctx, "kemiskinan")
	require.NoError(t, err)
	require.Len(t, first.Data, 2)

	st.Seed("Data", reconcile.DataColumns, dataRow("43", "Majene", "2024", "12.5"))

	cached, err := svc.Get(ctx, " KEMISKINAN ")
	require.NoError(t, err)
	assert.Same(t, first, cached)
	assert.Equal(t, 1, cat.calls)

	svc.Invalidate()
	svc.Invalidate()

	fresh, err := svc.Get(ctx, "kemiskinan")
	require.NoError(t, err)
	require.Len(t, fresh.Data, 1)
	assert.Equal(t, "2024", fresh.Data[0].Year)
	assert.Equal(t, 2, cat.calls)
}

func TestService_NavLinks(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)

	links, err := svc.NavLinks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ekonomi", "Kemiskinan"}, links)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ind      domain.Indicator
		category string
		year     string
		keep     bool
	}{
		{name: "no filters", category: "Total", year: "2020", keep: true},
		{name: "excluded", ind: domain.Indicator{CategoryFilter: "!total"}, category: " Total ", keep: false},
		{name: "included", ind: domain.Indicator{CategoryFilter: "Laki-laki, Perempuan"}, category: "perempuan", keep: true},
		{name: "not included", ind: domain.Indicator{CategoryFilter: "Laki-laki"}, category: "Perempuan", keep: false},
		{name: "year listed", ind: domain.Indicator{YearFilter: "2023, 2024"}, year: "2024", keep: true},
		{name: "year not listed", ind: domain.Indicator{YearFilter: "2023"}, year: "2022", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFilter(&tt.ind)
			assert.Equal(t, tt.keep, f.keep(&domain.DataPoint{Category: tt.category, Year: tt.year}))
		})
	}
}
