package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/store"
	"github.com/ougirez/statdash/internal/pkg/store/memstore"
)

const konfig = "Konfig"

func newService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()

	st := memstore.New()
	st.Seed(konfig, []string{"Id", "label", " Kategori", "STATUS", "dataFilter", "ShowOnHome"},
		store.Record{"Id": "43", "label": "Kemiskinan", " Kategori": "kemiskinan", "STATUS": "Aktif", "ShowOnHome": "TRUE"},
		store.Record{"Id": "88", "label": "Inflasi", " Kategori": "ekonomi", "STATUS": "Nonaktif"},
		store.Record{"Id": "", "label": "draft"},
		store.Record{"Id": "12", "label": "PDRB", " Kategori": "Ekonomi", "STATUS": "Aktif", "dataFilter": "!Total"},
	)
	return NewCatalogService(st, config.StoreConfig{CatalogTable: konfig}), st
}

func TestService_ListAndActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.DefaultChartType, all[0].ChartType)
	assert.True(t, all[0].ShowOnHome)
	assert.Equal(t, "!Total", all[2].CategoryFilter)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(active))
	for _, ind := range active {
		ids = append(ids, ind.ID)
	}
	assert.Equal(t, []string{"43", "12"}, ids)
}

func TestService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, st := newService(t)

	err := svc.Create(ctx, &domain.Indicator{ID: " 501 ", Label: "IPM", Category: "sosial"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "501")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.Equal(t, domain.DefaultColorTheme, got.ColorTheme)
	assert.Equal(t, domain.DefaultTrendPolarity, got.TrendPolarity)

	records := st.Records(konfig)
	last := records[len(records)-1]
	assert.Equal(t, "sosial", last[" Kategori"], "written under the sheet's own header")
	assert.Equal(t, "FALSE", last["ShowOnHome"])

	err = svc.Create(ctx, &domain.Indicator{ID: "43", Label: "dup", Category: "x"})
	assert.ErrorIs(t, err, constants.ErrIndicatorExists)
}

func TestService_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t)

	status, filter, home := "Aktif", " 2023,2024 ", false
	got, err := svc.Update(ctx, "88", domain.IndicatorUpdate{Status: &status, YearFilter: &filter, ShowOnHome: &home})
	require.NoError(t, err)
	assert.Equal(t, "2023,2024", got.YearFilter)

	stored, err := svc.Get(ctx, "88")
	require.NoError(t, err)
	assert.True(t, stored.Active())
	assert.Equal(t, "2023,2024", stored.YearFilter)
	assert.Equal(t, "Inflasi", stored.Label)

	_, err = svc.Update(ctx, "404", domain.IndicatorUpdate{Status: &status})
	assert.ErrorIs(t, err, constants.ErrIndicatorNotFound)
}

func TestService_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t)

	require.NoError(t, svc.Delete(ctx, "88"))

	_, err := svc.Get(ctx, "88")
	assert.ErrorIs(t, err, constants.ErrIndicatorNotFound)

	// later rows shifted up and are still addressable
	got, err := svc.Get(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "PDRB", got.Label)

	assert.ErrorIs(t, svc.Delete(ctx, "88"), constants.ErrIndicatorNotFound)
}

func TestService_StoreUnreachable(t *testing.T) {
	t.Parallel()
	svc, st := newService(t)

	boom := errors.New("403 forbidden")
	st.Fail(memstore.OpGetAllRows, boom)

	_, err := svc.Active(context.Background())
	assert.ErrorIs(t, err, boom)
}
