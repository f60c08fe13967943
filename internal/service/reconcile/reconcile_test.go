package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/pkg/metrics"
	"github.com/ougirez/statdash/internal/pkg/store"
	"github.com/ougirez/statdash/internal/pkg/store/memstore"
	"github.com/ougirez/statdash/internal/pkg/store/mocks"
)

const dataTable = "Data"

// sheetHeaders mimics a hand-edited sheet: same columns, sloppy casing and spacing.
var sheetHeaders = []string{
	"ID_DOMAIN", "Kategori", " tahun", "periode", "Pilih tahun",
	" id_variable ", "nama variabel", "NILAI", "satuan",
}

func storeConfig() config.StoreConfig {
	return config.StoreConfig{DataTable: dataTable, InsertBatchSize: 200}
}

func points(id string, n int, value string) []*domain.DataPoint {
	out := make([]*domain.DataPoint, 0, n)
	for i := 0; i < n; i++ {
		p := domain.Period{YearLabel: fmt.Sprint(2000 + i), SubPeriodCode: domain.AnnualSubPeriod}
		out = append(out, &domain.DataPoint{
			DomainID:      "7601",
			Category:      "Majene",
			Year:          p.YearLabel,
			SubPeriodCode: p.SubPeriodCode,
			Date:          p.DateString(),
			IndicatorID:   id,
			Value:         decimal.NewNullDecimal(decimal.RequireFromString(value)),
		})
	}
	return out
}

func seeded(t *testing.T) *memstore.Store {
	t.Helper()

	st := memstore.New()
	h := ResolveHeaders(sheetHeaders, DataColumns)

	var records []store.Record
	for i, p := range points("88", 10, "1") {
		records = append(records, ToRecord(h, p))
		if i%3 == 0 {
			records = append(records, ToRecord(h, points("43", 1, "5")[0]))
		}
	}
	st.Seed(dataTable, sheetHeaders, records...)
	return st
}

func countByID(st *memstore.Store, id string) int {
	n := 0
	for _, r := range st.Records(dataTable) {
		if r[" id_variable "] == id {
			n++
		}
	}
	return n
}

func TestResolveHeaders(t *testing.T) {
	t.Parallel()

	h := ResolveHeaders([]string{"Id", "DataFilter", "Label"}, []string{"id", "dataFilter"})

	for _, name := range []string{"dataFilter", "DataFilter", " DataFilter "} {
		assert.Equal(t, "DataFilter", h.Column(name), name)
	}
	assert.Equal(t, "Id", h.Column("ID"))
	assert.True(t, h.Resolved(" id"))

	// not matched: used verbatim
	assert.Equal(t, "FilterTahun", h.Column("FilterTahun"))
	assert.False(t, h.Resolved("FilterTahun"))
}

func TestReconciler_ReplaceStaleRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := seeded(t)
	require.Equal(t, 10, countByID(st, "88"))
	require.Equal(t, 4, countByID(st, "43"))

	m := metrics.NewSyncMetrics(prometheus.NewRegistry())
	rec, err := NewFactory(st, storeConfig(), m).NewReconciler(ctx)
	require.NoError(t, err)

	res, err := rec.Replace(ctx, "88", points("88", 12, "2"))
	require.NoError(t, err)
	assert.Equal(t, &domain.ReplaceResult{Deleted: 10, Inserted: 12}, res)

	assert.Equal(t, 12, countByID(st, "88"))
	assert.Equal(t, 4, countByID(st, "43"))
	for _, r := range st.Records(dataTable) {
		if r[" id_variable "] == "88" {
			assert.Equal(t, "2", r["NILAI"], "no stale value survives")
		}
	}

	deleted := st.DeletedRows()
	assert.Len(t, deleted, 10)
	assert.True(t, sort.SliceIsSorted(deleted, func(i, j int) bool { return deleted[i] > deleted[j] }), "bottom-up: %v", deleted)

	assert.Equal(t, float64(12), testutil.ToFloat64(m.RowsWritten))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.RowsDeleted))

	// same input, same effect
	_, err = rec.Replace(ctx, "88", points("88", 12, "2"))
	require.NoError(t, err)
	assert.Equal(t, 12, countByID(st, "88"))
	assert.Equal(t, 4, countByID(st, "43"))
}

func TestReconciler_InsertBatches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memstore.New()
	st.Seed(dataTable, DataColumns)

	rec, err := NewFactory(st, storeConfig(), nil).NewReconciler(ctx)
	require.NoError(t, err)

	_, err = rec.Replace(ctx, "7", points("7", 450, "3"))
	require.NoError(t, err)
	assert.Equal(t, []int{200, 200, 50}, st.AddBatches())
}

func TestReconciler_DeleteFailureStopsBeforeInsert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := seeded(t)
	rec, err := NewFactory(st, storeConfig(), nil).NewReconciler(ctx)
	require.NoError(t, err)

	boom := errors.New("rate limited")
	st.Fail(memstore.OpDeleteRow, boom)

	_, err = rec.Replace(ctx, "88", points("88", 12, "2"))
	require.ErrorIs(t, err, boom)
	assert.Empty(t, st.AddBatches())
}

func TestFactory_HeadersLoadedOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)

	st.EXPECT().LoadHeaders(gomock.Any(), dataTable).Return(sheetHeaders, nil).Times(1)
	st.EXPECT().GetAllRows(gomock.Any(), dataTable).Return(nil, nil).Times(2)
	st.EXPECT().AddRows(gomock.Any(), dataTable, gomock.Len(1), 200).Return(nil).Times(2)

	rec, err := NewFactory(st, storeConfig(), nil).NewReconciler(ctx)
	require.NoError(t, err)
	assert.Equal(t, " id_variable ", rec.Headers().Column(ColIndicatorID))

	for _, id := range []string{"1", "2"} {
		_, err = rec.Replace(ctx, id, points(id, 1, "1"))
		require.NoError(t, err)
	}
}

func TestFactory_LoadHeadersError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().LoadHeaders(gomock.Any(), dataTable).Return(nil, errors.New("unreachable"))

	_, err := NewFactory(st, storeConfig(), nil).NewSession(context.Background())
	assert.Error(t, err)
}

type atomicStore struct {
	*mocks.MockStore
	*mocks.MockAtomicReplacer
}

func TestReconciler_AtomicReplace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	st := atomicStore{MockStore: mocks.NewMockStore(ctrl), MockAtomicReplacer: mocks.NewMockAtomicReplacer(ctrl)}

	st.MockStore.EXPECT().LoadHeaders(gomock.Any(), dataTable).Return(DataColumns, nil)
	st.MockAtomicReplacer.EXPECT().
		ReplaceRows(gomock.Any(), dataTable, ColIndicatorID, "88", gomock.Len(12), 200).
		Return(10, nil)

	cfg := storeConfig()
	cfg.AtomicReplace = true
	rec, err := NewFactory(st, cfg, nil).NewReconciler(ctx)
	require.NoError(t, err)

	res, err := rec.Replace(ctx, "88", points("88", 12, "2"))
	require.NoError(t, err)
	assert.Equal(t, &domain.ReplaceResult{Deleted: 10, Inserted: 12}, res)
}

func TestFromRow(t *testing.T) {
	t.Parallel()

	h := ResolveHeaders(sheetHeaders, DataColumns)
	p := FromRow(h, store.Row{Cells: store.Record{
		" id_variable ": "43",
		" tahun":        "2023",
		"periode":       "0",
		"NILAI":         "13,01",
		"Kategori":      "Majene",
	}})

	assert.Equal(t, "43", p.IndicatorID)
	assert.Equal(t, "2023", p.Year)
	assert.Equal(t, "Majene", p.Category)
	require.True(t, p.Value.Valid)
	assert.Equal(t, "13.01", p.Value.Decimal.String())

	empty := FromRow(h, store.Row{Cells: store.Record{"NILAI": ""}})
	assert.False(t, empty.Value.Valid)
	assert.Empty(t, empty.RawValue)

	dash := FromRow(h, store.Row{Cells: store.Record{"NILAI": "-"}})
	assert.False(t, dash.Value.Valid)
	assert.Equal(t, "-", dash.RawValue)
}

func TestToRecord_Values(t *testing.T) {
	t.Parallel()

	h := ResolveHeaders(sheetHeaders, DataColumns)
	col := h.Column(ColValue)

	assert.Equal(t, "1.5", ToRecord(h, &domain.DataPoint{Value: decimal.NewNullDecimal(decimal.RequireFromString("1.50"))})[col])
	assert.Equal(t, "-", ToRecord(h, &domain.DataPoint{RawValue: "-"})[col])
	assert.Equal(t, "", ToRecord(h, &domain.DataPoint{})[col])
}
