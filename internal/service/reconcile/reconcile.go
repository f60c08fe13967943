// Package reconcile writes an indicator's rows to the data table with replace semantics.
package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/metrics"
	"github.com/ougirez/statdash/internal/pkg/store"
)

const defaultBatchSize = 200

// Replacer swaps every stored row of one indicator for a fresh set.
//
//go:generate mockgen -destination=mocks/mock_reconcile.go -package=mocks -source=reconcile.go Replacer
type Replacer interface {
	Replace(ctx context.Context, indicatorID string, rows []*domain.DataPoint) (*domain.ReplaceResult, error)
}

// Factory opens reconciler sessions against one data table.
type Factory struct {
	store     store.Store
	table     string
	batchSize int
	atomic    bool
	metrics   *metrics.SyncMetrics
}

func NewFactory(st store.Store, cfg config.StoreConfig, m *metrics.SyncMetrics) *Factory {
	batchSize := cfg.InsertBatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Factory{
		store:     st,
		table:     cfg.DataTable,
		batchSize: batchSize,
		atomic:    cfg.AtomicReplace,
		metrics:   m,
	}
}

// NewReconciler loads the table headers once; the session reuses them for every indicator.
func (f *Factory) NewReconciler(ctx context.Context) (*Reconciler, error) {
	actual, err := f.store.LoadHeaders(ctx, f.table)
	if err != nil {
		return nil, fmt.Errorf("store.LoadHeaders, table-%s: %w", f.table, err)
	}

	r := &Reconciler{
		store:     f.store,
		table:     f.table,
		batchSize: f.batchSize,
		headers:   ResolveHeaders(actual, DataColumns),
		metrics:   f.metrics,
	}

	if f.atomic {
		if replacer, ok := f.store.(store.AtomicReplacer); ok {
			r.atomic = replacer
		} else {
			logger.Warnf(ctx, "atomic replace requested but the %s backend does not support it", f.table)
		}
	}

	for _, col := range DataColumns {
		if !r.headers.Resolved(col) {
			logger.Warnf(ctx, "column %q not found in %s, writing it verbatim", col, f.table)
		}
	}

	return r, nil
}

// NewSession is NewReconciler behind the Replacer interface.
func (f *Factory) NewSession(ctx context.Context) (Replacer, error) {
	r, err := f.NewReconciler(ctx)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type Reconciler struct {
	store     store.Store
	atomic    store.AtomicReplacer
	table     string
	batchSize int
	headers   HeaderMap
	metrics   *metrics.SyncMetrics
}

func (r *Reconciler) Headers() HeaderMap {
	return r.headers
}

// Replace deletes every row tagged indicatorID and inserts rows in batches.
// Without an atomic backend the two phases are independent: a failure between
// them leaves the indicator with no rows until the next successful run.
func (r *Reconciler) Replace(ctx context.Context, indicatorID string, rows []*domain.DataPoint) (*domain.ReplaceResult, error) {
	records := make([]store.Record, 0, len(rows))
	for _, p := range rows {
		records = append(records, ToRecord(r.headers, p))
	}

	idColumn := r.headers.Column(ColIndicatorID)

	if r.atomic != nil {
		deleted, err := r.atomic.ReplaceRows(ctx, r.table, idColumn, indicatorID, records, r.batchSize)
		if err != nil {
			return nil, fmt.Errorf("ReplaceRows, var-%s: %w", indicatorID, err)
		}
		r.metrics.ObserveReplace(deleted, len(records))
		return &domain.ReplaceResult{Deleted: deleted, Inserted: len(records)}, nil
	}

	deleted, err := r.deleteAll(ctx, idColumn, indicatorID)
	if err != nil {
		r.metrics.ObserveReplace(deleted, 0)
		return nil, err
	}

	if err = r.store.AddRows(ctx, r.table, records, r.batchSize); err != nil {
		r.metrics.ObserveReplace(deleted, 0)
		return nil, fmt.Errorf("store.AddRows, var-%s: %w", indicatorID, err)
	}

	r.metrics.ObserveReplace(deleted, len(records))
	return &domain.ReplaceResult{Deleted: deleted, Inserted: len(records)}, nil
}

// deleteAll removes matching rows bottom-up so earlier row numbers stay valid.
func (r *Reconciler) deleteAll(ctx context.Context, idColumn, indicatorID string) (int, error) {
	all, err := r.store.GetAllRows(ctx, r.table)
	if err != nil {
		return 0, fmt.Errorf("store.GetAllRows, table-%s: %w", r.table, err)
	}

	var stale []store.Row
	for _, row := range all {
		if row.Get(idColumn) == indicatorID {
			stale = append(stale, row)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].Number > stale[j].Number })

	for i, row := range stale {
		if err = r.store.DeleteRow(ctx, row); err != nil {
			return i, fmt.Errorf("store.DeleteRow, var-%s, row-%d: %w", indicatorID, row.Number, err)
		}
	}

	logger.Debugf(ctx, "deleted %d stale rows of var-%s", len(stale), indicatorID)
	return len(stale), nil
}
