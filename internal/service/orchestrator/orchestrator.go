// Package orchestrator drives indicator syncs: init, process one item at a time, finish.
package orchestrator

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ougirez/statdash/internal/domain"
	"github.com/ougirez/statdash/internal/domain/dto"
	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/metrics"
	"github.com/ougirez/statdash/internal/service/decoder"
	"github.com/ougirez/statdash/internal/service/reconcile"
)

// Failure stages reported in ItemResult.Stage.
const (
	StageDiscovery = "discovery"
	StageDecode    = "decode"
	StageReconcile = "reconcile"
)

//go:generate mockgen -destination=mocks/mock_orchestrator.go -package=mocks -source=orchestrator.go Provider,Catalog,ReconcilerFactory,Invalidator

// Provider is the upstream statistics API.
type Provider interface {
	DomainID() string
	DiscoverPeriods(ctx context.Context, indicatorID string) []string
	FetchChunks(ctx context.Context, indicatorID string, periodIDs []string) []*dto.DataResponse
}

// Catalog lists the indicators eligible for sync.
type Catalog interface {
	Active(ctx context.Context) ([]*domain.Indicator, error)
}

// ReconcilerFactory opens a store session whose headers are resolved once.
type ReconcilerFactory interface {
	NewSession(ctx context.Context) (reconcile.Replacer, error)
}

// Invalidator drops cached read views after a run.
type Invalidator interface {
	Invalidate()
}

type Option func(*Orchestrator)

func WithInvalidator(inv Invalidator) Option {
	return func(o *Orchestrator) { o.invalidators = append(o.invalidators, inv) }
}

func WithMetrics(m *metrics.SyncMetrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// Orchestrator runs at most one job at a time. Items are processed strictly in sequence.
type Orchestrator struct {
	provider     Provider
	catalog      Catalog
	reconcilers  ReconcilerFactory
	invalidators []Invalidator
	metrics      *metrics.SyncMetrics
	now          func() time.Time

	mu      sync.Mutex
	job     *domain.SyncJob
	session reconcile.Replacer
}

func NewOrchestrator(provider Provider, catalog Catalog, reconcilers ReconcilerFactory, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider:    provider,
		catalog:     catalog,
		reconcilers: reconcilers,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func active(job *domain.SyncJob) bool {
	if job == nil {
		return false
	}
	switch job.Phase {
	case domain.SyncPhaseInitializing, domain.SyncPhaseProcessing, domain.SyncPhaseFinishing:
		return true
	}
	return false
}

// Init starts a job over every active indicator, in catalog order.
func (o *Orchestrator) Init(ctx context.Context) (*domain.SyncJob, error) {
	return o.init(ctx, nil)
}

// InitItems starts a job over ids only, in the given order. Labels come from the catalog.
func (o *Orchestrator) InitItems(ctx context.Context, ids []string) (*domain.SyncJob, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no indicator ids: %w", constants.ErrBadRequest)
	}
	return o.init(ctx, ids)
}

func (o *Orchestrator) init(ctx context.Context, ids []string) (*domain.SyncJob, error) {
	o.mu.Lock()
	if active(o.job) {
		id := o.job.ID
		o.mu.Unlock()
		return nil, fmt.Errorf("job-%s: %w", id, constants.ErrSyncInProgress)
	}
	job := &domain.SyncJob{
		ID:        uuid.NewString(),
		Phase:     domain.SyncPhaseInitializing,
		Queue:     []domain.QueueItem{},
		Results:   []*domain.ItemResult{},
		StartedAt: o.now(),
	}
	o.job = job
	o.session = nil
	o.mu.Unlock()

	ctx = logger.WithFields(ctx, "run_id", job.ID)

	queue, session, err := o.prepare(ctx, ids)
	if err != nil {
		o.mu.Lock()
		job.Phase = domain.SyncPhaseFailed
		o.mu.Unlock()

		logger.Errorf(ctx, "sync init failed: %s", err.Error())
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	job.Queue = queue
	job.Phase = domain.SyncPhaseProcessing
	o.session = session

	logger.Infof(ctx, "sync job started, %d indicators queued", len(queue))
	return snapshot(job), nil
}

func (o *Orchestrator) prepare(ctx context.Context, ids []string) ([]domain.QueueItem, reconcile.Replacer, error) {
	indicators, err := o.catalog.Active(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog.Active: %w", err)
	}

	session, err := o.reconcilers.NewSession(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("reconcilers.NewSession: %w", err)
	}

	if ids == nil {
		queue := make([]domain.QueueItem, 0, len(indicators))
		for _, ind := range indicators {
			queue = append(queue, domain.QueueItem{ID: ind.ID, Label: ind.Label})
		}
		return queue, session, nil
	}

	labels := make(map[string]string, len(indicators))
	for _, ind := range indicators {
		labels[ind.ID] = ind.Label
	}
	queue := make([]domain.QueueItem, 0, len(ids))
	for _, id := range ids {
		queue = append(queue, domain.QueueItem{ID: id, Label: labels[id]})
	}
	return queue, session, nil
}

// ProcessOne syncs a single indicator: discovery, fetch, decode, replace.
// It never fails; errors come back inside the result. Outside a job it opens
// a one-off store session.
func (o *Orchestrator) ProcessOne(ctx context.Context, indicatorID string) (result *domain.ItemResult) {
	started := o.now()

	o.mu.Lock()
	session := o.session
	var jobID string
	if o.job != nil && o.job.Phase == domain.SyncPhaseProcessing {
		jobID = o.job.ID
	}
	o.mu.Unlock()

	ctx = logger.WithFields(ctx, "run_id", jobID, "indicator_id", indicatorID)

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "sync item panicked: %v", r)
			result = failed(indicatorID, "", fmt.Sprintf("internal error: %v", r))
		}
		o.record(jobID, result)
		o.metrics.ObserveItem(result.Success, o.now().Sub(started).Seconds())
	}()

	if session == nil {
		var err error
		if session, err = o.reconcilers.NewSession(ctx); err != nil {
			return failed(indicatorID, StageReconcile, err.Error())
		}
	}

	return o.process(ctx, session, indicatorID)
}

func (o *Orchestrator) process(ctx context.Context, session reconcile.Replacer, indicatorID string) *domain.ItemResult {
	periods := o.provider.DiscoverPeriods(ctx, indicatorID)
	if len(periods) == 0 {
		logger.Warnf(ctx, "no periods discovered")
		return failed(indicatorID, StageDiscovery, constants.ErrNoData.Error())
	}

	responses := o.provider.FetchChunks(ctx, indicatorID, periods)

	var (
		rows    []*domain.DataPoint
		skipped int
	)
	for _, resp := range responses {
		decoded, err := decoder.Decode(o.provider.DomainID(), resp)
		if err != nil {
			logger.Warnf(ctx, "response dropped: %s", err.Error())
			continue
		}
		rows = append(rows, decoded.Rows...)
		skipped += decoded.Skipped
		if decoded.Skipped > 0 {
			logger.Warnf(ctx, "%d cells skipped, unknown sub-periods %v", decoded.Skipped, decoded.SkippedLabels)
		}
	}
	o.metrics.ObserveSkipped(skipped)

	rows = decoder.Dedupe(rows)
	if len(rows) == 0 {
		res := failed(indicatorID, StageDecode, constants.ErrNoData.Error())
		res.Skipped = skipped
		return res
	}

	replaced, err := session.Replace(ctx, indicatorID, rows)
	if err != nil {
		logger.Errorf(ctx, "replace failed: %s", err.Error())
		res := failed(indicatorID, StageReconcile, err.Error())
		res.Skipped = skipped
		return res
	}

	logger.Infof(ctx, "synced %d rows (%d replaced, %d skipped)", replaced.Inserted, replaced.Deleted, skipped)
	return &domain.ItemResult{
		ID:      indicatorID,
		Success: true,
		Count:   replaced.Inserted,
		Deleted: replaced.Deleted,
		Skipped: skipped,
	}
}

func (o *Orchestrator) record(jobID string, res *domain.ItemResult) {
	if jobID == "" {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.job == nil || o.job.ID != jobID || o.job.Phase != domain.SyncPhaseProcessing {
		return
	}
	// ad hoc items processed during a job are not part of its progress
	if !queued(o.job.Queue, res.ID) || len(o.job.Results) >= len(o.job.Queue) {
		return
	}
	o.job.Results = append(o.job.Results, res)
	o.job.CurrentIndex = len(o.job.Results)
}

func queued(queue []domain.QueueItem, id string) bool {
	for _, item := range queue {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Finish closes the current job and invalidates cached views. Safe to call any time.
func (o *Orchestrator) Finish(ctx context.Context) {
	o.mu.Lock()
	job := o.job
	if job != nil && job.Phase == domain.SyncPhaseProcessing {
		job.Phase = domain.SyncPhaseFinishing
	}
	o.mu.Unlock()

	for _, inv := range o.invalidators {
		inv.Invalidate()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.session = nil
	if job != nil && job.Phase == domain.SyncPhaseFinishing {
		job.Phase = domain.SyncPhaseDone
		logger.Infof(logger.WithFields(ctx, "run_id", job.ID), "sync job finished, %d results", len(job.Results))
	}
}

// Status returns a copy of the current or last job, nil before the first one.
func (o *Orchestrator) Status() *domain.SyncJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	return snapshot(o.job)
}

// Run performs init, every item in queue order, and finish. progress, when set,
// is called after each item. The error is non-nil only when init fails.
func (o *Orchestrator) Run(ctx context.Context, progress func(domain.Progress)) (*domain.RunReport, error) {
	return o.run(ctx, nil, progress)
}

// RunItems is Run over the given ids.
func (o *Orchestrator) RunItems(ctx context.Context, ids []string, progress func(domain.Progress)) (*domain.RunReport, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no indicator ids: %w", constants.ErrBadRequest)
	}
	return o.run(ctx, ids, progress)
}

func (o *Orchestrator) run(ctx context.Context, ids []string, progress func(domain.Progress)) (*domain.RunReport, error) {
	report := &domain.RunReport{StartedAt: o.now(), Results: []*domain.ItemResult{}}

	job, err := o.init(ctx, ids)
	if err != nil {
		report.Phase = domain.SyncPhaseFailed
		report.Error = err.Error()
		report.FinishedAt = o.now()
		o.metrics.ObserveRun(string(report.Phase), float64(report.FinishedAt.Unix()))
		return report, err
	}
	report.JobID = job.ID
	report.Total = len(job.Queue)

	for i, item := range job.Queue {
		if ctx.Err() != nil {
			report.Error = fmt.Sprintf("stopped after %d of %d items: %s", i, len(job.Queue), ctx.Err())
			logger.Warnf(ctx, "sync job %s %s", job.ID, report.Error)
			break
		}

		res := o.ProcessOne(ctx, item.ID)
		report.Results = append(report.Results, res)
		if res.Success {
			report.Succeeded++
			report.Rows += res.Count
		} else {
			report.Failed++
		}

		if progress != nil {
			progress(domain.Progress{
				Index:   i + 1,
				Total:   len(job.Queue),
				Percent: Percent(i, len(job.Queue)),
				Item:    item,
				Result:  res,
			})
		}
	}

	o.Finish(ctx)

	report.Phase = domain.SyncPhaseDone
	report.FinishedAt = o.now()
	o.metrics.ObserveRun(string(report.Phase), float64(report.FinishedAt.Unix()))
	return report, nil
}

// Percent is the progress after item i (zero based) of total completes.
func Percent(i, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(i+1) / float64(total) * 100))
}

func failed(id, stage, msg string) *domain.ItemResult {
	return &domain.ItemResult{ID: id, Success: false, Stage: stage, Error: msg}
}

func snapshot(job *domain.SyncJob) *domain.SyncJob {
	if job == nil {
		return nil
	}
	cp := *job
	cp.Queue = append([]domain.QueueItem(nil), job.Queue...)
	cp.Results = make([]*domain.ItemResult, 0, len(job.Results))
	for _, r := range job.Results {
		rc := *r
		cp.Results = append(cp.Results, &rc)
	}
	return &cp
}
