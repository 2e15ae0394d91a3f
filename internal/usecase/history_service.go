package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
	"github.com/dfstools/poolimport/internal/platform/resilience"
)

const defaultDeltaWorkers = 4

// ImportListItem is one import record annotated with its drift versus the
// prior import of the same source and its open review workload.
type ImportListItem struct {
	Record            importrun.Record
	Deltas            *importrun.DeltaSummary
	PendingCandidates int
}

type candidateCounter interface {
	CountPending(ctx context.Context, importID string) (int, error)
}

type HistoryService struct {
	importRepo importrun.Repository
	poolRepo   pool.Repository
	counter    candidateCounter
	workers    int
	flight     resilience.SingleFlight
}

func NewHistoryService(importRepo importrun.Repository, poolRepo pool.Repository, counter candidateCounter, workers int) *HistoryService {
	if workers <= 0 {
		workers = defaultDeltaWorkers
	}
	return &HistoryService{
		importRepo: importRepo,
		poolRepo:   poolRepo,
		counter:    counter,
		workers:    workers,
	}
}

// ListImports returns a scope's import records newest first, each
// annotated concurrently; annotation needs two snapshot reads per record.
func (s *HistoryService) ListImports(ctx context.Context, scope string, source pool.Source) ([]ImportListItem, error) {
	ctx, span := startUsecaseSpan(ctx, "HistoryService.ListImports")
	defer span.End()

	scope = strings.TrimSpace(scope)
	if scope == "" {
		return nil, fmt.Errorf("%w: scope is required", ErrInvalidInput)
	}
	if source != "" && !source.Valid() {
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, source)
	}

	records, err := s.importRepo.ListRecords(ctx, scope, source)
	if err != nil {
		return nil, fmt.Errorf("list import records: %w", err)
	}
	if len(records) == 0 {
		return []ImportListItem{}, nil
	}

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("%w: start delta workers: %v", ErrDependencyUnavailable, err)
	}
	defer workerPool.Release()

	items := make([]ImportListItem, len(records))
	errs := make([]error, len(records))
	var wg sync.WaitGroup
	for i, record := range records {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			items[i], errs[i] = s.annotate(ctx, record)
		}
		if err := workerPool.Submit(task); err != nil {
			errs[i] = fmt.Errorf("submit delta task: %w", err)
			wg.Done()
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *HistoryService) annotate(ctx context.Context, record importrun.Record) (ImportListItem, error) {
	item := ImportListItem{Record: record}

	pending, err := s.counter.CountPending(ctx, record.ID)
	if err != nil {
		return item, fmt.Errorf("count pending candidates: %w", err)
	}
	item.PendingCandidates = pending

	prevID, hasPrev, err := s.importRepo.PreviousImportID(ctx, record)
	if err != nil {
		return item, fmt.Errorf("find previous import: %w", err)
	}
	if !hasPrev {
		return item, nil
	}

	prevSnapshots, err := s.importRepo.ListSnapshots(ctx, prevID)
	if err != nil {
		return item, fmt.Errorf("list previous snapshots: %w", err)
	}
	currSnapshots, err := s.importRepo.ListSnapshots(ctx, record.ID)
	if err != nil {
		return item, fmt.Errorf("list current snapshots: %w", err)
	}

	deltas := importrun.Diff(prevSnapshots, currSnapshots)
	item.Deltas = &deltas
	return item, nil
}

// Compare builds the detailed pairwise view between two arbitrary imports.
// Concurrent identical requests share one computation.
func (s *HistoryService) Compare(ctx context.Context, fromID, toID string) (*importrun.Comparison, error) {
	ctx, span := startUsecaseSpan(ctx, "HistoryService.Compare")
	defer span.End()

	fromID = strings.TrimSpace(fromID)
	toID = strings.TrimSpace(toID)
	if fromID == "" || toID == "" {
		return nil, fmt.Errorf("%w: both from and to import ids are required", ErrInvalidInput)
	}

	v, err, _ := s.flight.Do("compare:"+fromID+":"+toID, func() (any, error) {
		return s.compare(ctx, fromID, toID)
	})
	if err != nil {
		return nil, err
	}

	comparison, _ := v.(*importrun.Comparison)
	return comparison, nil
}

func (s *HistoryService) compare(ctx context.Context, fromID, toID string) (*importrun.Comparison, error) {
	for _, importID := range []string{fromID, toID} {
		_, exists, err := s.importRepo.GetRecord(ctx, importID)
		if err != nil {
			return nil, fmt.Errorf("get import record: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: import=%s", ErrNotFound, importID)
		}
	}

	fromSnapshots, err := s.importRepo.ListSnapshots(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("list from snapshots: %w", err)
	}
	toSnapshots, err := s.importRepo.ListSnapshots(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("list to snapshots: %w", err)
	}

	comparison := importrun.Compare(fromID, toID, fromSnapshots, toSnapshots)
	return &comparison, nil
}

// ListPool returns the merged pool for a scope.
func (s *HistoryService) ListPool(ctx context.Context, scope string) ([]pool.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "HistoryService.ListPool")
	defer span.End()

	scope = strings.TrimSpace(scope)
	if !pool.ValidScope(scope) {
		return nil, fmt.Errorf("%w: scope %q is not season-week", ErrInvalidInput, scope)
	}

	entries, err := s.poolRepo.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list pool entries: %w", err)
	}
	return entries, nil
}
