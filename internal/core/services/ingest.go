package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driving"
	"github.com/custodia-labs/pokeelt/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// progressEvery is how many loaded records pass between progress lines.
// The last record of a resource is always reported.
const progressEvery = 100

// IngestService loads raw resources from the remote API into raw tables.
// All network and store I/O is sequential; settings are copied at
// construction and never mutated.
type IngestService struct {
	api      driven.ResourceAPI
	tables   driven.RawTableStore
	runs     driven.IngestRunStore
	settings domain.IngestSettings
	now      func() time.Time

	// Status tracking
	mu     sync.RWMutex
	active map[string]*driving.IngestStatus
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	api driven.ResourceAPI,
	tables driven.RawTableStore,
	runs driven.IngestRunStore,
	settings domain.IngestSettings,
) *IngestService {
	return &IngestService{
		api:      api,
		tables:   tables,
		runs:     runs,
		settings: settings,
		now:      time.Now,
		active:   make(map[string]*driving.IngestStatus),
	}
}

// ResourceIDPages walks the listing endpoint of a resource type one page at a
// time, starting at offset 0 with the configured page size. The sequence is
// lazy and restartable: every range over it starts a new walk. It ends after
// the first page without a continuation URL, or after yielding an error.
func (s *IngestService) ResourceIDPages(ctx context.Context, resource string) iter.Seq2[domain.IDBatch, error] {
	return func(yield func(domain.IDBatch, error) bool) {
		limit := s.settings.API.PageSize
		offset := 0

		for {
			if err := ctx.Err(); err != nil {
				yield(domain.IDBatch{}, err)
				return
			}

			page, err := s.api.ListPage(ctx, resource, limit, offset)
			if err != nil {
				yield(domain.IDBatch{}, fmt.Errorf("list %s at offset %d: %w", resource, offset, err))
				return
			}

			ids, err := page.IDs()
			if err != nil {
				yield(domain.IDBatch{}, fmt.Errorf("list %s at offset %d: %w", resource, offset, err))
				return
			}

			if !yield(domain.IDBatch{Offset: offset, Count: page.Count, IDs: ids}, nil) {
				return
			}

			if !page.HasNext() {
				return
			}

			next, err := domain.NextOffset(page.Next)
			if err != nil {
				yield(domain.IDBatch{}, fmt.Errorf("list %s: %w", resource, err))
				return
			}
			if next <= offset {
				yield(domain.IDBatch{}, fmt.Errorf("list %s: %w", resource, &domain.ParseError{
					Input:  page.Next,
					Reason: fmt.Sprintf("continuation offset %d does not advance past %d", next, offset),
				}))
				return
			}
			offset = next
		}
	}
}

// ListResourceIDs returns every identifier of a resource type in
// page-then-within-page order, without deduplication, and the count the API
// reported on the first page.
func (s *IngestService) ListResourceIDs(ctx context.Context, resource string) ([]domain.ResourceID, int, error) {
	if err := domain.ValidateResourceName(resource); err != nil {
		return nil, 0, err
	}
	return s.discover(ctx, resource)
}

func (s *IngestService) discover(ctx context.Context, resource string) ([]domain.ResourceID, int, error) {
	var (
		ids   []domain.ResourceID
		count int
		first = true
	)

	for batch, err := range s.ResourceIDPages(ctx, resource) {
		if err != nil {
			return nil, count, err
		}
		if first {
			count = batch.Count
			logger.Progress("This resource has %d records.", count)
			first = false
		} else {
			logger.Info("Additional resource IDs remain. Fetched offset %d.", batch.Offset)
		}

		ids = append(ids, batch.IDs...)
		logger.Progress("Retrieved %d resource IDs.", len(batch.IDs))

		s.updateStatus(resource, func(st *driving.IngestStatus) {
			st.Expected = count
			st.Discovered = len(ids)
		})
	}

	return ids, count, nil
}

// IngestResource discovers every identifier of a resource type, recreates its
// raw table and loads each record. The first failure aborts the call; the
// returned run records how far it got.
func (s *IngestService) IngestResource(ctx context.Context, resource string) (*domain.IngestRun, error) {
	if err := domain.ValidateResourceName(resource); err != nil {
		return nil, err
	}

	if !s.startStatus(resource) {
		return nil, fmt.Errorf("%w: %s", domain.ErrIngestInProgress, resource)
	}
	defer s.clearStatus(resource)

	table := domain.RawTableFor(resource)
	run := domain.IngestRun{
		Resource:  resource,
		Table:     table.Name(),
		Mode:      s.settings.Ingest.Mode,
		Status:    domain.RunRunning,
		StartedAt: s.now().UTC(),
	}

	id, err := s.runs.Create(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	run.ID = id

	logger.Section(resource)
	logger.Progress("Getting and loading resource: %s", resource)
	logger.Debug("Run %s, mode %s", run.ID, run.Mode)

	loadErr := s.load(ctx, &run, table)

	run.FinishedAt = s.now().UTC()
	if loadErr != nil {
		run.Status = domain.RunFailed
		run.Error = loadErr.Error()
	} else {
		run.Status = domain.RunComplete
	}

	// Record the outcome even if ctx was cancelled.
	if err := s.runs.Update(context.WithoutCancel(ctx), run); err != nil {
		return &run, errors.Join(loadErr, fmt.Errorf("update run: %w", err))
	}
	if loadErr != nil {
		return &run, loadErr
	}

	logger.Progress("Successfully loaded %d records into %s!", run.Loaded, run.Table)
	return &run, nil
}

func (s *IngestService) load(ctx context.Context, run *domain.IngestRun, table domain.RawTable) (err error) {
	ids, count, err := s.discover(ctx, run.Resource)
	run.Expected = count
	run.Discovered = len(ids)
	if err != nil {
		return err
	}
	s.updateStatus(run.Resource, func(st *driving.IngestStatus) { st.Discovering = false })

	loader, err := s.tables.BeginLoad(ctx, table, run.Mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", table.Name(), err)
	}
	defer func() {
		if cerr := loader.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("release %s: %w", table.Name(), cerr)
		}
	}()

	target := table.Name()
	if run.Mode == domain.LoadModeSwap {
		target = table.StagingName()
	}
	logger.Progress("Created %s table. Retrieving and loading individual records now...", target)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		requestedAt := s.now()
		res, err := s.api.FetchRecord(ctx, run.Resource, id)
		if err != nil {
			return fmt.Errorf("fetch %s %d: %w", run.Resource, id, err)
		}
		loadedAt := s.now()

		if err := loader.Insert(ctx, domain.NewRawRecord(id, res, requestedAt, loadedAt)); err != nil {
			return fmt.Errorf("insert %s %d: %w", run.Resource, id, err)
		}

		run.Loaded++
		loaded := run.Loaded
		s.updateStatus(run.Resource, func(st *driving.IngestStatus) { st.Loaded = loaded })
		logger.Debug("Loaded %s %d", run.Resource, id)
		if loaded%progressEvery == 0 || loaded == len(ids) {
			logger.Progress("Loaded %d/%d %s records.", loaded, len(ids), run.Resource)
		}
	}

	if err := loader.Commit(ctx); err != nil {
		return fmt.Errorf("publish %s: %w", table.Name(), err)
	}
	return nil
}

// IngestAll ingests resources in order. With no resources given, the
// configured list is used. Unless continueOnError is set the first failure
// stops the batch; otherwise failures are joined and returned at the end.
func (s *IngestService) IngestAll(
	ctx context.Context,
	resources []string,
	continueOnError bool,
) ([]domain.IngestRun, error) {
	if len(resources) == 0 {
		resources = s.settings.Ingest.Resources
	}

	var runs []domain.IngestRun
	var errs []error
	for _, resource := range resources {
		run, err := s.IngestResource(ctx, resource)
		if run != nil {
			runs = append(runs, *run)
		}
		if err != nil {
			err = fmt.Errorf("ingest %s: %w", resource, err)
			if !continueOnError {
				return runs, err
			}
			logger.Warn("%v", err)
			errs = append(errs, err)
			continue
		}
		logger.Progress("Finished loading %s table after %.4f seconds.", run.Table, run.Duration().Seconds())
	}

	return runs, errors.Join(errs...)
}

// Status returns live progress for a resource.
func (s *IngestService) Status(_ context.Context, resource string) (*driving.IngestStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.active[resource]; ok {
		// Return a copy to avoid race conditions
		cp := *status
		return &cp, nil
	}

	// Not running - return idle status
	return &driving.IngestStatus{
		Resource: resource,
		Running:  false,
	}, nil
}

// startStatus registers a running ingestion, or returns false if one is
// already registered for the resource.
func (s *IngestService) startStatus(resource string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[resource]; ok {
		return false
	}
	s.active[resource] = &driving.IngestStatus{
		Resource:    resource,
		Running:     true,
		Discovering: true,
	}
	return true
}

func (s *IngestService) updateStatus(resource string, fn func(*driving.IngestStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.active[resource]; ok {
		fn(status)
	}
}

func (s *IngestService) clearStatus(resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, resource)
}
