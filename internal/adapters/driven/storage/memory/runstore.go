package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
)

// Ensure IngestRunStore implements the interface.
var _ driven.IngestRunStore = (*IngestRunStore)(nil)

// IngestRunStore is an in-memory implementation of driven.IngestRunStore.
type IngestRunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.IngestRun
	seq  map[string]int
	next int
}

// NewIngestRunStore creates a new in-memory run store.
func NewIngestRunStore() *IngestRunStore {
	return &IngestRunStore{
		runs: make(map[string]domain.IngestRun),
		seq:  make(map[string]int),
	}
}

// Create stores a new run under a fresh UUID.
func (s *IngestRunStore) Create(_ context.Context, run domain.IngestRun) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.ID = uuid.New().String()
	s.runs[run.ID] = run
	s.next++
	s.seq[run.ID] = s.next
	return run.ID, nil
}

// Update overwrites a stored run.
func (s *IngestRunStore) Update(_ context.Context, run domain.IngestRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; !ok {
		return domain.ErrNotFound
	}
	s.runs[run.ID] = run
	return nil
}

// Get retrieves a run by ID.
func (s *IngestRunStore) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// Latest returns the most recently created run for a resource.
func (s *IngestRunStore) Latest(ctx context.Context, resource string) (*domain.IngestRun, error) {
	runs, err := s.List(ctx, resource)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &runs[0], nil
}

// List returns runs newest first.
func (s *IngestRunStore) List(_ context.Context, resource string) ([]domain.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var runs []domain.IngestRun
	for _, run := range s.runs {
		if resource == "" || run.Resource == resource {
			runs = append(runs, run)
		}
	}
	sort.Slice(runs, func(i, j int) bool { return s.seq[runs[i].ID] > s.seq[runs[j].ID] })
	return runs, nil
}
