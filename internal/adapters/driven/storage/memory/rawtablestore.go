package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
)

// Ensure RawTableStore implements the interface.
var _ driven.RawTableStore = (*RawTableStore)(nil)

// RawTableStore is an in-memory implementation of driven.RawTableStore.
type RawTableStore struct {
	mu     sync.RWMutex
	tables map[string][]domain.RawRecord

	// InsertErr, when set, is returned by every Insert.
	InsertErr error
}

// NewRawTableStore creates a new in-memory raw table store.
func NewRawTableStore() *RawTableStore {
	return &RawTableStore{
		tables: make(map[string][]domain.RawRecord),
	}
}

// BeginLoad recreates the load destination empty.
func (s *RawTableStore) BeginLoad(_ context.Context, table domain.RawTable, mode domain.LoadMode) (driven.RawTableLoader, error) {
	if !mode.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	target := table.Name()
	if mode == domain.LoadModeSwap {
		target = table.StagingName()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[target] = []domain.RawRecord{}

	return &rawTableLoader{store: s, table: table, mode: mode, target: target}, nil
}

// Put replaces the rows of a table. Used to seed tests.
func (s *RawTableStore) Put(tableName string, records []domain.RawRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[tableName] = append([]domain.RawRecord{}, records...)
}

// Count returns the number of rows in the named table.
func (s *RawTableStore) Count(_ context.Context, tableName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.tables[tableName]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return len(rows), nil
}

// Tables lists the raw tables sorted by name.
func (s *RawTableStore) Tables(_ context.Context) ([]domain.RawTableInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]domain.RawTableInfo, 0, len(s.tables))
	for name, rows := range s.tables {
		infos = append(infos, domain.RawTableInfo{
			Name:    name,
			Rows:    len(rows),
			Staging: domain.IsStagingTable(name),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Records returns a copy of the rows of the named table.
func (s *RawTableStore) Records(_ context.Context, tableName string) ([]domain.RawRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.tables[tableName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]domain.RawRecord{}, rows...), nil
}

// rawTableLoader appends to one in-memory table.
type rawTableLoader struct {
	store  *RawTableStore
	table  domain.RawTable
	mode   domain.LoadMode
	target string
	closed bool
}

func (l *rawTableLoader) Insert(_ context.Context, record domain.RawRecord) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	if l.closed {
		return domain.ErrInvalidInput
	}
	if l.store.InsertErr != nil {
		return l.store.InsertErr
	}
	l.store.tables[l.target] = append(l.store.tables[l.target], record)
	return nil
}

func (l *rawTableLoader) Commit(_ context.Context) error {
	if l.mode != domain.LoadModeSwap {
		return nil
	}

	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	l.store.tables[l.table.Name()] = l.store.tables[l.target]
	delete(l.store.tables, l.target)
	return nil
}

func (l *rawTableLoader) Close() error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	l.closed = true
	return nil
}
