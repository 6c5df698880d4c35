package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driving"
)

// Ensure InventoryService implements the interface.
var _ driving.Inventory = (*InventoryService)(nil)

// InventoryService reads raw tables and run history.
type InventoryService struct {
	tables driven.RawTableStore
	runs   driven.IngestRunStore
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(tables driven.RawTableStore, runs driven.IngestRunStore) *InventoryService {
	return &InventoryService{tables: tables, runs: runs}
}

// Tables lists raw and staging tables.
func (s *InventoryService) Tables(ctx context.Context) ([]domain.RawTableInfo, error) {
	tables, err := s.tables.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// Runs returns runs newest first.
func (s *InventoryService) Runs(ctx context.Context, resource string) ([]domain.IngestRun, error) {
	if resource != "" {
		if err := domain.ValidateResourceName(resource); err != nil {
			return nil, err
		}
	}
	runs, err := s.runs.List(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// LatestRun returns the most recent run for a resource.
func (s *InventoryService) LatestRun(ctx context.Context, resource string) (*domain.IngestRun, error) {
	if err := domain.ValidateResourceName(resource); err != nil {
		return nil, err
	}
	return s.runs.Latest(ctx, resource)
}
