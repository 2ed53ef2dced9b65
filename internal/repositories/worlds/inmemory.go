package worlds

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	cerr "github.com/talgard/crownlands/internal/errors"
	"github.com/talgard/crownlands/internal/world"
)

// inMemoryRepo implements the Repository interface with a map, for
// tests and single-process runs.
type inMemoryRepo struct {
	mu     sync.RWMutex
	worlds map[string][]byte
}

// NewInMemoryRepository creates an in-memory world repository.
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{
		worlds: make(map[string][]byte),
	}
}

// Save stores a deep copy of the snapshot, so later mutation of the
// live world cannot bleed into the saved state.
func (r *inMemoryRepo) Save(ctx context.Context, id string, snap *world.Snapshot) error {
	if id == "" {
		return cerr.InvalidArgument("world ID is required")
	}
	if snap == nil {
		return cerr.InvalidArgument("snapshot cannot be nil")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.worlds[id] = data
	return nil
}

func (r *inMemoryRepo) Load(ctx context.Context, id string) (*world.Snapshot, error) {
	if id == "" {
		return nil, cerr.InvalidArgument("world ID is required")
	}

	r.mu.RLock()
	data, ok := r.worlds[id]
	r.mu.RUnlock()
	if !ok {
		return nil, cerr.NotFoundf("world '%s' not found", id).
			WithMeta("world_id", id)
	}

	var snap world.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (r *inMemoryRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return cerr.InvalidArgument("world ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.worlds[id]; !ok {
		return cerr.NotFoundf("world '%s' not found", id).
			WithMeta("world_id", id)
	}
	delete(r.worlds, id)
	return nil
}
