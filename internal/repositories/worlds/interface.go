package worlds

//go:generate mockgen -destination=mock/mock.go -package=mockworlds -source=interface.go

import (
	"context"

	"github.com/talgard/crownlands/internal/world"
)

// Repository persists world snapshots. The engine saves between season
// sweeps; a save is a full overwrite of the named world.
type Repository interface {
	// Save stores a snapshot under the world id.
	Save(ctx context.Context, id string, snap *world.Snapshot) error

	// Load retrieves the snapshot for a world id.
	Load(ctx context.Context, id string) (*world.Snapshot, error)

	// Delete removes a stored world.
	Delete(ctx context.Context, id string) error
}
