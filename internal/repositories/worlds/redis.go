package worlds

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/talgard/crownlands/internal/domain/army"
	"github.com/talgard/crownlands/internal/domain/character"
	"github.com/talgard/crownlands/internal/domain/place"
	"github.com/talgard/crownlands/internal/domain/shared"
	cerr "github.com/talgard/crownlands/internal/errors"
	"github.com/talgard/crownlands/internal/world"
)

// loadConcurrency bounds the entity-load fan-out per kind.
const loadConcurrency = 8

// PlaceData wraps a place with type information for JSON marshaling,
// since the three place kinds share one registry.
type PlaceData struct {
	Type  string          `json:"type"`
	Place json.RawMessage `json:"place"`
}

// WorldData is the serialized metadata of a world in Redis. Entities
// live under their own keys; only the small registries ride along here.
type WorldData struct {
	Now        shared.Date                           `json:"now"`
	Sieges     []*army.Siege                         `json:"sieges,omitempty"`
	Sessions   []*world.Session                      `json:"sessions,omitempty"`
	Victories  map[shared.CharacterID]*world.VictoryRecord `json:"victories,omitempty"`
	Challenges []*world.Challenge                    `json:"challenges,omitempty"`
	SavedAt    time.Time                             `json:"saved_at"`
}

// redisRepo implements the Repository interface using Redis.
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository.
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed world repository.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

func (r *redisRepo) metaKey(id string) string {
	return fmt.Sprintf("world:%s", id)
}

func (r *redisRepo) characterSetKey(id string) string {
	return fmt.Sprintf("world:%s:characters", id)
}

func (r *redisRepo) characterKey(id string, cid shared.CharacterID) string {
	return fmt.Sprintf("world:%s:character:%s", id, cid)
}

func (r *redisRepo) placeSetKey(id string) string {
	return fmt.Sprintf("world:%s:places", id)
}

func (r *redisRepo) placeKey(id string, pid shared.PlaceID) string {
	return fmt.Sprintf("world:%s:place:%s", id, pid)
}

func (r *redisRepo) armySetKey(id string) string {
	return fmt.Sprintf("world:%s:armies", id)
}

func (r *redisRepo) armyKey(id string, aid shared.ArmyID) string {
	return fmt.Sprintf("world:%s:army:%s", id, aid)
}

// placeToData wraps a place with its concrete type tag.
func placeToData(p place.Place) (PlaceData, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return PlaceData{}, fmt.Errorf("failed to marshal place: %w", err)
	}

	var typeStr string
	switch p.(type) {
	case *place.Fief:
		typeStr = "fief"
	case *place.Province:
		typeStr = "province"
	case *place.Kingdom:
		typeStr = "kingdom"
	default:
		typeStr = "unknown"
	}

	return PlaceData{Type: typeStr, Place: data}, nil
}

// dataToPlace unwraps a tagged place back into its concrete type.
func dataToPlace(data PlaceData) (place.Place, error) {
	switch data.Type {
	case "fief":
		var f place.Fief
		if err := json.Unmarshal(data.Place, &f); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fief: %w", err)
		}
		return &f, nil
	case "province":
		var p place.Province
		if err := json.Unmarshal(data.Place, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal province: %w", err)
		}
		return &p, nil
	case "kingdom":
		var k place.Kingdom
		if err := json.Unmarshal(data.Place, &k); err != nil {
			return nil, fmt.Errorf("failed to unmarshal kingdom: %w", err)
		}
		return &k, nil
	default:
		return nil, cerr.InvalidArgumentf("unknown place type '%s'", data.Type)
	}
}

// Save stores a snapshot under the world id, replacing any previous
// save wholesale.
func (r *redisRepo) Save(ctx context.Context, id string, snap *world.Snapshot) error {
	if id == "" {
		return cerr.InvalidArgument("world ID is required")
	}
	if snap == nil {
		return cerr.InvalidArgument("snapshot cannot be nil")
	}

	// Drop stale entity keys from the previous save first; the index
	// sets drive loads, dangling keys would leak otherwise.
	if err := r.purgeEntities(ctx, id); err != nil {
		return err
	}

	meta := &WorldData{
		Now:        snap.Now,
		Sieges:     snap.Sieges,
		Sessions:   snap.Sessions,
		Victories:  snap.Victories,
		Challenges: snap.Challenges,
		SavedAt:    time.Now().UTC(),
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal world metadata: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.metaKey(id), metaJSON, 0)

	for _, c := range snap.Characters {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal character %s: %w", c.ID, err)
		}
		pipe.Set(ctx, r.characterKey(id, c.ID), data, 0)
		pipe.SAdd(ctx, r.characterSetKey(id), string(c.ID))
	}

	for _, p := range collectPlaces(snap) {
		data, err := placeToData(p)
		if err != nil {
			return err
		}
		wrapped, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal place %s: %w", p.ID(), err)
		}
		pipe.Set(ctx, r.placeKey(id, p.ID()), wrapped, 0)
		pipe.SAdd(ctx, r.placeSetKey(id), string(p.ID()))
	}

	for _, a := range snap.Armies {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("failed to marshal army %s: %w", a.ArmyID, err)
		}
		pipe.Set(ctx, r.armyKey(id, a.ArmyID), data, 0)
		pipe.SAdd(ctx, r.armySetKey(id), string(a.ArmyID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save world: %w", err)
	}
	return nil
}

// Load retrieves a world snapshot. Entity kinds load concurrently.
func (r *redisRepo) Load(ctx context.Context, id string) (*world.Snapshot, error) {
	if id == "" {
		return nil, cerr.InvalidArgument("world ID is required")
	}

	metaJSON, err := r.client.Get(ctx, r.metaKey(id)).Result()
	if err == redis.Nil {
		return nil, cerr.NotFoundf("world '%s' not found", id).
			WithMeta("world_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get world metadata: %w", err)
	}

	var meta WorldData
	if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world metadata: %w", err)
	}

	snap := &world.Snapshot{
		Now:        meta.Now,
		Sieges:     meta.Sieges,
		Sessions:   meta.Sessions,
		Victories:  meta.Victories,
		Challenges: meta.Challenges,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	characterIDs, err := r.client.SMembers(ctx, r.characterSetKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}
	for _, cid := range characterIDs {
		cid := cid
		g.Go(func() error {
			data, err := r.client.Get(gctx, r.characterKey(id, shared.CharacterID(cid))).Result()
			if err != nil {
				return fmt.Errorf("failed to get character %s: %w", cid, err)
			}
			var c character.Character
			if err := json.Unmarshal([]byte(data), &c); err != nil {
				return fmt.Errorf("failed to unmarshal character %s: %w", cid, err)
			}
			mu.Lock()
			snap.Characters = append(snap.Characters, &c)
			mu.Unlock()
			return nil
		})
	}

	placeIDs, err := r.client.SMembers(ctx, r.placeSetKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list place IDs: %w", err)
	}
	for _, pid := range placeIDs {
		pid := pid
		g.Go(func() error {
			raw, err := r.client.Get(gctx, r.placeKey(id, shared.PlaceID(pid))).Result()
			if err != nil {
				return fmt.Errorf("failed to get place %s: %w", pid, err)
			}
			var data PlaceData
			if err := json.Unmarshal([]byte(raw), &data); err != nil {
				return fmt.Errorf("failed to unmarshal place %s: %w", pid, err)
			}
			p, err := dataToPlace(data)
			if err != nil {
				return err
			}
			mu.Lock()
			switch v := p.(type) {
			case *place.Fief:
				snap.Fiefs = append(snap.Fiefs, v)
			case *place.Province:
				snap.Provinces = append(snap.Provinces, v)
			case *place.Kingdom:
				snap.Kingdoms = append(snap.Kingdoms, v)
			}
			mu.Unlock()
			return nil
		})
	}

	armyIDs, err := r.client.SMembers(ctx, r.armySetKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list army IDs: %w", err)
	}
	for _, aid := range armyIDs {
		aid := aid
		g.Go(func() error {
			data, err := r.client.Get(gctx, r.armyKey(id, shared.ArmyID(aid))).Result()
			if err != nil {
				return fmt.Errorf("failed to get army %s: %w", aid, err)
			}
			var a army.Army
			if err := json.Unmarshal([]byte(data), &a); err != nil {
				return fmt.Errorf("failed to unmarshal army %s: %w", aid, err)
			}
			mu.Lock()
			snap.Armies = append(snap.Armies, &a)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Delete removes a stored world and all its entity keys.
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return cerr.InvalidArgument("world ID is required")
	}
	if err := r.purgeEntities(ctx, id); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.metaKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete world: %w", err)
	}
	return nil
}

// purgeEntities removes the entity keys and index sets of a world.
func (r *redisRepo) purgeEntities(ctx context.Context, id string) error {
	characterIDs, err := r.client.SMembers(ctx, r.characterSetKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to list character IDs: %w", err)
	}
	placeIDs, err := r.client.SMembers(ctx, r.placeSetKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to list place IDs: %w", err)
	}
	armyIDs, err := r.client.SMembers(ctx, r.armySetKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to list army IDs: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, cid := range characterIDs {
		pipe.Del(ctx, r.characterKey(id, shared.CharacterID(cid)))
	}
	for _, pid := range placeIDs {
		pipe.Del(ctx, r.placeKey(id, shared.PlaceID(pid)))
	}
	for _, aid := range armyIDs {
		pipe.Del(ctx, r.armyKey(id, shared.ArmyID(aid)))
	}
	pipe.Del(ctx, r.characterSetKey(id), r.placeSetKey(id), r.armySetKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to purge world entities: %w", err)
	}
	return nil
}

// collectPlaces flattens the typed place slices of a snapshot.
func collectPlaces(snap *world.Snapshot) []place.Place {
	out := make([]place.Place, 0, len(snap.Fiefs)+len(snap.Provinces)+len(snap.Kingdoms))
	for _, f := range snap.Fiefs {
		out = append(out, f)
	}
	for _, p := range snap.Provinces {
		out = append(out, p)
	}
	for _, k := range snap.Kingdoms {
		out = append(out, k)
	}
	return out
}
