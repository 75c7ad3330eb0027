// Package catalog persists workflow and skill definitions, per-user reference
// lists, and stored item embeddings in a Redis-compatible store.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentdex/agentdex/internal/db"
	"github.com/agentdex/agentdex/internal/domain"
)

// KeyPrefix namespaces all catalog keys.
const KeyPrefix = "agentdex:"

// store is the consumer interface for the catalog (ISP).
type store interface {
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements the catalog read side consumed by the search engine and the
// write side consumed by the CRUD layer and the embedding recompute job.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates an item and maintains kind membership.
func (r *Repo) Upsert(ctx context.Context, item domain.Item) error {
	if !item.Kind.Valid() {
		return fmt.Errorf("upsert %s: %w", item.ID, domain.ErrInvalidKind)
	}

	if err := r.store.HSet(ctx, itemKey(item.Kind, item.ID), buildHashFields(item)); err != nil {
		return fmt.Errorf("hset item %s: %w", item.ID, err)
	}
	if err := r.store.SAdd(ctx, kindKey(item.Kind), item.ID); err != nil {
		return fmt.Errorf("sadd kind %s: %w", item.Kind, err)
	}
	return nil
}

// Get returns an item by kind and ID.
func (r *Repo) Get(ctx context.Context, kind domain.Kind, id string) (domain.Item, error) {
	m, err := r.store.HGetAll(ctx, itemKey(kind, id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("hgetall item %s: %w", id, err)
	}
	if len(m) == 0 {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return parseHashFields(kind, id, m), nil
}

// ListByKind returns every item of a kind, including inactive and soft-deleted
// ones. Authorization and liveness filtering is the search engine's concern.
func (r *Repo) ListByKind(ctx context.Context, kind domain.Kind) ([]domain.Item, error) {
	ids, err := r.store.SMembers(ctx, kindKey(kind))
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", kind, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(kind, id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi %s: %w", kind, err)
	}

	items := make([]domain.Item, 0, len(ids))
	for i, m := range hashes {
		if len(m) == 0 {
			continue // membership set ahead of a deleted hash
		}
		items = append(items, parseHashFields(kind, ids[i], m))
	}
	return items, nil
}

// Delete removes an item, its kind membership, and its stored embedding.
func (r *Repo) Delete(ctx context.Context, kind domain.Kind, id string) error {
	if err := r.store.SRem(ctx, kindKey(kind), id); err != nil {
		return fmt.Errorf("srem kind %s: %w", kind, err)
	}
	if err := r.store.Del(ctx, itemKey(kind, id)); err != nil {
		return fmt.Errorf("del item %s: %w", id, err)
	}
	if err := r.store.Del(ctx, embKey(kind, id)); err != nil {
		return fmt.Errorf("del embedding %s: %w", id, err)
	}
	return nil
}

// AddReference records a user's adoption of an item into their personal library.
func (r *Repo) AddReference(ctx context.Context, userID string, kind domain.Kind, id string) error {
	if err := r.store.SAdd(ctx, refsKey(userID, kind), id); err != nil {
		return fmt.Errorf("sadd refs %s/%s: %w", userID, kind, err)
	}
	return nil
}

// RemoveReference drops an item from a user's reference list.
func (r *Repo) RemoveReference(ctx context.Context, userID string, kind domain.Kind, id string) error {
	if err := r.store.SRem(ctx, refsKey(userID, kind), id); err != nil {
		return fmt.Errorf("srem refs %s/%s: %w", userID, kind, err)
	}
	return nil
}

// References returns the set of item IDs a user has referenced for a kind.
func (r *Repo) References(ctx context.Context, userID string, kind domain.Kind) (map[string]struct{}, error) {
	ids, err := r.store.SMembers(ctx, refsKey(userID, kind))
	if err != nil {
		return nil, fmt.Errorf("smembers refs %s/%s: %w", userID, kind, err)
	}
	refs := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		refs[id] = struct{}{}
	}
	return refs, nil
}

// PutEmbedding stores an item's embedding vector. Called by the asynchronous
// recompute job after item creation or edit; overwrites any previous vector.
func (r *Repo) PutEmbedding(ctx context.Context, kind domain.Kind, id string, vector []float32) error {
	if err := r.store.Set(ctx, embKey(kind, id), vectorToBytes(vector)); err != nil {
		return fmt.Errorf("set embedding %s: %w", id, err)
	}
	return nil
}

// Embeddings returns stored vectors for the given item IDs in a single MGET
// round trip. IDs without a stored embedding are simply absent from the
// result map.
func (r *Repo) Embeddings(ctx context.Context, kind domain.Kind, ids []string) (map[string][]float32, error) {
	if len(ids) == 0 {
		return map[string][]float32{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = embKey(kind, id)
	}

	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget %s embeddings: %w", kind, err)
	}

	vectors := make(map[string][]float32, len(ids))
	for i, data := range values {
		if len(data) == 0 {
			continue
		}
		if vec := bytesToVector(data); vec != nil {
			vectors[ids[i]] = vec
		}
	}
	return vectors, nil
}

func itemKey(kind domain.Kind, id string) string {
	return KeyPrefix + "item:" + string(kind) + ":" + id
}

func kindKey(kind domain.Kind) string {
	return KeyPrefix + "items:" + string(kind)
}

func refsKey(userID string, kind domain.Kind) string {
	return KeyPrefix + "refs:" + userID + ":" + string(kind)
}

func embKey(kind domain.Kind, id string) string {
	return KeyPrefix + "emb:" + string(kind) + ":" + id
}
