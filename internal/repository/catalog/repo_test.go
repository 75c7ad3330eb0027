package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/agentdex/agentdex/internal/domain"
)

func TestUpsert_WritesHashAndKindSet(t *testing.T) {
	var gotKey string
	var gotFields map[string]string
	var gotSetKey string
	var gotMembers []string

	repo := New(&mockStore{
		hsetFn: func(_ context.Context, key string, fields map[string]string) error {
			gotKey = key
			gotFields = fields
			return nil
		},
		saddFn: func(_ context.Context, key string, members ...string) error {
			gotSetKey = key
			gotMembers = members
			return nil
		},
	})

	item := domain.Item{
		ID:         "wf-1",
		Kind:       domain.KindWorkflow,
		Name:       "Refactor helper",
		OwnerID:    "u-1",
		IsActive:   true,
		Visibility: domain.VisibilityPrivate,
		Tags:       []string{"refactor", "go"},
		StageCount: 3,
	}
	if err := repo.Upsert(context.Background(), item); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if gotKey != "agentdex:item:workflow:wf-1" {
		t.Errorf("unexpected item key: %s", gotKey)
	}
	if gotFields["name"] != "Refactor helper" || gotFields["is_active"] != "1" {
		t.Errorf("unexpected fields: %v", gotFields)
	}
	if gotFields["tags"] != "refactor,go" {
		t.Errorf("unexpected tags field: %q", gotFields["tags"])
	}
	if gotSetKey != "agentdex:items:workflow" || len(gotMembers) != 1 || gotMembers[0] != "wf-1" {
		t.Errorf("unexpected kind set write: %s %v", gotSetKey, gotMembers)
	}
}

func TestUpsert_InvalidKind(t *testing.T) {
	repo := New(&mockStore{})
	err := repo.Upsert(context.Background(), domain.Item{ID: "x", Kind: "prompt"})
	if !errors.Is(err, domain.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	item := domain.Item{
		ID:              "sk-1",
		Kind:            domain.KindSkill,
		Name:            "API design review",
		Description:     "Checks endpoint naming",
		Content:         "Review every route for...",
		IsSystem:        true,
		IsActive:        true,
		Visibility:      domain.VisibilityPublic,
		Tags:            []string{"api"},
		AttachmentCount: 2,
	}
	fields := buildHashFields(item)

	repo := New(&mockStore{
		hgetAllFn: func(_ context.Context, key string) (map[string]string, error) {
			if key != "agentdex:item:skill:sk-1" {
				t.Errorf("unexpected key: %s", key)
			}
			return fields, nil
		},
	})

	got, err := repo.Get(context.Background(), domain.KindSkill, "sk-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != item.Name || got.Description != item.Description {
		t.Errorf("display fields did not round-trip: %+v", got)
	}
	if !got.IsSystem || !got.IsActive || got.Deleted {
		t.Errorf("flags did not round-trip: %+v", got)
	}
	if got.Visibility != domain.VisibilityPublic {
		t.Errorf("visibility did not round-trip: %q", got.Visibility)
	}
	if got.AttachmentCount != 2 {
		t.Errorf("attachment_count did not round-trip: %d", got.AttachmentCount)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "api" {
		t.Errorf("tags did not round-trip: %v", got.Tags)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(&mockStore{
		hgetAllFn: func(_ context.Context, _ string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	})

	_, err := repo.Get(context.Background(), domain.KindSkill, "missing")
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestListByKind_SkipsMissingHashes(t *testing.T) {
	repo := New(&mockStore{
		smembersFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{"a", "b"}, nil
		},
		hgetAllMultiFn: func(_ context.Context, keys []string) ([]map[string]string, error) {
			if len(keys) != 2 {
				t.Fatalf("expected 2 keys, got %d", len(keys))
			}
			return []map[string]string{
				buildHashFields(domain.Item{ID: "a", Kind: domain.KindWorkflow, Name: "A"}),
				{}, // id still in the set but hash already gone
			}, nil
		},
	})

	items, err := repo.ListByKind(context.Background(), domain.KindWorkflow)
	if err != nil {
		t.Fatalf("ListByKind failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("expected only item a, got %+v", items)
	}
}

func TestReferences_ReturnsIDSet(t *testing.T) {
	repo := New(&mockStore{
		smembersFn: func(_ context.Context, key string) ([]string, error) {
			if key != "agentdex:refs:u-7:skill" {
				t.Errorf("unexpected refs key: %s", key)
			}
			return []string{"sk-1", "sk-2"}, nil
		},
	})

	refs, err := repo.References(context.Background(), "u-7", domain.KindSkill)
	if err != nil {
		t.Fatalf("References failed: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if _, ok := refs["sk-2"]; !ok {
		t.Error("expected sk-2 in reference set")
	}
}

func TestEmbeddings_AbsentIDsOmitted(t *testing.T) {
	stored := map[string][]byte{
		"agentdex:emb:skill:sk-1": vectorToBytes([]float32{0.1, 0.2, 0.3}),
	}
	repo := New(&mockStore{
		mgetFn: func(_ context.Context, keys []string) ([][]byte, error) {
			out := make([][]byte, len(keys))
			for i, key := range keys {
				out[i] = stored[key] // nil slot for an absent key
			}
			return out, nil
		},
	})

	vectors, err := repo.Embeddings(context.Background(), domain.KindSkill, []string{"sk-1", "sk-2"})
	if err != nil {
		t.Fatalf("Embeddings failed: %v", err)
	}
	if len(vectors) != 1 {
		t.Fatalf("expected 1 vector, got %d", len(vectors))
	}
	vec := vectors["sk-1"]
	if len(vec) != 3 || vec[1] != 0.2 {
		t.Errorf("vector did not round-trip: %v", vec)
	}
	if _, ok := vectors["sk-2"]; ok {
		t.Error("absent embedding must not appear in result map")
	}
}

func TestEmbeddings_MalformedPayloadSkipped(t *testing.T) {
	repo := New(&mockStore{
		mgetFn: func(_ context.Context, keys []string) ([][]byte, error) {
			out := make([][]byte, len(keys))
			for i := range out {
				out[i] = []byte{1, 2, 3} // not a multiple of 4
			}
			return out, nil
		},
	})

	vectors, err := repo.Embeddings(context.Background(), domain.KindSkill, []string{"sk-1"})
	if err != nil {
		t.Fatalf("Embeddings failed: %v", err)
	}
	if len(vectors) != 0 {
		t.Fatalf("malformed vector must be skipped, got %v", vectors)
	}
}

func TestEmbeddings_SingleBatchedFetch(t *testing.T) {
	calls := 0
	repo := New(&mockStore{
		mgetFn: func(_ context.Context, keys []string) ([][]byte, error) {
			calls++
			if len(keys) != 3 {
				t.Errorf("expected all 3 keys in one MGET, got %v", keys)
			}
			if keys[0] != "agentdex:emb:skill:sk-1" {
				t.Errorf("unexpected first key: %s", keys[0])
			}
			return make([][]byte, len(keys)), nil
		},
	})

	_, err := repo.Embeddings(context.Background(), domain.KindSkill, []string{"sk-1", "sk-2", "sk-3"})
	if err != nil {
		t.Fatalf("Embeddings failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single store round trip, got %d", calls)
	}
}

func TestPutEmbedding_WritesBinaryVector(t *testing.T) {
	var gotKey string
	var gotValue []byte
	repo := New(&mockStore{
		setFn: func(_ context.Context, key string, value []byte) error {
			gotKey = key
			gotValue = value
			return nil
		},
	})

	if err := repo.PutEmbedding(context.Background(), domain.KindWorkflow, "wf-1", []float32{1, 2}); err != nil {
		t.Fatalf("PutEmbedding failed: %v", err)
	}
	if gotKey != "agentdex:emb:workflow:wf-1" {
		t.Errorf("unexpected key: %s", gotKey)
	}
	if len(gotValue) != 8 {
		t.Errorf("expected 8 bytes, got %d", len(gotValue))
	}
}
