package search

import (
	"context"

	"github.com/agentdex/agentdex/internal/domain"
)

// --- Mocks ---

type mockCatalog struct {
	items   []domain.Item
	refs    map[string]struct{}
	vectors map[string][]float32

	listErr error
	refsErr error
	embErr  error

	embeddingsCalled bool
}

func (m *mockCatalog) ListByKind(_ context.Context, _ domain.Kind) ([]domain.Item, error) {
	return m.items, m.listErr
}

func (m *mockCatalog) References(_ context.Context, _ string, _ domain.Kind) (map[string]struct{}, error) {
	if m.refsErr != nil {
		return nil, m.refsErr
	}
	if m.refs == nil {
		return map[string]struct{}{}, nil
	}
	return m.refs, nil
}

func (m *mockCatalog) Embeddings(_ context.Context, _ domain.Kind, ids []string) (map[string][]float32, error) {
	m.embeddingsCalled = true
	if m.embErr != nil {
		return nil, m.embErr
	}
	out := make(map[string][]float32, len(ids))
	for _, id := range ids {
		if vec, ok := m.vectors[id]; ok {
			out[id] = vec
		}
	}
	return out, nil
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

// --- Fixtures ---

func systemItem(kind domain.Kind, id, name string, vis domain.Visibility) domain.Item {
	return domain.Item{
		ID:         id,
		Kind:       kind,
		Name:       name,
		IsSystem:   true,
		IsActive:   true,
		Visibility: vis,
	}
}

func userItem(kind domain.Kind, id, name, owner string, vis domain.Visibility) domain.Item {
	return domain.Item{
		ID:         id,
		Kind:       kind,
		Name:       name,
		OwnerID:    owner,
		IsActive:   true,
		Visibility: vis,
	}
}
