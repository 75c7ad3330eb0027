package search

import (
	"context"

	"github.com/agentdex/agentdex/internal/domain"
)

// Catalog is the read contract for candidate items, per-user reference lists,
// and stored item embeddings.
type Catalog interface {
	// ListByKind returns every item of a kind, including inactive and
	// soft-deleted ones; the engine applies liveness and authorization itself.
	ListByKind(ctx context.Context, kind domain.Kind) ([]domain.Item, error)

	// References returns the item IDs a user has adopted into their personal
	// library for a kind.
	References(ctx context.Context, userID string, kind domain.Kind) (map[string]struct{}, error)

	// Embeddings returns stored vectors keyed by item ID. IDs without a stored
	// embedding are absent from the map, not zero-valued.
	Embeddings(ctx context.Context, kind domain.Kind, ids []string) (map[string][]float32, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
