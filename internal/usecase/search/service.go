// Package search is the semantic retrieval and ranking engine for catalog
// items. It embeds the query, ranks an authorization-scoped candidate set by
// cosine similarity, and degrades to lexical substring matching whenever the
// embedding path is unavailable. A search never hard-fails unless the lexical
// path itself fails.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/agentdex/agentdex/internal/domain"
	"github.com/agentdex/agentdex/internal/metrics"
)

// Default result limits applied when the caller passes limit <= 0.
const (
	DefaultWorkflowLimit = 5
	DefaultSkillLimit    = 10
)

// Service orchestrates semantic search per item kind. It is stateless and
// request-scoped; concurrent calls share nothing.
type Service struct {
	catalog Catalog
	embed   Embedder // nil when no provider credential is configured
	logger  *zap.Logger
}

// New creates a search service. embed may be nil, in which case every search
// takes the lexical path.
func New(catalog Catalog, embed Embedder, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, embed: embed, logger: logger}
}

// SearchWorkflows finds workflows relevant to a free-text query.
func (s *Service) SearchWorkflows(
	ctx context.Context, query string, limit int, caller domain.Caller,
) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultWorkflowLimit
	}
	return s.search(ctx, domain.KindWorkflow, query, limit, caller)
}

// SearchSkills finds skills relevant to a free-text query.
func (s *Service) SearchSkills(
	ctx context.Context, query string, limit int, caller domain.Caller,
) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSkillLimit
	}
	return s.search(ctx, domain.KindSkill, query, limit, caller)
}

// search runs the fallback ladder: vector path, then lexical path. Only a
// lexical-path failure surfaces to the caller, wrapped in ErrSearchFailed.
func (s *Service) search(
	ctx context.Context, kind domain.Kind, query string, limit int, caller domain.Caller,
) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if s.embed == nil {
		return s.fallback(ctx, kind, query, limit, caller)
	}

	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("query embedding unavailable, falling back to lexical search",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return s.fallback(ctx, kind, query, limit, caller)
	}

	results, err := s.rankBySimilarity(ctx, kind, emb.Embedding, limit, caller)
	if err != nil {
		s.logger.Warn("vector ranking failed, falling back to lexical search",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return s.fallback(ctx, kind, query, limit, caller)
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(kind), metrics.SearchPathVector).Inc()
	return results, nil
}

// rankBySimilarity scores every candidate that has a stored embedding against
// the query vector. Candidates without a stored vector, and candidates whose
// vector length disagrees with the query vector, are excluded from ranking
// rather than scored as zero.
func (s *Service) rankBySimilarity(
	ctx context.Context, kind domain.Kind, queryVec []float32, limit int, caller domain.Caller,
) ([]domain.SearchResult, error) {
	items, err := s.candidates(ctx, kind, caller)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	vectors, err := s.catalog.Embeddings(ctx, kind, ids)
	if err != nil {
		return nil, fmt.Errorf("load %s embeddings: %w", kind, err)
	}

	type scored struct {
		item  domain.Item
		score float64
	}
	ranked := make([]scored, 0, len(items))
	for _, item := range items {
		vec, ok := vectors[item.ID]
		if !ok || len(vec) != len(queryVec) {
			continue
		}
		ranked = append(ranked, scored{item: item, score: Cosine(queryVec, vec)})
	}

	// Stable: ties keep catalog retrieval order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]domain.SearchResult, len(ranked))
	for i, sc := range ranked {
		results[i] = domain.ResultFromItem(sc.item, sc.score)
	}
	return results, nil
}

// fallback runs the lexical path and converts its failure into the one error
// this engine is allowed to return.
func (s *Service) fallback(
	ctx context.Context, kind domain.Kind, query string, limit int, caller domain.Caller,
) ([]domain.SearchResult, error) {
	results, err := s.lexicalSearch(ctx, kind, query, limit, caller)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(kind), metrics.SearchPathFailed).Inc()
		s.logger.Error("lexical search failed",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(kind), metrics.SearchPathLexical).Inc()
	return results, nil
}
