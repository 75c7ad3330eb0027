package search

import (
	"context"
	"strings"

	"github.com/agentdex/agentdex/internal/domain"
)

// lexicalSearch is the degraded path: case-insensitive substring match over
// name, description, and content within the same candidate universe as the
// vector path. Every match gets the fixed FallbackScore so consumers can tell
// a non-ranked match from a ranked one.
func (s *Service) lexicalSearch(
	ctx context.Context, kind domain.Kind, query string, limit int, caller domain.Caller,
) ([]domain.SearchResult, error) {
	items, err := s.candidates(ctx, kind, caller)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := make([]domain.SearchResult, 0, limit)
	for _, item := range items {
		if !matchesLexical(item, needle) {
			continue
		}
		results = append(results, domain.ResultFromItem(item, domain.FallbackScore))
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func matchesLexical(item domain.Item, needle string) bool {
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle) ||
		strings.Contains(strings.ToLower(item.Content), needle)
}
