package search

import (
	"context"
	"fmt"

	"github.com/agentdex/agentdex/internal/domain"
)

// candidates builds the authorization-scoped universe of items eligible for
// ranking in one call. Both the vector path and the lexical fallback go
// through here, so the fallback can never be more permissive.
//
// Anonymous callers see active, public system items. Authenticated callers
// additionally see their own items regardless of visibility, plus system
// items they referenced into their personal library regardless of visibility.
// Both kinds use the same visibility predicate.
func (s *Service) candidates(ctx context.Context, kind domain.Kind, caller domain.Caller) ([]domain.Item, error) {
	items, err := s.catalog.ListByKind(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s candidates: %w", kind, err)
	}

	var refs map[string]struct{}
	if !caller.Anonymous() {
		refs, err = s.catalog.References(ctx, caller.UserID, kind)
		if err != nil {
			return nil, fmt.Errorf("load %s references: %w", kind, err)
		}
	}

	eligible := items[:0:0]
	for _, item := range items {
		if !item.IsActive || item.Deleted {
			continue
		}
		if eligibleFor(item, caller, refs) {
			eligible = append(eligible, item)
		}
	}
	return eligible, nil
}

// eligibleFor applies the per-caller authorization rule to one live item.
// Item IDs are unique within a kind, so the owned/public/referenced subsets
// union without duplication.
func eligibleFor(item domain.Item, caller domain.Caller, refs map[string]struct{}) bool {
	publicSystem := item.IsSystem && item.Visibility == domain.VisibilityPublic

	if caller.Anonymous() {
		return publicSystem
	}
	if item.OwnerID == caller.UserID {
		return true
	}
	if publicSystem {
		return true
	}
	if item.IsSystem {
		_, referenced := refs[item.ID]
		return referenced
	}
	return false
}
