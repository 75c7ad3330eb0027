package domain

import "errors"

var (
	// ErrItemNotFound signals a missing catalog item.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidKind signals an unknown item kind.
	ErrInvalidKind = errors.New("invalid item kind")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrSearchFailed signals that both the vector and lexical paths failed.
	// It is the only error the search engine returns to its callers.
	ErrSearchFailed = errors.New("search failed")
)
