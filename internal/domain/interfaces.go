package domain

import "context"

// KeyValueStore is a string-keyed store of JSON-serialized values.
// Get returns false for absent and malformed values alike.
type KeyValueStore interface {
	Get(key string, dest any) bool
	Set(key string, value any) error
	Delete(key string) error
}

// CatalogRepository fetches catalog pages (implemented by the TMDB client).
// There is no caching: every call goes to the network.
type CatalogRepository interface {
	FetchPage(ctx context.Context, category Category, credential string, page int) (PagedResult, error)
	Search(ctx context.Context, credential, query string, page int) (PagedResult, error)
	Genres(ctx context.Context, credential string) ([]Genre, error)
}

// KeyValidator checks a catalog API key against the remote service
type KeyValidator interface {
	ValidateKey(ctx context.Context, key string) error
}
