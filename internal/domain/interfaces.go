package domain

import "context"

// CollectionRepository fetches pages of artworks from the remote collection.
// Implementations hold no mutable cross-call state and are safe for
// concurrent use.
type CollectionRepository interface {
	// Fetch returns the given 1-based page. An empty query lists the whole
	// collection.
	Fetch(ctx context.Context, page int, query string) (*SearchPage, error)
}

// FavoritesQueries: synchronous, in-memory reads. Safe to call from View().
type FavoritesQueries interface {
	IsFavorite(id string) bool
	List() []string
	Count() int
}

// FavoritesCommands mutate the favorite set and persist it before returning.
type FavoritesCommands interface {
	// Toggle flips membership and returns the new state
	Toggle(id string) (bool, error)
	Clear() error
}
