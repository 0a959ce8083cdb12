// Package wishlist keeps favorited catalog items. The full set is written
// back to the key-value store on every change before the call returns.
package wishlist

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/sahilm/fuzzy"
)

// StorageKey is the key holding the serialized wishlist
const StorageKey = "movie_wishlist"

// Store is the process-wide wishlist
type Store struct {
	kv     domain.KeyValueStore
	logger *slog.Logger

	mu    sync.RWMutex
	items []domain.CatalogItem // insertion order, unique by ID
}

// Open loads the persisted wishlist. A missing or malformed value starts empty.
func Open(kv domain.KeyValueStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	var items []domain.CatalogItem
	if !kv.Get(StorageKey, &items) {
		items = nil
	}

	s := &Store{kv: kv, logger: logger}
	for _, item := range items {
		if !s.containsLocked(item.ID) {
			s.items = append(s.items, item)
		}
	}

	logger.Debug("wishlist loaded", "count", len(s.items))
	return s
}

func (s *Store) containsLocked(id int) bool {
	return slices.IndexFunc(s.items, func(it domain.CatalogItem) bool { return it.ID == id }) >= 0
}

// IsFavorited reports whether id is in the wishlist
func (s *Store) IsFavorited(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containsLocked(id)
}

// Toggle removes item if present, otherwise adds a snapshot of it.
// It reports whether the item is now favorited. When persisting fails the
// in-memory set is left as it was.
func (s *Store) Toggle(item domain.CatalogItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.items
	idx := slices.IndexFunc(prev, func(it domain.CatalogItem) bool { return it.ID == item.ID })

	var next []domain.CatalogItem
	if idx >= 0 {
		next = slices.Delete(slices.Clone(prev), idx, idx+1)
	} else {
		snapshot := item
		snapshot.GenreIDs = slices.Clone(item.GenreIDs)
		next = append(slices.Clone(prev), snapshot)
	}

	if err := s.persist(next); err != nil {
		return idx >= 0, err
	}
	s.items = next

	s.logger.Debug("wishlist toggled", "id", item.ID, "favorited", idx < 0, "count", len(next))
	return idx < 0, nil
}

// Clear empties the wishlist
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist([]domain.CatalogItem{}); err != nil {
		return err
	}
	s.items = nil
	return nil
}

func (s *Store) persist(items []domain.CatalogItem) error {
	if items == nil {
		items = []domain.CatalogItem{}
	}
	if err := s.kv.Set(StorageKey, items); err != nil {
		s.logger.Error("failed to persist wishlist", "error", err)
		return err
	}
	return nil
}

// Items returns a copy of the wishlist in insertion order
func (s *Store) Items() []domain.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Len returns the number of favorited items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Match is a filtered wishlist entry with the title positions that matched
type Match struct {
	Item           domain.CatalogItem
	MatchedIndexes []int
}

// titleSource implements fuzzy.Source over lowercase titles
type titleSource []string

func (t titleSource) String(i int) string { return t[i] }
func (t titleSource) Len() int            { return len(t) }

// Filter returns the items whose titles fuzzy-match query, best first.
// An empty query returns everything in insertion order.
func (s *Store) Filter(query string) []Match {
	items := s.Items()

	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(items))
		for i, it := range items {
			out[i] = Match{Item: it}
		}
		return out
	}

	titles := make(titleSource, len(items))
	for i, it := range items {
		titles[i] = strings.ToLower(it.Title)
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), titles)
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = Match{Item: items[m.Index], MatchedIndexes: m.MatchedIndexes}
	}
	return out
}
