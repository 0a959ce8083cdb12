package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
)

type fakeRepo struct {
	mu    sync.Mutex
	lists map[domain.Category][]domain.CatalogItem
	fail  domain.Category
	seen  []domain.Category
}

func (f *fakeRepo) FetchPage(_ context.Context, c domain.Category, _ string, _ int) (domain.PagedResult, error) {
	f.mu.Lock()
	f.seen = append(f.seen, c)
	f.mu.Unlock()
	if c == f.fail {
		return domain.PagedResult{}, domain.ErrRequestFailed
	}
	return domain.PagedResult{Items: f.lists[c], Page: 1, TotalPages: 1}, nil
}

func (f *fakeRepo) Search(context.Context, string, string, int) (domain.PagedResult, error) {
	return domain.PagedResult{}, nil
}

func (f *fakeRepo) Genres(context.Context, string) ([]domain.Genre, error) { return nil, nil }

func TestHomeLoad_RowsAndFeatured(t *testing.T) {
	repo := &fakeRepo{lists: map[domain.Category][]domain.CatalogItem{
		domain.CategoryPopular:  {{ID: 2, Title: "Popular"}},
		domain.CategoryTopRated: {{ID: 3, Title: "Top"}},
	}}

	home, err := NewHomeService(repo, nil).Load(context.Background(), "k")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(home.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(home.Rows))
	}
	for i, c := range domain.Categories() {
		if home.Rows[i].Category != c {
			t.Fatalf("row %d: expected %s, got %s", i, c, home.Rows[i].Category)
		}
	}
	// now playing is empty, so popular supplies the featured item
	if home.Featured == nil || home.Featured.ID != 2 {
		t.Fatalf("unexpected featured %+v", home.Featured)
	}
}

func TestHomeLoad_AnyFailureFails(t *testing.T) {
	repo := &fakeRepo{fail: domain.CategoryUpcoming}

	_, err := NewHomeService(repo, nil).Load(context.Background(), "k")
	if !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}
