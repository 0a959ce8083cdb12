package wishlist

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

func movie(id int, title string) domain.CatalogItem {
	return domain.CatalogItem{ID: id, Title: title, GenreIDs: []int{28}}
}

func persisted(t *testing.T, kv domain.KeyValueStore) []domain.CatalogItem {
	t.Helper()
	var items []domain.CatalogItem
	kv.Get(StorageKey, &items)
	return items
}

func TestToggle_AddRemove(t *testing.T) {
	kv, _ := store.Open("")
	w := Open(kv, nil)

	added, err := w.Toggle(movie(1, "Heat"))
	if err != nil || !added {
		t.Fatalf("expected add, got %v %v", added, err)
	}
	if !w.IsFavorited(1) {
		t.Fatal("expected id 1 favorited")
	}
	if got := persisted(t, kv); len(got) != 1 || got[0].Title != "Heat" {
		t.Fatalf("expected persisted snapshot, got %+v", got)
	}

	added, err = w.Toggle(movie(1, "Heat"))
	if err != nil || added {
		t.Fatalf("expected removal, got %v %v", added, err)
	}
	if w.IsFavorited(1) {
		t.Fatal("expected id 1 removed")
	}
}

func TestToggle_PairIsNoOp(t *testing.T) {
	kv, _ := store.Open("")
	w := Open(kv, nil)
	_, _ = w.Toggle(movie(1, "Heat"))
	_, _ = w.Toggle(movie(2, "Ronin"))

	before := persisted(t, kv)
	_, _ = w.Toggle(movie(3, "Thief"))
	_, _ = w.Toggle(movie(3, "Thief"))
	after := persisted(t, kv)

	if w.IsFavorited(3) {
		t.Fatal("expected id 3 not favorited after toggle pair")
	}
	if len(before) != len(after) {
		t.Fatalf("persisted set changed: %+v -> %+v", before, after)
	}
	for i := range before {
		if before[i].ID != after[i].ID {
			t.Fatalf("persisted order changed at %d", i)
		}
	}
}

func TestToggle_SnapshotIsIsolated(t *testing.T) {
	kv, _ := store.Open("")
	w := Open(kv, nil)

	item := movie(1, "Heat")
	_, _ = w.Toggle(item)
	item.GenreIDs[0] = 99

	if got := w.Items()[0].GenreIDs[0]; got != 28 {
		t.Fatalf("expected stored snapshot to keep genre 28, got %d", got)
	}
}

func TestWishlist_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	kv, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	w := Open(kv, nil)
	_, _ = w.Toggle(movie(7, "Collateral"))
	kv.Close()

	kv, err = store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()

	reloaded := Open(kv, nil)
	if !reloaded.IsFavorited(7) || reloaded.Len() != 1 {
		t.Fatalf("expected wishlist to survive restart, got %+v", reloaded.Items())
	}
}

func TestOpen_MalformedValueIsEmpty(t *testing.T) {
	kv, _ := store.Open("")
	_ = kv.SetRaw(StorageKey, []byte(`"not a list"`))

	if w := Open(kv, nil); w.Len() != 0 {
		t.Fatalf("expected empty wishlist, got %d", w.Len())
	}
}

func TestClear(t *testing.T) {
	kv, _ := store.Open("")
	w := Open(kv, nil)
	_, _ = w.Toggle(movie(1, "Heat"))
	_, _ = w.Toggle(movie(2, "Ronin"))

	if err := w.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if w.Len() != 0 || len(persisted(t, kv)) != 0 {
		t.Fatal("expected empty wishlist in memory and storage")
	}
}

type failingKV struct{ domain.KeyValueStore }

func (failingKV) Set(string, any) error { return errors.New("disk full") }

func TestToggle_PersistFailureRollsBack(t *testing.T) {
	kv, _ := store.Open("")
	w := Open(failingKV{kv}, nil)

	if _, err := w.Toggle(movie(1, "Heat")); err == nil {
		t.Fatal("expected persist error")
	}
	if w.IsFavorited(1) {
		t.Fatal("expected in-memory set unchanged after failed persist")
	}
}

func TestFilter(t *testing.T) {
	kv, _ := store.Open("")
	w := Open(kv, nil)
	_, _ = w.Toggle(movie(1, "Heat"))
	_, _ = w.Toggle(movie(2, "The Thing"))
	_, _ = w.Toggle(movie(3, "Thief"))

	if got := w.Filter(""); len(got) != 3 {
		t.Fatalf("expected all items for empty query, got %d", len(got))
	}

	got := w.Filter("thi")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %+v", got)
	}
	for _, m := range got {
		if m.Item.ID == 1 {
			t.Fatal("Heat should not match thi")
		}
		if len(m.MatchedIndexes) != 3 {
			t.Fatalf("expected 3 matched indexes, got %v", m.MatchedIndexes)
		}
	}
}
