package paging

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
)

// scripted serves canned pages and records which pages were asked for
type scripted struct {
	pages     map[int]domain.PagedResult
	failPages map[int]error
	calls     []int
}

func (s *scripted) fetch(_ context.Context, page int) (domain.PagedResult, error) {
	s.calls = append(s.calls, page)
	if err := s.failPages[page]; err != nil {
		return domain.PagedResult{}, err
	}
	return s.pages[page], nil
}

func itemsRange(from, to int) []domain.CatalogItem {
	var items []domain.CatalogItem
	for id := from; id <= to; id++ {
		items = append(items, domain.CatalogItem{ID: id})
	}
	return items
}

func threePages() *scripted {
	return &scripted{pages: map[int]domain.PagedResult{
		1: {Items: itemsRange(1, 20), Page: 1, TotalPages: 3},
		2: {Items: itemsRange(21, 40), Page: 2, TotalPages: 3},
		3: {Items: itemsRange(41, 60), Page: 3, TotalPages: 3},
	}}
}

func assertNoDuplicates(t *testing.T, items []domain.CatalogItem) {
	t.Helper()
	seen := make(map[int]bool)
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %d in accumulated list", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestLoadNextPage_ThreeFullPages(t *testing.T) {
	src := threePages()
	c := NewController(src.fetch, nil)

	for i := 0; i < 3; i++ {
		if err := c.LoadNextPage(context.Background()); err != nil {
			t.Fatalf("load %d: %v", i+1, err)
		}
	}

	st := c.State()
	if len(st.Items) != 60 {
		t.Fatalf("expected 60 items, got %d", len(st.Items))
	}
	if st.HasMore {
		t.Fatal("expected hasMore to be false after the last page")
	}

	// Further loads are no-ops
	if err := c.LoadNextPage(context.Background()); err != nil {
		t.Fatalf("extra load: %v", err)
	}
	if len(src.calls) != 3 {
		t.Fatalf("expected 3 fetches, got %v", src.calls)
	}
}

func TestLoadNextPage_DropsDuplicateIDs(t *testing.T) {
	page2 := []domain.CatalogItem{{ID: 3}, {ID: 7}, {ID: 21}, {ID: 12}, {ID: 22}}
	src := &scripted{pages: map[int]domain.PagedResult{
		1: {Items: itemsRange(1, 20), Page: 1, TotalPages: 5},
		2: {Items: page2, Page: 2, TotalPages: 5},
	}}
	c := NewController(src.fetch, nil)

	_ = c.LoadNextPage(context.Background())
	_ = c.LoadNextPage(context.Background())

	st := c.State()
	if len(st.Items) != 22 {
		t.Fatalf("expected 22 items, got %d", len(st.Items))
	}
	assertNoDuplicates(t, st.Items)
	if st.Items[20].ID != 21 || st.Items[21].ID != 22 {
		t.Fatalf("expected arrival order 21, 22 at the tail, got %d, %d", st.Items[20].ID, st.Items[21].ID)
	}
	if len(st.Items) > st.Received {
		t.Fatalf("accumulated %d exceeds received %d", len(st.Items), st.Received)
	}
}

func TestBegin_RefusesWhileLoading(t *testing.T) {
	c := NewController(threePages().fetch, nil)

	req, ok := c.Begin()
	if !ok || req.Page != 1 {
		t.Fatalf("expected to begin page 1, got %+v %v", req, ok)
	}
	if _, ok := c.Begin(); ok {
		t.Fatal("expected second Begin to be refused while loading")
	}
	if !c.State().Loading {
		t.Fatal("expected loading flag")
	}
}

func TestFailureLeavesItemsAndAllowsRetry(t *testing.T) {
	boom := errors.New("boom")
	src := threePages()
	src.failPages = map[int]error{2: boom}
	c := NewController(src.fetch, nil)

	_ = c.LoadNextPage(context.Background())
	if err := c.LoadNextPage(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	st := c.State()
	if len(st.Items) != 20 || st.Loading || !errors.Is(st.Err, boom) || st.Page != 2 {
		t.Fatalf("unexpected state after failure: items=%d loading=%v err=%v page=%d", len(st.Items), st.Loading, st.Err, st.Page)
	}

	delete(src.failPages, 2)
	if err := c.LoadNextPage(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if st := c.State(); len(st.Items) != 40 || st.Err != nil {
		t.Fatalf("expected 40 items after retry, got %d (err %v)", len(st.Items), st.Err)
	}
}

func TestResetReproducesFreshController(t *testing.T) {
	src := threePages()
	c := NewController(src.fetch, nil)
	_ = c.LoadNextPage(context.Background())
	_ = c.LoadNextPage(context.Background())

	c.Reset()
	st := c.State()
	if len(st.Items) != 0 || st.Page != 1 || !st.HasMore {
		t.Fatalf("unexpected state after reset %+v", st)
	}
	_ = c.LoadNextPage(context.Background())
	_ = c.LoadNextPage(context.Background())

	fresh := NewController(threePages().fetch, nil)
	_ = fresh.LoadNextPage(context.Background())
	_ = fresh.LoadNextPage(context.Background())

	a, b := c.State().Items, fresh.State().Items
	if len(a) != len(b) {
		t.Fatalf("length mismatch %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("mismatch at %d: %d vs %d", i, a[i].ID, b[i].ID)
		}
	}
}

func TestCompleteIgnoresStaleGeneration(t *testing.T) {
	src := threePages()
	c := NewController(src.fetch, nil)

	req, _ := c.Begin()
	c.Reset()

	if c.Complete(req, src.pages[1], nil) {
		t.Fatal("expected stale response to be ignored")
	}
	if n := c.Len(); n != 0 {
		t.Fatalf("expected no items, got %d", n)
	}
	if _, ok := c.Begin(); !ok {
		t.Fatal("expected reset controller to accept a new load")
	}
}

func TestCloseIgnoresLateResponse(t *testing.T) {
	src := threePages()
	c := NewController(src.fetch, nil)

	req, _ := c.Begin()
	c.Close()

	if c.Complete(req, src.pages[1], nil) {
		t.Fatal("expected response after Close to be ignored")
	}
	if _, ok := c.Begin(); ok {
		t.Fatal("expected closed controller to refuse loads")
	}
}

func TestShouldLoad(t *testing.T) {
	ready := State{HasMore: true}
	if !ShouldLoad(DistanceFromBottom(10, 10, 24), DefaultThreshold, ready) {
		t.Fatal("expected trigger near the bottom")
	}
	if ShouldLoad(DistanceFromBottom(0, 10, 60), DefaultThreshold, ready) {
		t.Fatal("expected no trigger far from the bottom")
	}
	if ShouldLoad(0, DefaultThreshold, State{HasMore: true, Loading: true}) {
		t.Fatal("expected no trigger while loading")
	}
	if ShouldLoad(0, DefaultThreshold, State{}) {
		t.Fatal("expected no trigger when no pages remain")
	}
}
