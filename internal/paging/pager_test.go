package paging

import (
	"context"
	"errors"
	"testing"
)

func goTo(t *testing.T, p *Pager, n int) {
	t.Helper()
	req, ok := p.GoToPage(n)
	if !ok {
		t.Fatalf("GoToPage(%d) refused", n)
	}
	res, err := p.Fetch(context.Background(), req)
	p.Complete(req, res, err)
}

func TestPager_ReplacesAndClamps(t *testing.T) {
	src := threePages()
	p := NewPager(src.fetch, nil)

	goTo(t, p, 1)
	goTo(t, p, 2)

	st := p.State()
	if st.Page != 2 || len(st.Items) != 20 || st.Items[0].ID != 21 {
		t.Fatalf("expected page 2 items only, got page=%d len=%d", st.Page, len(st.Items))
	}

	goTo(t, p, 99)
	if st := p.State(); st.Page != 3 {
		t.Fatalf("expected clamp to 3, got %d", st.Page)
	}

	if _, ok := p.Next(); ok {
		t.Fatal("expected Next on the last page to be refused")
	}

	req, ok := p.Prev()
	if !ok || req.Page != 2 {
		t.Fatalf("expected Prev to request page 2, got %+v %v", req, ok)
	}
}

func TestPager_PrevOnFirstPageRefused(t *testing.T) {
	p := NewPager(threePages().fetch, nil)
	goTo(t, p, 1)
	if _, ok := p.Prev(); ok {
		t.Fatal("expected Prev on page 1 to be refused")
	}
}

func TestPager_FailureKeepsItems(t *testing.T) {
	boom := errors.New("boom")
	src := threePages()
	src.failPages = map[int]error{2: boom}
	p := NewPager(src.fetch, nil)

	goTo(t, p, 1)
	goTo(t, p, 2)

	st := p.State()
	if st.Page != 1 || len(st.Items) != 20 || !errors.Is(st.Err, boom) || st.Loading {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestPager_StaleAfterReset(t *testing.T) {
	src := threePages()
	p := NewPager(src.fetch, nil)

	req, _ := p.GoToPage(1)
	p.Reset()
	if p.Complete(req, src.pages[1], nil) {
		t.Fatal("expected stale response to be ignored")
	}
}
