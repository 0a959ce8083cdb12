package paging

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// PagerState is a snapshot of a Pager
type PagerState struct {
	Items      []domain.CatalogItem
	Page       int // page currently shown (0 before the first load)
	TotalPages int
	Loading    bool
	Err        error
}

// Pager shows one page at a time (table mode). A completed load replaces
// the items rather than accumulating.
type Pager struct {
	fetch  FetchFunc
	logger *slog.Logger

	mu         sync.Mutex
	items      []domain.CatalogItem
	page       int
	totalPages int
	loading    bool
	err        error
	generation uint64
	closed     bool
}

// NewPager creates a Pager with nothing loaded
func NewPager(fetch FetchFunc, logger *slog.Logger) *Pager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pager{fetch: fetch, logger: logger}
}

// clamp bounds n to [1, totalPages]; totalPages is unknown before the first load
func (p *Pager) clamp(n int) int {
	if p.totalPages > 0 && n > p.totalPages {
		n = p.totalPages
	}
	return max(1, n)
}

// GoToPage starts loading page n, clamped to the known range. It refuses
// when a load is in flight or n is already shown.
func (p *Pager) GoToPage(n int) (Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.loading {
		return Request{}, false
	}
	n = p.clamp(n)
	if n == p.page && p.err == nil && p.items != nil {
		return Request{}, false
	}

	p.loading = true
	p.err = nil
	return Request{Page: n, generation: p.generation}, true
}

// Next moves one page forward
func (p *Pager) Next() (Request, bool) {
	p.mu.Lock()
	target := p.page + 1
	p.mu.Unlock()
	return p.GoToPage(target)
}

// Prev moves one page back
func (p *Pager) Prev() (Request, bool) {
	p.mu.Lock()
	target := p.page - 1
	p.mu.Unlock()
	return p.GoToPage(target)
}

// Fetch runs the fetch function for req
func (p *Pager) Fetch(ctx context.Context, req Request) (domain.PagedResult, error) {
	return p.fetch(ctx, req.Page)
}

// Complete applies the outcome of req; stale requests report false
func (p *Pager) Complete(req Request, result domain.PagedResult, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || req.generation != p.generation {
		return false
	}

	p.loading = false
	if err != nil {
		p.err = err
		p.logger.Error("page load failed", "page", req.Page, "error", err)
		return true
	}

	p.items = dedupe(result.Items)
	p.page = req.Page
	p.totalPages = result.TotalPages
	return true
}

// Reset forgets the shown page; the next GoToPage(1) reloads
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.page = 0
	p.totalPages = 0
	p.loading = false
	p.err = nil
	p.generation++
}

// State returns a snapshot; Items is a copy
func (p *Pager) State() PagerState {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]domain.CatalogItem, len(p.items))
	copy(items, p.items)
	return PagerState{
		Items:      items,
		Page:       p.page,
		TotalPages: p.totalPages,
		Loading:    p.loading,
		Err:        p.err,
	}
}

// Close tears the pager down; late responses are ignored
func (p *Pager) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.loading = false
	p.generation++
}

func dedupe(items []domain.CatalogItem) []domain.CatalogItem {
	seen := make(map[int]struct{}, len(items))
	out := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}
