// Package paging accumulates catalog pages for infinite scrolling and holds
// single pages for table views.
//
// A load is split into Begin (claim the in-flight slot, pick the page),
// the fetch itself, and Complete (apply the result). The split lets a UI
// run the fetch off its event loop while keeping state changes on it.
// Each Request carries the generation it was issued under; Reset and Close
// bump the generation so late responses are dropped instead of applied.
package paging

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// FetchFunc fetches one page of the current query context
type FetchFunc func(ctx context.Context, page int) (domain.PagedResult, error)

// Request identifies one in-flight page load
type Request struct {
	Page       int
	generation uint64
}

// State is a snapshot of a Controller
type State struct {
	Items      []domain.CatalogItem
	Page       int // next page to load
	TotalPages int
	Loading    bool
	HasMore    bool
	Err        error
	Received   int // items received across all applied pages
}

// Controller accumulates pages with id de-duplication
type Controller struct {
	fetch  FetchFunc
	logger *slog.Logger

	mu         sync.Mutex
	items      []domain.CatalogItem
	seen       map[int]struct{}
	page       int
	totalPages int
	loading    bool
	hasMore    bool
	err        error
	received   int
	generation uint64
	closed     bool
}

// NewController creates a Controller starting at page 1
func NewController(fetch FetchFunc, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{fetch: fetch, logger: logger}
	c.resetLocked()
	return c
}

// Reset clears the accumulated list and starts over at page 1.
// Any in-flight load is orphaned.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.items = nil
	c.seen = make(map[int]struct{})
	c.page = 1
	c.totalPages = 0
	c.loading = false
	c.hasMore = true
	c.err = nil
	c.received = 0
	c.generation++
}

// Begin claims the in-flight slot. It returns false when a load is already
// running, no pages remain, or the controller is closed.
func (c *Controller) Begin() (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.loading || !c.hasMore {
		return Request{}, false
	}
	c.loading = true
	c.err = nil
	return Request{Page: c.page, generation: c.generation}, true
}

// Fetch runs the fetch function for req
func (c *Controller) Fetch(ctx context.Context, req Request) (domain.PagedResult, error) {
	return c.fetch(ctx, req.Page)
}

// Complete applies the outcome of req. It reports false when req belongs to
// an earlier generation; such results are ignored entirely.
func (c *Controller) Complete(req Request, result domain.PagedResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || req.generation != c.generation {
		c.logger.Debug("dropping stale page", "page", req.Page)
		return false
	}

	c.loading = false

	if err != nil {
		c.err = err
		c.logger.Error("page load failed", "page", req.Page, "error", err)
		return true
	}

	c.received += len(result.Items)
	for _, item := range result.Items {
		if _, dup := c.seen[item.ID]; dup {
			continue
		}
		c.seen[item.ID] = struct{}{}
		c.items = append(c.items, item)
	}

	c.totalPages = result.TotalPages
	c.hasMore = req.Page < result.TotalPages
	c.page = req.Page + 1

	c.logger.Debug("page applied", "page", req.Page, "total_pages", result.TotalPages, "accumulated", len(c.items))
	return true
}

// LoadNextPage loads the next page synchronously. It is a no-op when Begin
// would refuse. The returned error is also kept in State().Err.
func (c *Controller) LoadNextPage(ctx context.Context) error {
	req, ok := c.Begin()
	if !ok {
		return nil
	}
	result, err := c.Fetch(ctx, req)
	c.Complete(req, result, err)
	return err
}

// State returns a snapshot; Items is a copy
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.CatalogItem, len(c.items))
	copy(items, c.items)
	return State{
		Items:      items,
		Page:       c.page,
		TotalPages: c.totalPages,
		Loading:    c.loading,
		HasMore:    c.hasMore,
		Err:        c.err,
		Received:   c.received,
	}
}

// Len returns the number of accumulated items
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Close tears the controller down. Later Begin calls refuse and late
// responses are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.loading = false
	c.generation++
}
