package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/paging"
	"github.com/mmcdole/marquee/internal/service"
)

// feed names the accumulating list a page load belongs to
type feed int

const (
	feedPopular feed = iota
	feedSearch
)

// TickMsg drives the spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// HomeLoadedMsg carries the four home rows
type HomeLoadedMsg struct {
	Home service.Home
	Err  error
}

// GenresLoadedMsg carries the genre catalog
type GenresLoadedMsg struct {
	Genres []domain.Genre
	Err    error
}

// PageLoadedMsg is the outcome of one accumulating page load
type PageLoadedMsg struct {
	Feed   feed
	Req    paging.Request
	Result domain.PagedResult
	Err    error
}

// TablePageLoadedMsg is the outcome of one table-mode page load
type TablePageLoadedMsg struct {
	Req    paging.Request
	Result domain.PagedResult
	Err    error
}

// LoginResultMsg is the outcome of a sign-in attempt
type LoginResultMsg struct {
	Account domain.Account
	Err     error
}

// RegisterResultMsg is the outcome of a registration attempt
type RegisterResultMsg struct {
	Email string
	Err   error
}

// LoggedOutMsg signals the session has ended
type LoggedOutMsg struct {
	Err error
}
