package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/config"
)

// Route is a screen address
type Route string

const (
	RouteHome     Route = "/"
	RoutePopular  Route = "/popular"
	RouteSearch   Route = "/search"
	RouteWishlist Route = "/wishlist"
	RouteSignIn   Route = "/signin"
)

// tabRoutes are the header tabs in display order
var tabRoutes = []Route{RouteHome, RoutePopular, RouteSearch, RouteWishlist}

// Protected reports whether the route needs a signed-in session
func (r Route) Protected() bool {
	return r != RouteSignIn
}

// Label returns the tab title
func (r Route) Label() string {
	switch r {
	case RoutePopular:
		return "Popular"
	case RouteSearch:
		return "Search"
	case RouteWishlist:
		return "Wishlist"
	case RouteSignIn:
		return "Sign in"
	default:
		return "Home"
	}
}

// ParseRoute accepts a path like "/popular"; unknown paths map to home
func ParseRoute(path string) Route {
	switch r := Route(path); r {
	case RouteHome, RoutePopular, RouteSearch, RouteWishlist, RouteSignIn:
		return r
	}
	return RouteHome
}

// tabOffset returns the tab delta away from r, wrapping around
func tabOffset(r Route, delta int) Route {
	idx := 0
	for i, t := range tabRoutes {
		if t == r {
			idx = i
			break
		}
	}
	n := len(tabRoutes)
	return tabRoutes[((idx+delta)%n+n)%n]
}

// navigate moves to r. A protected route without a session lands on the
// sign-in screen and remembers r so a successful login can return there.
func (m *Model) navigate(r Route) tea.Cmd {
	if r.Protected() && !m.Session.IsLoggedIn() {
		m.from = r
		m.leave(m.Route)
		m.Route = RouteSignIn
		return nil
	}
	if r == m.Route {
		return nil
	}

	m.leave(m.Route)
	m.Route = r
	return m.enter(r)
}

// enter starts whatever loads the route needs
func (m *Model) enter(r Route) tea.Cmd {
	var cmds []tea.Cmd
	if r.Protected() {
		cmds = append(cmds, m.loadGenres())
	}

	switch r {
	case RouteHome:
		if !m.home.loaded && !m.home.loading {
			cmds = append(cmds, m.loadHome())
		}
	case RoutePopular:
		if m.popular.mode == config.ViewInfinite {
			cmds = append(cmds, m.beginLoad(feedPopular))
		} else {
			cmds = append(cmds, m.goToPage(1))
		}
	case RouteSearch:
		m.search.list.ScrollToTop()
		cmds = append(cmds, m.beginLoad(feedSearch))
	case RouteWishlist:
		m.refreshWishlist()
	}
	return tea.Batch(cmds...)
}

// leave tears down the route's paging state. Responses still in flight
// for it are dropped when they arrive.
func (m *Model) leave(r Route) {
	switch r {
	case RoutePopular:
		m.popular.ctrl.Reset()
		m.popular.list.SetItems(nil)
		m.popular.list.ScrollToTop()
		m.popular.pager.Reset()
		m.popular.table.SetRows(nil)
	case RouteSearch:
		m.search.ctrl.Reset()
		m.search.derived = nil
		m.search.list.SetItems(nil)
	}
}
