package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// wishlistView lists saved titles, optionally fuzzy filtered
type wishlistView struct {
	query string
	list  *components.ItemList
}

func newWishlistView() *wishlistView {
	list := components.NewItemList("Wishlist")
	list.SetEmptyText("Your wishlist is empty. Press w on any title to save it.")
	return &wishlistView{list: list}
}

// refreshWishlist rebuilds the list from the store
func (m *Model) refreshWishlist() {
	wv := m.wish
	matches := m.Wishlist.Filter(wv.query)

	items := make([]domain.CatalogItem, len(matches))
	highlights := make([][]int, len(matches))
	for i, match := range matches {
		items[i] = match.Item
		highlights[i] = match.MatchedIndexes
	}
	wv.list.SetItems(items)
	wv.list.SetHighlights(highlights)

	switch {
	case wv.query != "":
		wv.list.SetTitle(fmt.Sprintf("Wishlist · %d of %d matching %q", len(items), m.Wishlist.Len(), wv.query))
		wv.list.SetEmptyText("No saved titles match")
	default:
		wv.list.SetTitle(fmt.Sprintf("Wishlist · %d titles", len(items)))
		wv.list.SetEmptyText("Your wishlist is empty. Press w on any title to save it.")
	}
}

func (m Model) handleWishlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wv := m.wish

	switch {
	case key.Matches(msg, Keys.Query):
		m.showInput(inputWishlistFilter, "Filter wishlist", wv.query, "title")
	case key.Matches(msg, Keys.Escape):
		if wv.query != "" {
			wv.query = ""
			m.refreshWishlist()
		}
	case key.Matches(msg, Keys.ClearAll):
		if m.Wishlist.Len() > 0 {
			m.State = StateConfirmClear
		}
	case key.Matches(msg, Keys.Refresh):
		m.refreshWishlist()
	default:
		wv.list.HandleKey(msg)
	}
	return m, nil
}
