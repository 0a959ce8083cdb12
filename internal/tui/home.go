package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// cardWidth is the width of one title card in a home row
const cardWidth = 22

// homeView is the featured banner plus one row per category
type homeView struct {
	data    *service.Home
	loaded  bool
	loading bool
	err     error

	row int
	col int
}

func (h *homeView) selected() (domain.CatalogItem, bool) {
	if h.data == nil || h.row >= len(h.data.Rows) {
		return domain.CatalogItem{}, false
	}
	items := h.data.Rows[h.row].Items
	if h.col >= len(items) {
		return domain.CatalogItem{}, false
	}
	return items[h.col], true
}

func (h *homeView) move(dRow, dCol int) {
	if h.data == nil || len(h.data.Rows) == 0 {
		return
	}
	h.row = min(max(0, h.row+dRow), len(h.data.Rows)-1)
	n := len(h.data.Rows[h.row].Items)
	h.col = min(max(0, h.col+dCol), max(0, n-1))
}

// loadHome fetches the four rows with the session credential
func (m *Model) loadHome() tea.Cmd {
	credential, err := m.Session.Credential()
	if err != nil {
		return m.navigate(RouteSignIn)
	}
	m.home.loading = true
	m.home.err = nil
	return LoadHomeCmd(m.HomeSvc, credential)
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Refresh):
		if m.home.loading {
			return m, nil
		}
		return m, m.loadHome()
	case key.Matches(msg, Keys.Up):
		m.home.move(-1, 0)
	case key.Matches(msg, Keys.Down):
		m.home.move(1, 0)
	case key.Matches(msg, Keys.Left):
		m.home.move(0, -1)
	case key.Matches(msg, Keys.Right):
		m.home.move(0, 1)
	}
	return m, nil
}

func (m Model) renderHome(height int) string {
	width, _ := m.columnWidths()
	h := m.home

	switch {
	case h.loading && h.data == nil:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.DimStyle.Render("Loading..."))
	case h.err != nil && h.data == nil:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.ErrorStyle.Render(domain.UserMessage(h.err))+"\n"+styles.DimStyle.Render("press r to retry"))
	case h.data == nil:
		return ""
	}

	var sections []string
	if f := h.data.Featured; f != nil {
		sections = append(sections, renderFeatured(*f, width-2), "")
	}

	for i, row := range h.data.Rows {
		label := styles.SubtitleStyle.Render(row.Category.Label())
		if i == h.row {
			label = styles.AccentStyle.Bold(true).Render(row.Category.Label())
		}
		col := -1
		if i == h.row {
			col = h.col
		}
		sections = append(sections, label, m.renderCards(row.Items, col, width), "")
	}

	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(strings.Join(sections, "\n"))
}

func renderFeatured(item domain.CatalogItem, width int) string {
	overview := item.Overview
	if overview == "" {
		overview = "No overview available."
	}
	body := styles.TitleStyle.Render(styles.Truncate(item.Title, width)) + "\n" +
		styles.RenderRating(item.Rating) + "  " + styles.DimStyle.Render(item.ReleaseDate) + "\n" +
		styles.SubtitleStyle.Render(styles.Truncate(overview, max(10, width*2))) // about two lines once wrapped
	return styles.FeaturedStyle.Width(width).MaxHeight(4).Render(body)
}

// renderCards renders one row of title cards scrolled so selected is visible;
// selected < 0 means the row is not focused
func (m Model) renderCards(items []domain.CatalogItem, selected, width int) string {
	if len(items) == 0 {
		return styles.DimStyle.Render("  Nothing here yet")
	}

	perLine := max(1, width/(cardWidth+1))
	start := 0
	if selected >= perLine {
		start = selected - perLine + 1
	}
	end := min(len(items), start+perLine)

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := items[i]
		title := item.Title
		if m.Wishlist.IsFavorited(item.ID) {
			title = styles.FavoriteChar + " " + title
		}
		text := styles.Pad(" "+styles.Truncate(title, cardWidth-2), cardWidth)

		style := lipgloss.NewStyle().Foreground(styles.LightGray).Background(styles.SlateDark)
		if i == selected {
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.Marquee).Bold(true)
		}
		cards = append(cards, style.Render(text))
	}
	return strings.Join(cards, " ")
}
