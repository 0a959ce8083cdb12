package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/paging"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// popularView holds two independent views of the popular category: a
// page-at-a-time table and an accumulating infinite list
type popularView struct {
	mode string // config.ViewTable or config.ViewInfinite

	pager    *paging.Pager
	lastPage int // last requested table page, for retry
	table    table.Model

	ctrl *paging.Controller
	list *components.ItemList
}

// categoryFetch returns a FetchFunc for one category using the session credential
func categoryFetch(session *service.SessionService, catalog domain.CatalogRepository, category domain.Category) paging.FetchFunc {
	return func(ctx context.Context, page int) (domain.PagedResult, error) {
		credential, err := session.Credential()
		if err != nil {
			return domain.PagedResult{}, err
		}
		return catalog.FetchPage(ctx, category, credential, page)
	}
}

func newPopularView(mode string, session *service.SessionService, catalog domain.CatalogRepository, logger *slog.Logger) *popularView {
	if mode != config.ViewInfinite {
		mode = config.ViewTable
	}
	fetch := categoryFetch(session, catalog, domain.CategoryPopular)

	t := table.New(
		table.WithColumns(tableColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.DimGray).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.White).
		Background(styles.SlateLight).
		Bold(false)
	t.SetStyles(s)

	list := components.NewItemList("Popular")
	list.SetEmptyText("No titles")

	return &popularView{
		mode:  mode,
		pager: paging.NewPager(fetch, logger),
		table: t,
		ctrl:  paging.NewController(fetch, logger),
		list:  list,
	}
}

// tableColumns sizes the table to width; cells carry one space of padding per side
func tableColumns(width int) []table.Column {
	const (
		numW    = 4
		yearW   = 4
		ratingW = 5
		favW    = 1
		padding = 2 * 5
	)
	titleW := max(10, width-numW-yearW-ratingW-favW-padding)
	return []table.Column{
		{Title: "#", Width: numW},
		{Title: "Title", Width: titleW},
		{Title: "Year", Width: yearW},
		{Title: "★", Width: ratingW},
		{Title: styles.FavoriteChar, Width: favW},
	}
}

func (p *popularView) selected() (domain.CatalogItem, bool) {
	if p.mode == config.ViewInfinite {
		return p.list.Selected()
	}
	items := p.pager.State().Items
	idx := p.table.Cursor()
	if idx < 0 || idx >= len(items) {
		return domain.CatalogItem{}, false
	}
	return items[idx], true
}

func (p *popularView) showTopButton(rows int) bool {
	return p.mode == config.ViewInfinite && paging.ShowTopButton(p.list.Offset(), rows)
}

// rebuildTable refills the table rows from the pager's current page
func (m *Model) rebuildTable() {
	st := m.popular.pager.State()
	rows := make([]table.Row, len(st.Items))
	for i, item := range st.Items {
		fav := ""
		if m.Wishlist.IsFavorited(item.ID) {
			fav = styles.FavoriteChar
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			item.Title,
			item.Year(),
			fmt.Sprintf("%.1f", item.Rating),
			fav,
		}
	}
	m.popular.table.SetRows(rows)
}

// goToPage claims a table page load
func (m *Model) goToPage(n int) tea.Cmd {
	req, ok := m.popular.pager.GoToPage(n)
	if !ok {
		return nil
	}
	m.popular.lastPage = req.Page
	return LoadTablePageCmd(m.popular.pager, req)
}

func (m *Model) goToPageInput(value string) tea.Cmd {
	n, err := strconv.Atoi(value)
	if err != nil {
		return m.setStatus(fmt.Sprintf("%q is not a page number", value), true)
	}
	return m.goToPage(n)
}

func (m Model) handleTablePageLoaded(msg TablePageLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.popular.pager.Complete(msg.Req, msg.Result, msg.Err) {
		return m, nil
	}
	if msg.Err != nil {
		return m, m.setStatus(domain.UserMessage(msg.Err)+" · r to retry", true)
	}
	m.rebuildTable()
	m.popular.table.GotoTop()
	return m, nil
}

// beginLoad claims the next page of an accumulating feed
func (m *Model) beginLoad(f feed) tea.Cmd {
	ctrl, list := m.feed(f)
	req, ok := ctrl.Begin()
	if !ok {
		return nil
	}
	list.SetLoading(true)
	return LoadPageCmd(f, ctrl, req)
}

// maybeLoadMore applies the infinite-scroll trigger after the viewport moved
func (m *Model) maybeLoadMore(f feed) tea.Cmd {
	ctrl, list := m.feed(f)
	distance := paging.DistanceFromBottom(list.Offset(), list.Visible(), list.Len())
	if !paging.ShouldLoad(distance, m.cfg.UI.ScrollThreshold, ctrl.State()) {
		return nil
	}
	return m.beginLoad(f)
}

func (m *Model) feed(f feed) (*paging.Controller, *components.ItemList) {
	if f == feedSearch {
		return m.search.ctrl, m.search.list
	}
	return m.popular.ctrl, m.popular.list
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	ctrl, list := m.feed(msg.Feed)
	if !ctrl.Complete(msg.Req, msg.Result, msg.Err) {
		return m, nil
	}

	st := ctrl.State()
	list.SetLoading(false)
	switch {
	case st.Err != nil:
		list.SetFooter(styles.ErrorStyle.Render(domain.UserMessage(st.Err) + " · r to retry"))
	case !st.HasMore:
		list.SetFooter(styles.DimStyle.Render("End of list"))
	default:
		list.SetFooter("")
	}

	if msg.Feed == feedSearch {
		m.rederive()
	} else {
		list.SetItems(st.Items)
	}

	if msg.Err != nil {
		return m, m.setStatus(domain.UserMessage(msg.Err), true)
	}
	return m, nil
}

// switchViewMode flips table and infinite. Entering the table is a fresh
// query context; entering infinite only loads when it has nothing yet.
func (m *Model) switchViewMode() tea.Cmd {
	p := m.popular
	if p.mode == config.ViewTable {
		p.mode = config.ViewInfinite
		if p.ctrl.Len() == 0 {
			return m.beginLoad(feedPopular)
		}
		return nil
	}

	p.mode = config.ViewTable
	p.pager.Reset()
	p.table.SetRows(nil)
	return m.goToPage(1)
}

func (m Model) handlePopularKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.popular

	if key.Matches(msg, Keys.ViewMode) {
		return m, m.switchViewMode()
	}

	if p.mode == config.ViewInfinite {
		switch {
		case key.Matches(msg, Keys.Refresh):
			if p.ctrl.State().Err == nil {
				p.ctrl.Reset()
				p.list.SetItems(nil)
				p.list.ScrollToTop()
			}
			return m, m.beginLoad(feedPopular)
		case p.list.HandleKey(msg):
			return m, m.maybeLoadMore(feedPopular)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.NextPage), key.Matches(msg, Keys.Right):
		req, ok := p.pager.Next()
		if !ok {
			return m, nil
		}
		p.lastPage = req.Page
		return m, LoadTablePageCmd(p.pager, req)
	case key.Matches(msg, Keys.PrevPage), key.Matches(msg, Keys.Left):
		req, ok := p.pager.Prev()
		if !ok {
			return m, nil
		}
		p.lastPage = req.Page
		return m, LoadTablePageCmd(p.pager, req)
	case key.Matches(msg, Keys.GoToPage):
		m.showInput(inputPage, "Go to page", "", fmt.Sprintf("1-%d", max(1, p.pager.State().TotalPages)))
		return m, nil
	case key.Matches(msg, Keys.Refresh):
		target := max(1, p.lastPage)
		p.pager.Reset()
		return m, m.goToPage(target)
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return m, cmd
}

func (m Model) renderPopular(height int) string {
	p := m.popular
	if p.mode == config.ViewInfinite {
		st := p.ctrl.State()
		p.list.SetTitle(fmt.Sprintf("Popular · %d titles", len(st.Items)))
		return p.list.View()
	}

	width, _ := m.columnWidths()
	st := p.pager.State()

	var status string
	switch {
	case st.Loading:
		status = styles.DimStyle.Render(components.SpinnerFrames[m.SpinnerFrame%len(components.SpinnerFrames)] + " Loading page...")
	case st.Err != nil:
		status = styles.ErrorStyle.Render(domain.UserMessage(st.Err) + " · r to retry")
	case st.Page > 0:
		status = styles.HelpKeyStyle.Render("‹ p") +
			styles.SubtitleStyle.Render(fmt.Sprintf("  Page %d of %d  ", st.Page, st.TotalPages)) +
			styles.HelpKeyStyle.Render("n ›")
	}

	body := p.table.View()
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(body + "\n" + status)
}
