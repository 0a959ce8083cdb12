package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/filter"
	"github.com/mmcdole/marquee/internal/paging"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// filterBarHeight is the filter bar plus its result count line
const filterBarHeight = 2

// searchView accumulates popular titles, or title search results when a
// term is set, and shows them through the filter bar
type searchView struct {
	term atomic.Value // string; read by fetches off the event loop

	ctrl    *paging.Controller
	state   filter.State
	derived []domain.CatalogItem
	list    *components.ItemList
}

func newSearchView(session *service.SessionService, catalog domain.CatalogRepository, logger *slog.Logger) *searchView {
	sv := &searchView{
		state: filter.DefaultState(),
		list:  components.NewItemList("Search"),
	}
	sv.term.Store("")
	sv.list.SetEmptyText("No titles match these filters")

	popular := categoryFetch(session, catalog, domain.CategoryPopular)
	sv.ctrl = paging.NewController(func(ctx context.Context, page int) (domain.PagedResult, error) {
		term := sv.Term()
		if term == "" {
			return popular(ctx, page)
		}
		credential, err := session.Credential()
		if err != nil {
			return domain.PagedResult{}, err
		}
		return catalog.Search(ctx, credential, term, page)
	}, logger)
	return sv
}

// Term returns the remote search term; "" browses popular titles
func (sv *searchView) Term() string {
	return sv.term.Load().(string)
}

// setSearchTerm changes the query context: reset, then load its first page
func (m *Model) setSearchTerm(term string) tea.Cmd {
	if term == m.search.Term() {
		return nil
	}
	m.search.term.Store(term)
	m.search.ctrl.Reset()
	m.search.list.ScrollToTop()
	m.rederive()
	return m.beginLoad(feedSearch)
}

// rederive recomputes the shown list from the accumulated items
func (m *Model) rederive() {
	sv := m.search
	sv.derived = m.Engine.Derive(sv.ctrl.State().Items, sv.state)
	sv.list.SetItems(sv.derived)
}

// genreOptions returns the genre picker cycle, "all" first
func (m Model) genreOptions() []int {
	opts := []int{filter.AllGenres}
	for _, g := range filter.DisplayGenres(m.genres.all) {
		opts = append(opts, g.ID)
	}
	return opts
}

func (m Model) genreLabel(id int) string {
	if id == filter.AllGenres {
		return "All"
	}
	for _, g := range m.genres.all {
		if g.ID == id {
			return g.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}

// next returns the element after cur in opts, wrapping; unknown cur gives opts[0]
func next[T comparable](opts []T, cur T) T {
	for i, o := range opts {
		if o == cur {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sv := m.search

	switch {
	case key.Matches(msg, Keys.Query):
		m.showInput(inputSearchTerm, "Search titles", sv.Term(), "empty browses popular")
		return m, nil
	case key.Matches(msg, Keys.Narrow):
		m.showInput(inputNarrow, "Find in results", sv.state.Query, "fuzzy title match")
		return m, nil
	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(sv.state.Sort)
		return m, nil
	case key.Matches(msg, Keys.Genre):
		sv.state.GenreID = next(m.genreOptions(), sv.state.GenreID)
	case key.Matches(msg, Keys.MinRating):
		sv.state.MinRating = next(filter.RatingSteps, sv.state.MinRating)
	case key.Matches(msg, Keys.Language):
		lang := sv.state.Language
		if lang == "" {
			lang = filter.AllLanguages
		}
		sv.state.Language = next(filter.Languages, lang)
	case key.Matches(msg, Keys.ResetFilter):
		sv.state = filter.DefaultState()
	case key.Matches(msg, Keys.Escape):
		if sv.state.Query == "" {
			return m, nil
		}
		sv.state.Query = ""
	case key.Matches(msg, Keys.Refresh):
		if sv.ctrl.State().Err == nil {
			sv.ctrl.Reset()
			sv.list.ScrollToTop()
			m.rederive()
		}
		return m, m.beginLoad(feedSearch)
	default:
		if sv.list.HandleKey(msg) {
			return m, m.maybeLoadMore(feedSearch)
		}
		return m, nil
	}

	// every filter change derives the list again
	sv.list.ScrollToTop()
	m.rederive()
	return m, nil
}

func (m Model) renderSearch() string {
	sv := m.search
	width, _ := m.columnWidths()

	field := func(k, label, value string, active bool) string {
		v := styles.SubtitleStyle.Render(value)
		if active {
			v = styles.AccentStyle.Render(value)
		}
		return styles.HelpKeyStyle.Render(k) + styles.DimStyle.Render(" "+label+" ") + v
	}

	term := sv.Term()
	termLabel := "popular"
	if term != "" {
		termLabel = fmt.Sprintf("%q", term)
	}

	rating := "any"
	if sv.state.MinRating > 0 {
		rating = fmt.Sprintf("≥ %.0f", sv.state.MinRating)
	}
	lang := sv.state.Language
	if lang == "" {
		lang = filter.AllLanguages
	}

	parts := []string{
		field("/", "search", termLabel, term != ""),
		field("g", "genre", m.genreLabel(sv.state.GenreID), sv.state.GenreID != filter.AllGenres),
		field("m", "rating", rating, sv.state.MinRating > 0),
		field("o", "lang", strings.ToUpper(lang), lang != filter.AllLanguages),
		field("s", "sort", sv.state.Sort.Label(), sv.state.Sort != filter.SortPopularity),
	}
	if sv.state.Query != "" {
		parts = append(parts, field("f", "find", sv.state.Query, true))
	}
	bar := lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "  "))

	count := styles.DimStyle.Render(fmt.Sprintf("showing %d of %d loaded", len(sv.derived), sv.ctrl.Len()))
	if !sv.state.IsDefault() {
		count += styles.DimStyle.Render(" · ") + styles.HelpKeyStyle.Render("x") + styles.DimStyle.Render(" reset")
	}

	sv.list.SetTitle("Search · " + termLabel)
	return lipgloss.JoinVertical(lipgloss.Left, bar, count, sv.list.View())
}
