package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/filter"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/mmcdole/marquee/internal/wishlist"
)

// ApplicationState represents the current overlay state
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
	StateConfirmClear
)

// inputPurpose says what a submitted InputModal value is for
type inputPurpose int

const (
	inputSearchTerm inputPurpose = iota
	inputNarrow
	inputPage
	inputWishlistFilter
)

// Layout constants
const (
	// Header line plus footer line
	ChromeHeight = 2

	DetailPercent  = 40
	MinDetailWidth = 80 // terminals narrower than this never show details
)

// statusTTL is how long a status message stays up
const statusTTL = 3 * time.Second

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Route Route
	from  Route // protected route to return to after sign-in

	// Services
	Session  *service.SessionService
	HomeSvc  *service.HomeService
	Catalog  domain.CatalogRepository
	Wishlist *wishlist.Store
	Engine   filter.Engine

	cfg    *config.Config
	logger *slog.Logger

	// Route state
	home    *homeView
	popular *popularView
	search  *searchView
	wish    *wishlistView
	genres  *genreCache

	// UI Components
	Form         components.SignInForm
	Detail       components.Detail
	SortModal    components.SortModal
	InputModal   components.InputModal
	inputPurpose inputPurpose

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ShowDetail   bool
}

// genreCache holds the genre catalog for the session
type genreCache struct {
	all     []domain.Genre
	loaded  bool
	loading bool
}

// NewModel creates the application model. The first screen is start when
// signed in and the sign-in screen otherwise.
func NewModel(
	cfg *config.Config,
	session *service.SessionService,
	homeSvc *service.HomeService,
	catalog domain.CatalogRepository,
	wish *wishlist.Store,
	start Route,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := Model{
		State:      StateBrowsing,
		Session:    session,
		HomeSvc:    homeSvc,
		Catalog:    catalog,
		Wishlist:   wish,
		Engine:     filter.NewEngine(cfg.TMDB.Language),
		cfg:        cfg,
		logger:     logger,
		home:       &homeView{},
		genres:     &genreCache{},
		Form:       components.NewSignInForm(),
		Detail:     components.NewDetail(cfg.TMDB.ImageBaseURL),
		SortModal:  components.NewSortModal(),
		InputModal: components.NewInputModal(),
		ShowDetail: true,
	}
	m.popular = newPopularView(cfg.UI.DefaultView, session, catalog, logger)
	m.search = newSearchView(session, catalog, logger)
	m.wish = newWishlistView()

	favorited := wish.IsFavorited
	m.popular.list.SetFavorited(favorited)
	m.search.list.SetFavorited(favorited)
	m.wish.list.SetFavorited(favorited)

	m.Route = start
	if start.Protected() && !session.IsLoggedIn() {
		m.from = start
		m.Route = RouteSignIn
	}
	return m
}

// Init starts the spinner and the first route's loads
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(100*time.Millisecond),
		m.enter(m.Route),
	)
}

// Close tears down paging state; late responses are ignored
func (m Model) Close() {
	m.popular.ctrl.Close()
	m.popular.pager.Close()
	m.search.ctrl.Close()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.popular.list.SetSpinnerFrame(m.SpinnerFrame)
		m.search.list.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(100 * time.Millisecond)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case HomeLoadedMsg:
		m.home.loading = false
		if msg.Err != nil {
			m.home.err = msg.Err
			m.logger.Error("home load failed", "error", msg.Err)
			return m, m.setStatus(domain.UserMessage(msg.Err)+" · r to retry", true)
		}
		home := msg.Home
		m.home.data = &home
		m.home.loaded = true
		m.home.err = nil
		m.home.row, m.home.col = 0, 0
		return m, nil

	case GenresLoadedMsg:
		m.genres.loading = false
		if msg.Err != nil {
			m.logger.Warn("genre load failed", "error", msg.Err)
			return m, nil
		}
		m.genres.all = msg.Genres
		m.genres.loaded = true
		m.Detail.SetGenres(msg.Genres)
		return m, nil

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)

	case TablePageLoadedMsg:
		return m.handleTablePageLoaded(msg)

	case LoginResultMsg:
		return m.handleLoginResult(msg)

	case RegisterResultMsg:
		return m.handleRegisterResult(msg)

	case LoggedOutMsg:
		m.State = StateBrowsing
		if msg.Err != nil {
			m.logger.Error("sign out failed", "error", msg.Err)
		}
		m.resetSessionState()
		m.leave(m.Route)
		m.Route = RouteSignIn
		m.from = ""
		return m, m.setStatus("Signed out", false)
	}

	// Forward cursor blinks and the like to an open text input
	if m.InputModal.IsVisible() {
		var cmd tea.Cmd
		m.InputModal, cmd, _ = m.InputModal.Update(msg)
		return m, cmd
	}
	if m.Route == RouteSignIn {
		var cmd tea.Cmd
		m.Form, cmd, _ = m.Form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setStatus shows a temporary message
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTTL)
}

// resetSessionState drops everything loaded with the previous credential
func (m *Model) resetSessionState() {
	m.home = &homeView{}
	m.genres = &genreCache{}
	m.Detail.SetGenres(nil)
	m.Form.Reset()
}

// handleKeyMsg routes a key press: overlays first, then the sign-in form,
// then global keys, then the active route
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		m.Close()
		return m, tea.Quit
	}

	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			return m, LogoutCmd(m.Session)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmClear:
		m.State = StateBrowsing
		if key.Matches(msg, Keys.Confirm) {
			if err := m.Wishlist.Clear(); err != nil {
				m.logger.Error("wishlist clear failed", "error", err)
				return m, m.setStatus("Could not clear wishlist", true)
			}
			m.refreshWishlist()
			return m, m.setStatus("Wishlist cleared", false)
		}
		return m, nil
	}

	if m.InputModal.IsVisible() {
		return m.handleInputModal(msg)
	}

	if m.SortModal.IsVisible() {
		if _, sel := m.SortModal.HandleKey(msg.String()); sel != nil {
			m.search.state.Sort = *sel
			m.rederive()
		}
		return m, nil
	}

	if m.Route == RouteSignIn {
		return m.handleSignInKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Logout):
		m.State = StateConfirmLogout
		return m, nil

	case key.Matches(msg, Keys.Home):
		return m, m.navigate(RouteHome)
	case key.Matches(msg, Keys.Popular):
		return m, m.navigate(RoutePopular)
	case key.Matches(msg, Keys.Search):
		return m, m.navigate(RouteSearch)
	case key.Matches(msg, Keys.Wishlist):
		return m, m.navigate(RouteWishlist)
	case key.Matches(msg, Keys.NextTab):
		return m, m.navigate(tabOffset(m.Route, 1))
	case key.Matches(msg, Keys.PrevTab):
		return m, m.navigate(tabOffset(m.Route, -1))

	case key.Matches(msg, Keys.Detail):
		m.ShowDetail = !m.ShowDetail
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		if item, ok := m.selectedItem(); ok {
			return m, m.toggleFavorite(item)
		}
		return m, nil
	}

	switch m.Route {
	case RouteHome:
		return m.handleHomeKey(msg)
	case RoutePopular:
		return m.handlePopularKey(msg)
	case RouteSearch:
		return m.handleSearchKey(msg)
	case RouteWishlist:
		return m.handleWishlistKey(msg)
	}
	return m, nil
}

// handleInputModal feeds the open prompt and applies a submitted value
func (m Model) handleInputModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.InputModal, cmd, submitted = m.InputModal.Update(msg)
	if !submitted {
		return m, cmd
	}

	value := strings.TrimSpace(m.InputModal.Value())
	switch m.inputPurpose {
	case inputSearchTerm:
		return m, m.setSearchTerm(value)
	case inputNarrow:
		m.search.state.Query = value
		m.rederive()
	case inputPage:
		return m, m.goToPageInput(value)
	case inputWishlistFilter:
		m.wish.query = value
		m.refreshWishlist()
	}
	return m, nil
}

// showInput opens the prompt for purpose
func (m *Model) showInput(purpose inputPurpose, title, value, placeholder string) {
	m.inputPurpose = purpose
	m.InputModal.Show(title, value, placeholder)
}

// selectedItem returns the item under the cursor of the active route
func (m Model) selectedItem() (domain.CatalogItem, bool) {
	switch m.Route {
	case RouteHome:
		return m.home.selected()
	case RoutePopular:
		return m.popular.selected()
	case RouteSearch:
		return m.search.list.Selected()
	case RouteWishlist:
		return m.wish.list.Selected()
	}
	return domain.CatalogItem{}, false
}

// toggleFavorite adds or removes item from the wishlist right away
func (m *Model) toggleFavorite(item domain.CatalogItem) tea.Cmd {
	added, err := m.Wishlist.Toggle(item)
	if err != nil {
		m.logger.Error("wishlist toggle failed", "id", item.ID, "error", err)
		return m.setStatus("Could not update wishlist", true)
	}
	switch {
	case m.Route == RouteWishlist:
		m.refreshWishlist()
	case m.Route == RoutePopular && m.popular.mode == config.ViewTable:
		m.rebuildTable()
	}
	if added {
		return m.setStatus("Added "+item.Title+" to wishlist", false)
	}
	return m.setStatus("Removed "+item.Title+" from wishlist", false)
}

// loadGenres fetches the genre catalog once per session
func (m *Model) loadGenres() tea.Cmd {
	if m.genres.loaded || m.genres.loading {
		return nil
	}
	credential, err := m.Session.Credential()
	if err != nil {
		return nil
	}
	m.genres.loading = true
	return LoadGenresCmd(m.Catalog, credential)
}

// updateLayout resizes components to the window
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	listWidth, detailWidth := m.columnWidths()
	contentHeight := m.Height - ChromeHeight

	m.popular.list.SetSize(listWidth, contentHeight)
	m.popular.table.SetWidth(listWidth)
	m.popular.table.SetHeight(max(3, contentHeight-2))
	m.popular.table.SetColumns(tableColumns(listWidth))
	m.search.list.SetSize(listWidth, contentHeight-filterBarHeight)
	m.wish.list.SetSize(listWidth, contentHeight)
	m.Detail.SetSize(detailWidth, contentHeight)
}

// columnWidths splits the content width between list and detail pane
func (m Model) columnWidths() (list, detail int) {
	if !m.ShowDetail || m.Width < MinDetailWidth {
		return m.Width, 0
	}
	detail = m.Width * DetailPercent / 100
	return m.Width - detail, detail
}

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	contentHeight := m.Height - ChromeHeight
	var body string

	switch m.Route {
	case RouteSignIn:
		body = lipgloss.Place(m.Width, contentHeight, lipgloss.Center, lipgloss.Center, m.Form.View())
	default:
		body = m.renderRoute(contentHeight)
	}

	switch {
	case m.State == StateConfirmLogout:
		body = m.renderConfirm(contentHeight, "Sign out?", "Your wishlist stays on this device.")
	case m.State == StateConfirmClear:
		body = m.renderConfirm(contentHeight, "Clear wishlist?", fmt.Sprintf("This removes all %d saved titles.", m.Wishlist.Len()))
	case m.InputModal.IsVisible():
		body = lipgloss.Place(m.Width, contentHeight, lipgloss.Center, lipgloss.Center, m.InputModal.View())
	case m.SortModal.IsVisible():
		body = lipgloss.Place(m.Width, contentHeight, lipgloss.Center, lipgloss.Center, m.SortModal.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(body),
		m.renderFooter(),
	)
}

// renderRoute renders a protected route with the optional detail pane
func (m Model) renderRoute(height int) string {
	var main string
	switch m.Route {
	case RouteHome:
		main = m.renderHome(height)
	case RoutePopular:
		main = m.renderPopular(height)
	case RouteSearch:
		main = m.renderSearch()
	case RouteWishlist:
		main = m.wish.list.View()
	}

	_, detailWidth := m.columnWidths()
	if detailWidth == 0 {
		return main
	}

	detail := m.Detail
	if item, ok := m.selectedItem(); ok {
		detail.SetItem(&item, m.Wishlist.IsFavorited(item.ID))
	} else {
		detail.SetItem(nil, false)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, detail.View())
}

// renderHeader renders the brand, the route tabs and the signed-in user
func (m Model) renderHeader() string {
	left := styles.BrandStyle.Render("MARQUEE")
	for i, r := range tabRoutes {
		label := fmt.Sprintf("%d %s", i+1, r.Label())
		if r == RouteWishlist {
			label = fmt.Sprintf("%s (%d)", label, m.Wishlist.Len())
		}
		if r == m.Route {
			left += styles.ActiveTabStyle.Render(label)
		} else {
			left += styles.TabStyle.Render(label)
		}
	}

	right := styles.DimStyle.Render("not signed in")
	if account, ok := m.Session.Current(); ok {
		right = styles.SubtitleStyle.Render(account.Email)
	}

	gap := max(1, m.Width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders the status line with route hints
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	case m.isLoading():
		left = styles.AccentStyle.Render(components.SpinnerFrames[m.SpinnerFrame%len(components.SpinnerFrames)]) +
			" " + styles.DimStyle.Render("Loading...")
	}

	center := m.routeHints()
	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(0, m.Width-leftWidth-rightWidth)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// isLoading reports whether the active route waits on the network
func (m Model) isLoading() bool {
	switch m.Route {
	case RouteHome:
		return m.home.loading
	case RoutePopular:
		if m.popular.mode == config.ViewTable {
			return m.popular.pager.State().Loading
		}
		return m.popular.ctrl.State().Loading
	case RouteSearch:
		return m.search.ctrl.State().Loading
	case RouteSignIn:
		return m.Form.Busy()
	}
	return false
}

// routeHints returns the context keys for the footer
func (m Model) routeHints() string {
	hint := func(k, desc string) string {
		return styles.HelpKeyStyle.Render(k) + styles.HelpDescStyle.Render(" "+desc)
	}

	switch m.Route {
	case RoutePopular:
		if m.popular.mode == config.ViewTable {
			return strings.Join([]string{hint("p/n", "page"), hint(":", "go to"), hint("v", "infinite")}, "  ")
		}
		hints := []string{hint("v", "table")}
		if m.popular.showTopButton(m.cfg.UI.TopButtonRows) {
			hints = append(hints, hint("t", "↑ top"))
		}
		return strings.Join(hints, "  ")
	case RouteSearch:
		return strings.Join([]string{hint("/", "search"), hint("g m o s", "filter"), hint("x", "reset")}, "  ")
	case RouteWishlist:
		return strings.Join([]string{hint("/", "filter"), hint("w", "remove"), hint("X", "clear")}, "  ")
	case RouteSignIn:
		return hint("tab", "next field")
	}
	return hint("w", "wishlist")
}

// renderConfirm renders a yes/no modal
func (m Model) renderConfirm(height int, title, body string) string {
	content := styles.ModalTitleStyle.Render(title) + "\n" +
		styles.SubtitleStyle.Render(body) + "\n\n" +
		styles.HelpKeyStyle.Render("[Y]") + " Yes      " + styles.HelpKeyStyle.Render("[N]") + " No"
	return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center, styles.ModalStyle.Render(content))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      CATALOG
  1-4 / tab  Switch tab            w/space  Toggle wishlist
  j/k        Up/down               enter    Toggle details
  h/l        Left/right (home)     r        Retry / refresh
  t/Home     Back to top           v        Table / infinite
  G/End      Bottom                p/n      Previous / next page
  Ctrl+u/d   Half page             :        Go to page

SEARCH                          OTHER
  /          Search titles         X        Clear wishlist
  f          Find in results       L        Sign out
  g          Genre                 q        Quit
  m          Minimum rating        ?        This help
  o          Original language     esc      Close / cancel
  s          Sort
  x          Reset filters

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
