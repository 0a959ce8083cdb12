package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application key bindings. List movement lives in
// components.ListKeys.
type KeyMap struct {
	// Routes
	Home     key.Binding
	Popular  key.Binding
	Search   key.Binding
	Wishlist key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding

	// Actions
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	Escape     key.Binding
	Detail     key.Binding
	Favorite   key.Binding
	Refresh    key.Binding
	Logout     key.Binding
	ViewMode   key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	GoToPage   key.Binding
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding

	// Search filter bar
	Query       key.Binding
	Narrow      key.Binding
	Genre       key.Binding
	MinRating   key.Binding
	Language    key.Binding
	Sort        key.Binding
	ResetFilter key.Binding

	// Wishlist
	ClearAll key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Popular: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "popular"),
		),
		Search: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "search"),
		),
		Wishlist: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "wishlist"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous tab"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter", "toggle details"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("w", " "),
			key.WithHelp("w/space", "toggle wishlist"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry/refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "sign out"),
		),
		ViewMode: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "table/infinite"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "]"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "["),
			key.WithHelp("p", "previous page"),
		),
		GoToPage: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to page"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),

		Query: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search titles"),
		),
		Narrow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "find in results"),
		),
		Genre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "genre"),
		),
		MinRating: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "min rating"),
		),
		Language: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "original language"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		ResetFilter: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset filters"),
		),

		ClearAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear wishlist"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
