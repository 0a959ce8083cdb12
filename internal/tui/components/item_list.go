package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Spinner frames for loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for item lists
const (
	// Border adds 1 cell on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Title line plus the "↑ more" and "↓ more" lines
	ChromeLines = 3
)

// ItemList is a bordered, scrollable list of catalog items
type ItemList struct {
	title      string
	items      []domain.CatalogItem
	highlights [][]int // matched title byte indexes per item, optional

	cursor     int
	offset     int
	maxVisible int

	width   int
	height  int
	focused bool

	loading      bool
	spinnerFrame int
	emptyText    string
	footer       string

	favorited func(id int) bool
}

// NewItemList creates an empty list
func NewItemList(title string) *ItemList {
	return &ItemList{title: title, emptyText: "No items", focused: true}
}

// SetTitle sets the header line
func (l *ItemList) SetTitle(title string) { l.title = title }

// SetEmptyText sets what an empty list shows
func (l *ItemList) SetEmptyText(text string) { l.emptyText = text }

// SetFooter sets a status line rendered under the items
func (l *ItemList) SetFooter(text string) { l.footer = text }

// SetFavorited sets the predicate used to mark wishlist entries
func (l *ItemList) SetFavorited(fn func(id int) bool) { l.favorited = fn }

// SetLoading toggles the spinner line
func (l *ItemList) SetLoading(loading bool) { l.loading = loading }

// SetSpinnerFrame advances the spinner
func (l *ItemList) SetSpinnerFrame(frame int) { l.spinnerFrame = frame }

// SetFocused sets the border highlight
func (l *ItemList) SetFocused(focused bool) { l.focused = focused }

// SetItems replaces the items. The cursor stays where it was when the
// list grows, so appended pages do not move the selection.
func (l *ItemList) SetItems(items []domain.CatalogItem) {
	l.items = items
	l.highlights = nil
	l.clampCursor()
}

// SetHighlights sets matched title indexes; len must equal the item count
func (l *ItemList) SetHighlights(h [][]int) {
	if len(h) == len(l.items) {
		l.highlights = h
	}
}

// SetSize sets the outer size including the border
func (l *ItemList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.maxVisible = max(1, height-BorderHeight-ChromeLines)
	l.ensureVisible()
}

// Len returns the item count
func (l *ItemList) Len() int { return len(l.items) }

// Cursor returns the selected index
func (l *ItemList) Cursor() int { return l.cursor }

// Offset returns the index of the first visible row
func (l *ItemList) Offset() int { return l.offset }

// Visible returns how many rows fit
func (l *ItemList) Visible() int { return l.maxVisible }

// Selected returns the item under the cursor
func (l *ItemList) Selected() (domain.CatalogItem, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return domain.CatalogItem{}, false
	}
	return l.items[l.cursor], true
}

// ScrollToTop moves the cursor to the first item
func (l *ItemList) ScrollToTop() {
	l.cursor = 0
	l.offset = 0
}

// HandleKey moves the cursor; it reports whether the key was consumed
func (l *ItemList) HandleKey(msg tea.KeyMsg) bool {
	count := len(l.items)
	if count == 0 {
		return false
	}

	switch {
	case key.Matches(msg, ListKeys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, ListKeys.Down):
		if l.cursor < count-1 {
			l.cursor++
		}
	case key.Matches(msg, ListKeys.Home):
		l.ScrollToTop()
		return true
	case key.Matches(msg, ListKeys.End):
		l.cursor = count - 1
	case key.Matches(msg, ListKeys.HalfDown):
		l.cursor = min(count-1, l.cursor+l.maxVisible/2)
	case key.Matches(msg, ListKeys.HalfUp):
		l.cursor = max(0, l.cursor-l.maxVisible/2)
	case key.Matches(msg, ListKeys.PageDown):
		l.cursor = min(count-1, l.cursor+l.maxVisible)
	case key.Matches(msg, ListKeys.PageUp):
		l.cursor = max(0, l.cursor-l.maxVisible)
	default:
		return false
	}
	l.ensureVisible()
	return true
}

func (l *ItemList) clampCursor() {
	if l.cursor >= len(l.items) {
		l.cursor = max(0, len(l.items)-1)
	}
	if l.offset > l.cursor {
		l.offset = l.cursor
	}
	l.ensureVisible()
}

func (l *ItemList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// View renders the list inside its border
func (l *ItemList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(0, l.width-frameW)).
		Height(max(0, l.height-frameH)).
		Render(l.renderContent())
}

func (l *ItemList) renderContent() string {
	itemWidth := max(10, l.width-BorderWidth)
	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	if len(l.items) == 0 {
		line := styles.DimStyle.Render(l.emptyText)
		if l.loading {
			line = styles.DimStyle.Render(SpinnerFrames[l.spinnerFrame%len(SpinnerFrames)] + " Loading...")
		}
		return titleLine + "\n \n" + line
	}

	end := min(len(l.items), l.offset+l.maxVisible)
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		var hl []int
		if l.highlights != nil {
			hl = l.highlights[i]
		}
		lines = append(lines, l.renderItem(l.items[i], hl, i == l.cursor, itemWidth))
	}

	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	footer := " "
	switch {
	case l.loading:
		footer = styles.DimStyle.Render(SpinnerFrames[l.spinnerFrame%len(SpinnerFrames)] + " Loading more...")
	case l.footer != "":
		footer = l.footer
	case end < len(l.items):
		footer = styles.DimStyle.Render("↓ more")
	}

	return titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (l *ItemList) renderItem(item domain.CatalogItem, matched []int, selected bool, width int) string {
	mark, markFg := styles.NotFavoriteChar, styles.DimGray
	if l.favorited != nil && l.favorited(item.ID) {
		mark, markFg = styles.FavoriteChar, styles.Marquee
	}

	rating := fmt.Sprintf("★ %.1f", item.Rating)
	ratingFg := styles.Gold

	title := item.Title
	if year := item.Year(); year != "" {
		title = fmt.Sprintf("%s (%s)", item.Title, year)
	}

	// mark + space, space + rating, 2 margins
	avail := max(5, width-2-lipgloss.Width(rating)-1-2)
	title = styles.Pad(styles.Truncate(title, avail), avail)

	parts := []styles.RowPart{{Text: mark + " ", Foreground: &markFg}}
	parts = append(parts, highlightParts(title, matched)...)
	parts = append(parts, styles.RowPart{Text: " " + rating, Foreground: &ratingFg})

	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits title into runs, coloring matched byte indexes
func highlightParts(title string, matched []int) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	accent := styles.Marquee
	var parts []styles.RowPart
	var run []rune
	runHit := false
	for i, r := range title {
		if len(run) > 0 && hit[i] != runHit {
			parts = append(parts, runPart(run, runHit, &accent))
			run = run[:0]
		}
		runHit = hit[i]
		run = append(run, r)
	}
	if len(run) > 0 {
		parts = append(parts, runPart(run, runHit, &accent))
	}
	return parts
}

func runPart(run []rune, hit bool, accent *lipgloss.Color) styles.RowPart {
	if hit {
		return styles.RowPart{Text: string(run), Foreground: accent}
	}
	return styles.RowPart{Text: string(run)}
}
