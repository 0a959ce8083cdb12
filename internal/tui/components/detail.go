package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/filter"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Detail shows everything known about one catalog item
type Detail struct {
	item      *domain.CatalogItem
	favorited bool
	genres    []domain.Genre
	imageBase string

	width  int
	height int
}

// NewDetail creates an empty detail pane resolving images against imageBase
func NewDetail(imageBase string) Detail {
	return Detail{imageBase: imageBase}
}

// SetItem sets the item to show; nil clears the pane
func (d *Detail) SetItem(item *domain.CatalogItem, favorited bool) {
	d.item = item
	d.favorited = favorited
}

// SetGenres sets the genre catalog used to name genre ids
func (d *Detail) SetGenres(genres []domain.Genre) {
	d.genres = genres
}

// SetSize sets the outer size including the border
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the pane
func (d Detail) View() string {
	style := styles.InactiveBorder
	frameW, frameH := style.GetFrameSize()
	inner := max(10, d.width-frameW-2)

	return style.
		Width(max(0, d.width-frameW)).
		Height(max(0, d.height-frameH)).
		Padding(0, 1).
		Render(d.renderContent(inner))
}

func (d Detail) renderContent(width int) string {
	if d.item == nil {
		return styles.DimStyle.Render("Nothing selected")
	}
	it := d.item

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(styles.Truncate(it.Title, width)))

	meta := []string{styles.DimBadgeStyle.Render(it.Kind.String())}
	if it.ReleaseDate != "" {
		meta = append(meta, styles.SubtitleStyle.Render(it.ReleaseDate))
	}
	meta = append(meta, styles.RenderRating(it.Rating))
	if it.OriginalLanguage != "" {
		meta = append(meta, styles.DimStyle.Render(strings.ToUpper(it.OriginalLanguage)))
	}
	if d.favorited {
		meta = append(meta, styles.BadgeStyle.Render(styles.FavoriteChar+" wishlist"))
	}
	lines = append(lines, strings.Join(meta, " "), "")

	if names := filter.GenreNames(*it, d.genres); len(names) > 0 {
		lines = append(lines, styles.SubtitleStyle.Render(strings.Join(names, " · ")), "")
	}

	overview := it.Overview
	if overview == "" {
		overview = "No overview available."
	}
	lines = append(lines, lipgloss.NewStyle().Width(width).Render(overview), "")

	lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("Popularity %.1f", it.Popularity)))
	if it.PosterRef != "" {
		lines = append(lines, styles.DimStyle.Render("Poster   ")+styles.Truncate(tmdb.ImageURL(d.imageBase, tmdb.PosterSize, it.PosterRef), width-9))
	}
	if it.BackdropRef != "" {
		lines = append(lines, styles.DimStyle.Render("Backdrop ")+styles.Truncate(tmdb.ImageURL(d.imageBase, tmdb.BackdropSize, it.BackdropRef), width-9))
	}

	return strings.Join(lines, "\n")
}
