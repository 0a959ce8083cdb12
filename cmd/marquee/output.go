package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/filter"
)

// itemTable describes how a list of catalog items is printed
type itemTable struct {
	items     []domain.CatalogItem
	genres    []domain.Genre // optional; adds a Genres column
	favorited func(id int) bool
	caption   string
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func (it itemTable) render(w io.Writer) {
	if len(it.items) == 0 {
		fmt.Fprintln(w, "No titles.")
		return
	}

	t := newTable(w)
	header := table.Row{"", "ID", "Title", "Year", "Rating", "Lang"}
	if it.genres != nil {
		header = append(header, "Genres")
	}
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, WidthMax: 40},
		{Number: 5, Align: text.AlignRight},
		{Number: 7, WidthMax: 30},
	})

	for _, item := range it.items {
		mark := ""
		if it.favorited != nil && it.favorited(item.ID) {
			mark = "♥"
		}
		row := table.Row{
			mark,
			item.ID,
			item.Title,
			item.Year(),
			fmt.Sprintf("%.1f", item.Rating),
			item.OriginalLanguage,
		}
		if it.genres != nil {
			row = append(row, strings.Join(filter.GenreNames(item, it.genres), ", "))
		}
		t.AppendRow(row)
	}

	if it.caption != "" {
		t.SetCaption(it.caption)
	}
	t.Render()
}

func renderGenres(w io.Writer, genres []domain.Genre) {
	curated := make(map[int]bool)
	for _, g := range filter.DisplayGenres(genres) {
		curated[g.ID] = true
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Filter bar"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignCenter},
	})
	for _, g := range genres {
		mark := ""
		if curated[g.ID] {
			mark = "✓"
		}
		t.AppendRow(table.Row{g.ID, g.Name, mark})
	}
	t.Render()
}
