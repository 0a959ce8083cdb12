// Package filter derives the displayed ordering of a result list from the
// user's filter choices. It never mutates its input.
package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllGenres and AllLanguages disable the respective filter
const (
	AllGenres    = 0
	AllLanguages = "all"
)

// State holds the filter bar selections
type State struct {
	GenreID   int     // AllGenres or a genre id
	MinRating float64 // 0 disables
	Language  string  // AllLanguages (or "") or an ISO 639-1 code
	Sort      SortKey
	Query     string // optional fuzzy title match, "" disables
}

// DefaultState returns the reset filter bar
func DefaultState() State {
	return State{
		GenreID:  AllGenres,
		Language: AllLanguages,
		Sort:     SortPopularity,
	}
}

// IsDefault reports whether no filter is narrowing the list
func (s State) IsDefault() bool {
	return s.GenreID == AllGenres && s.MinRating <= 0 && languageAll(s.Language) && s.Query == ""
}

func languageAll(lang string) bool {
	return lang == "" || strings.EqualFold(lang, AllLanguages)
}

// Engine applies a State with a locale for title collation.
// Engines are cheap; a collator is built per Derive call.
type Engine struct {
	tag language.Tag
}

// NewEngine creates an Engine collating titles for locale (BCP 47, e.g.
// "ko-KR"). An unparseable locale falls back to the root collation.
func NewEngine(locale string) Engine {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return Engine{tag: tag}
}

// Derive returns the filtered, stably sorted view of items
func Derive(items []domain.CatalogItem, st State) []domain.CatalogItem {
	return Engine{tag: language.Und}.Derive(items, st)
}

// Derive filters in a fixed order (title query, genre, rating, language)
// and then stable-sorts by st.Sort
func (e Engine) Derive(items []domain.CatalogItem, st State) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))

	query := strings.TrimSpace(st.Query)
	for _, item := range items {
		if query != "" && !fuzzy.MatchNormalizedFold(query, item.Title) {
			continue
		}
		if st.GenreID != AllGenres && !item.HasGenre(st.GenreID) {
			continue
		}
		if st.MinRating > 0 && item.Rating < st.MinRating {
			continue
		}
		if !languageAll(st.Language) && !strings.EqualFold(item.OriginalLanguage, st.Language) {
			continue
		}
		out = append(out, item)
	}

	slices.SortStableFunc(out, e.compare(st.Sort))
	return out
}

func (e Engine) compare(key SortKey) func(a, b domain.CatalogItem) int {
	switch key {
	case SortRating:
		return func(a, b domain.CatalogItem) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortReleaseDate:
		// Lexicographic: correct for YYYY-MM-DD, and "" sorts last
		return func(a, b domain.CatalogItem) int { return strings.Compare(b.ReleaseDate, a.ReleaseDate) }
	case SortTitle:
		col := collate.New(e.tag)
		return func(a, b domain.CatalogItem) int { return col.CompareString(a.Title, b.Title) }
	default:
		return func(a, b domain.CatalogItem) int { return cmp.Compare(b.Popularity, a.Popularity) }
	}
}
