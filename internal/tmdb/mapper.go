package tmdb

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// Image sizes used by the front-end
const (
	PosterSize   = "w500"
	BackdropSize = "original"
	TableSize    = "w342"
)

const untitled = "Untitled"

// MapItem converts an API result to a CatalogItem, deciding movie vs show once
func MapItem(r ResultItem) domain.CatalogItem {
	item := domain.CatalogItem{
		ID:               r.ID,
		Kind:             domain.KindMovie,
		Title:            r.Title,
		Overview:         r.Overview,
		PosterRef:        deref(r.PosterPath),
		BackdropRef:      deref(r.BackdropPath),
		Rating:           r.VoteAverage,
		ReleaseDate:      r.ReleaseDate,
		GenreIDs:         r.GenreIDs,
		Popularity:       r.Popularity,
		OriginalLanguage: r.OriginalLanguage,
	}

	if r.MediaType == "tv" || (r.Title == "" && r.Name != "") {
		item.Kind = domain.KindShow
		item.Title = r.Name
		if item.ReleaseDate == "" {
			item.ReleaseDate = r.FirstAirDate
		}
	}

	if strings.TrimSpace(item.Title) == "" {
		item.Title = untitled
	}
	return item
}

// MapDetail converts a single-title response, flattening genres to ids
func MapDetail(d MovieDetail) domain.CatalogItem {
	item := MapItem(d.ResultItem)
	if len(item.GenreIDs) == 0 {
		for _, g := range d.Genres {
			item.GenreIDs = append(item.GenreIDs, g.ID)
		}
	}
	return item
}

// MapList converts a list envelope to a PagedResult
func MapList(resp ListResponse) domain.PagedResult {
	items := make([]domain.CatalogItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, MapItem(r))
	}
	return domain.PagedResult{
		Items:      items,
		Page:       resp.Page,
		TotalPages: resp.TotalPages,
	}
}

// MapGenres converts the genre list body
func MapGenres(resp GenreListResponse) []domain.Genre {
	genres := make([]domain.Genre, 0, len(resp.Genres))
	for _, g := range resp.Genres {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return genres
}

// ImageURL builds an image URL for a poster/backdrop reference.
// Returns "" when the item has no image.
func ImageURL(baseURL, size, ref string) string {
	if ref == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + size + ref
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
