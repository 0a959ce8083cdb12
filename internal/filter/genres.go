package filter

import "github.com/mmcdole/marquee/internal/domain"

// displayGenreIDs is the curated subset offered in the genre picker
var displayGenreIDs = map[int]bool{
	28:    true, // Action
	12:    true, // Adventure
	16:    true, // Animation
	35:    true, // Comedy
	80:    true, // Crime
	10751: true, // Family
	14:    true, // Fantasy
	27:    true, // Horror
	10749: true, // Romance
	878:   true, // Science Fiction
}

// DisplayGenres keeps the curated genres, preserving API order
func DisplayGenres(all []domain.Genre) []domain.Genre {
	out := make([]domain.Genre, 0, len(displayGenreIDs))
	for _, g := range all {
		if displayGenreIDs[g.ID] {
			out = append(out, g)
		}
	}
	return out
}

// GenreNames resolves an item's genre ids against a genre list
func GenreNames(item domain.CatalogItem, genres []domain.Genre) []string {
	var names []string
	for _, g := range genres {
		if item.HasGenre(g.ID) {
			names = append(names, g.Name)
		}
	}
	return names
}

// Languages offered by the language picker
var Languages = []string{AllLanguages, "ko", "en", "ja", "zh", "fr"}

// RatingSteps offered by the minimum-rating picker
var RatingSteps = []float64{0, 5, 6, 7, 8, 9}
