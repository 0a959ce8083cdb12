package filter

import "fmt"

// SortKey selects the ordering of the derived list
type SortKey int

const (
	SortPopularity SortKey = iota
	SortRating
	SortReleaseDate
	SortTitle
)

// SortKeys returns every sort option in menu order
func SortKeys() []SortKey {
	return []SortKey{SortPopularity, SortRating, SortReleaseDate, SortTitle}
}

// String returns the API-style identifier ("popularity.desc", ...)
func (k SortKey) String() string {
	switch k {
	case SortRating:
		return "vote_average.desc"
	case SortReleaseDate:
		return "release_date.desc"
	case SortTitle:
		return "title.asc"
	default:
		return "popularity.desc"
	}
}

// Label returns the display name for the sort key
func (k SortKey) Label() string {
	switch k {
	case SortRating:
		return "Rating"
	case SortReleaseDate:
		return "Release Date"
	case SortTitle:
		return "Title"
	default:
		return "Popularity"
	}
}

// ParseSortKey accepts the identifiers produced by String
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys() {
		if k.String() == s {
			return k, nil
		}
	}
	return SortPopularity, fmt.Errorf("unknown sort key: %q", s)
}
