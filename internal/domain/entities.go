package domain

// Kind distinguishes movie and TV results. The catalog API reports movies with
// "title"/"release_date" and shows with "name"/"first_air_date"; the mapper
// resolves that once so nothing downstream inspects raw fields.
type Kind int

const (
	KindMovie Kind = iota
	KindShow
)

// String returns the type identifier: "movie" or "show"
func (k Kind) String() string {
	if k == KindShow {
		return "show"
	}
	return "movie"
}

// CatalogItem is one entry of a catalog list. Identity is ID.
type CatalogItem struct {
	ID               int     `json:"id"`
	Kind             Kind    `json:"kind"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterRef        string  `json:"poster_path"`
	BackdropRef      string  `json:"backdrop_path"`
	Rating           float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date"` // YYYY-MM-DD, may be empty
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
}

// Year returns the release year prefix of ReleaseDate, or "" if unknown
func (c CatalogItem) Year() string {
	if len(c.ReleaseDate) < 4 {
		return ""
	}
	return c.ReleaseDate[:4]
}

// HasGenre reports whether the item is tagged with the given genre
func (c CatalogItem) HasGenre(id int) bool {
	for _, g := range c.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// PagedResult is one page of a catalog list as returned by the API
type PagedResult struct {
	Items      []CatalogItem
	Page       int
	TotalPages int
}

// Genre is a catalog genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category identifies a catalog list endpoint
type Category string

const (
	CategoryNowPlaying Category = "now_playing"
	CategoryPopular    Category = "popular"
	CategoryTopRated   Category = "top_rated"
	CategoryUpcoming   Category = "upcoming"
)

// Categories returns the browsable list categories in display order
func Categories() []Category {
	return []Category{CategoryNowPlaying, CategoryPopular, CategoryTopRated, CategoryUpcoming}
}

// Label returns the display name for the category
func (c Category) Label() string {
	switch c {
	case CategoryNowPlaying:
		return "Now Playing"
	case CategoryPopular:
		return "Popular"
	case CategoryTopRated:
		return "Top Rated"
	case CategoryUpcoming:
		return "Upcoming"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Account is a locally registered user. Secret is the user's TMDB API key and
// is stored as entered.
type Account struct {
	Email  string `json:"email"`
	Secret string `json:"password"`
}

// Session is the currently signed-in account
type Session struct {
	Account Account
	Persist bool // survive a restart
}
