package tmdb

// ListResponse is the envelope of every paged list endpoint
type ListResponse struct {
	Page         int          `json:"page"`
	Results      []ResultItem `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// ResultItem is a movie or TV entry. Movies carry Title/ReleaseDate,
// shows carry Name/FirstAirDate.
type ResultItem struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	MediaType        string  `json:"media_type"`
}

// MovieDetail is the body of /movie/{id}. Genres arrive as objects
// instead of genre_ids.
type MovieDetail struct {
	ResultItem
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// GenreListResponse is the body of /genre/movie/list
type GenreListResponse struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// ErrorResponse is returned with non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
