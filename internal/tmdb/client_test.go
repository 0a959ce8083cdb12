package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, Language: "en-US"}, nil)
}

func TestFetchPage_QueryAndMapping(t *testing.T) {
	var gotPath, gotKey, gotLang, gotPage string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotLang = r.URL.Query().Get("language")
		gotPage = r.URL.Query().Get("page")
		fmt.Fprint(w, `{"page":2,"total_pages":7,"total_results":140,"results":[
			{"id":1,"title":"Movie","release_date":"2024-01-02","vote_average":7.5,"popularity":10,"genre_ids":[28],"original_language":"en","poster_path":"/p.jpg","backdrop_path":null},
			{"id":2,"name":"Show","first_air_date":"2020-05-05"}]}`)
	})

	res, err := client.FetchPage(context.Background(), domain.CategoryTopRated, "key-1", 2)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	if gotPath != "/movie/top_rated" || gotKey != "key-1" || gotLang != "en-US" || gotPage != "2" {
		t.Fatalf("unexpected request path=%q key=%q lang=%q page=%q", gotPath, gotKey, gotLang, gotPage)
	}
	if res.Page != 2 || res.TotalPages != 7 || len(res.Items) != 2 {
		t.Fatalf("unexpected result %+v", res)
	}

	movie := res.Items[0]
	if movie.Kind != domain.KindMovie || movie.Title != "Movie" || movie.PosterRef != "/p.jpg" || movie.BackdropRef != "" {
		t.Fatalf("unexpected movie %+v", movie)
	}
	show := res.Items[1]
	if show.Kind != domain.KindShow || show.Title != "Show" || show.ReleaseDate != "2020-05-05" {
		t.Fatalf("unexpected show %+v", show)
	}
}

func TestSearch_FixedParams(t *testing.T) {
	var adult, query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		adult = r.URL.Query().Get("include_adult")
		query = r.URL.Query().Get("query")
		fmt.Fprint(w, `{"page":1,"total_pages":1,"results":[]}`)
	})

	if _, err := client.Search(context.Background(), "k", "alien", 1); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if adult != "false" || query != "alien" {
		t.Fatalf("expected include_adult=false query=alien, got %q %q", adult, query)
	}
}

func TestSearch_EmptyQuerySkipsNetwork(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	res, err := client.Search(context.Background(), "k", "   ", 1)
	if err != nil || len(res.Items) != 0 {
		t.Fatalf("expected empty result, got %+v %v", res, err)
	}
}

func TestGenres(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`)
	})

	genres, err := client.Genres(context.Background(), "k")
	if err != nil {
		t.Fatalf("Genres: %v", err)
	}
	if len(genres) != 2 || genres[1].Name != "Comedy" {
		t.Fatalf("unexpected genres %+v", genres)
	}
}

func TestMovie_FlattensGenres(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":603,"title":"The Matrix","release_date":"1999-03-30","vote_average":8.2,
			"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`)
	})

	item, err := client.Movie(context.Background(), "k", 603)
	if err != nil {
		t.Fatalf("Movie: %v", err)
	}
	if item.ID != 603 || item.Title != "The Matrix" || !item.HasGenre(878) {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestMovie_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	})

	if _, err := client.Movie(context.Background(), "k", 1); !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestFetchPage_Non2xxIsRequestFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchPage(context.Background(), domain.CategoryPopular, "k", 1)
	if !errors.Is(err, domain.ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestValidateKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"status_code":7,"status_message":"Invalid API key"}`)
			return
		}
		fmt.Fprint(w, `{"page":1,"total_pages":1,"results":[]}`)
	})

	if err := client.ValidateKey(context.Background(), "good"); err != nil {
		t.Fatalf("expected good key to validate, got %v", err)
	}
	if err := client.ValidateKey(context.Background(), "bad"); !errors.Is(err, domain.ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
}

func TestFetchPage_UnknownCategory(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:0"}, nil)
	if _, err := client.FetchPage(context.Background(), domain.Category("trending"), "k", 1); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestImageURL(t *testing.T) {
	if got := ImageURL(DefaultImageBaseURL, PosterSize, ""); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
	if got := ImageURL(DefaultImageBaseURL+"/", PosterSize, "/a.jpg"); got != "https://image.tmdb.org/t/p/w500/a.jpg" {
		t.Fatalf("unexpected url %q", got)
	}
}
