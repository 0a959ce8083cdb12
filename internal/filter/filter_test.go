package filter

import (
	"slices"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
)

func sample() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: 1, Title: "Zodiac", Rating: 7.7, Popularity: 50, ReleaseDate: "2007-03-02", GenreIDs: []int{80, 18}, OriginalLanguage: "en"},
		{ID: 2, Title: "Parasite", Rating: 8.5, Popularity: 80, ReleaseDate: "2019-05-30", GenreIDs: []int{35, 53}, OriginalLanguage: "ko"},
		{ID: 3, Title: "alien", Rating: 8.1, Popularity: 50, ReleaseDate: "", GenreIDs: []int{27, 878}, OriginalLanguage: "EN"},
		{ID: 4, Title: "Amélie", Rating: 7.9, Popularity: 30, ReleaseDate: "2001-04-25", GenreIDs: []int{35, 10749}, OriginalLanguage: "fr"},
		{ID: 5, Title: "Oldboy", Rating: 8.3, Popularity: 50, ReleaseDate: "2003-11-21", GenreIDs: []int{28, 53}, OriginalLanguage: "ko"},
	}
}

func ids(items []domain.CatalogItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestDerive_PopularityIsStable(t *testing.T) {
	got := ids(Derive(sample(), DefaultState()))
	// 1, 3 and 5 tie at 50 and keep input order
	want := []int{2, 1, 3, 5, 4}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDerive_Filters(t *testing.T) {
	tests := []struct {
		name string
		st   State
		want []int
	}{
		{"genre", State{GenreID: 35, Language: AllLanguages}, []int{2, 4}},
		{"min rating", State{MinRating: 8.1, Language: AllLanguages}, []int{2, 3, 5}},
		{"language case-insensitive", State{Language: "en"}, []int{1, 3}},
		{"language empty is all", State{Language: ""}, []int{2, 1, 3, 5, 4}},
		{"combined", State{GenreID: 53, MinRating: 8.4, Language: "ko"}, []int{2}},
		{"query", State{Query: "LIEN"}, []int{3}},
		{"query normalizes accents", State{Query: "amelie"}, []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Derive(sample(), tt.st)); !slices.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerive_SortKeys(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []int
	}{
		{SortRating, []int{2, 5, 3, 4, 1}},
		{SortReleaseDate, []int{2, 1, 5, 4, 3}}, // missing date last
		{SortTitle, []int{3, 4, 5, 2, 1}},       // collation ignores case
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			st := DefaultState()
			st.Sort = tt.key
			if got := ids(Derive(sample(), st)); !slices.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerive_IdempotentAndNonMutating(t *testing.T) {
	in := sample()
	before := ids(in)
	st := State{Sort: SortRating, Language: AllLanguages}

	first := Derive(in, st)
	second := Derive(in, st)

	if !slices.Equal(ids(first), ids(second)) {
		t.Fatalf("derive not idempotent: %v vs %v", ids(first), ids(second))
	}
	if !slices.Equal(ids(in), before) {
		t.Fatalf("input mutated: %v", ids(in))
	}
}

func TestEngine_LocaleCollation(t *testing.T) {
	items := []domain.CatalogItem{{ID: 1, Title: "나비"}, {ID: 2, Title: "가방"}, {ID: 3, Title: "다리"}}
	st := DefaultState()
	st.Sort = SortTitle

	if got := ids(NewEngine("ko-KR").Derive(items, st)); !slices.Equal(got, []int{2, 1, 3}) {
		t.Fatalf("got %v", got)
	}
	if got := ids(NewEngine("not a locale!").Derive(items, st)); len(got) != 3 {
		t.Fatalf("fallback engine dropped items: %v", got)
	}
}

func TestParseSortKey(t *testing.T) {
	for _, k := range SortKeys() {
		got, err := ParseSortKey(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseSortKey(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseSortKey("bogus"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestDisplayGenres(t *testing.T) {
	all := []domain.Genre{{ID: 18, Name: "Drama"}, {ID: 28, Name: "Action"}, {ID: 99, Name: "Documentary"}, {ID: 35, Name: "Comedy"}}
	got := DisplayGenres(all)
	if len(got) != 2 || got[0].ID != 28 || got[1].ID != 35 {
		t.Fatalf("unexpected genres %+v", got)
	}

	names := GenreNames(sample()[1], all)
	if !slices.Equal(names, []string{"Comedy"}) {
		t.Fatalf("unexpected names %v", names)
	}
}
