package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/filter"
	"github.com/mmcdole/marquee/internal/paging"
	"github.com/spf13/cobra"
)

func categoryNames() string {
	var names []string
	for _, c := range domain.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func newBrowseCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "browse <category>",
		Short: "Print one page of a catalog list",
		Long:  "Print one page of a catalog list. Categories: " + categoryNames() + ".",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			category := domain.Category(args[0])
			if !category.Valid() {
				return fmt.Errorf("unknown category %q (want one of: %s)", args[0], categoryNames())
			}
			cred, err := a.credential()
			if err != nil {
				return err
			}

			pager := paging.NewPager(func(ctx context.Context, n int) (domain.PagedResult, error) {
				return a.client.FetchPage(ctx, category, cred, n)
			}, a.logger)
			defer pager.Close()

			req, _ := pager.GoToPage(page)
			err = withSpinner("Loading "+category.Label()+"...", func() error {
				result, err := pager.Fetch(cmd.Context(), req)
				pager.Complete(req, result, err)
				return err
			})
			if err != nil {
				return friendly(err)
			}

			st := pager.State()
			itemTable{
				items:     st.Items,
				favorited: a.wishlist.IsFavorited,
				caption:   fmt.Sprintf("%s · page %d of %d", category.Label(), st.Page, st.TotalPages),
			}.render(cmd.OutOrStdout())
			return nil
		}),
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		pages   int
		sortKey string
		st      = filter.DefaultState()
	)

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search titles and narrow the results",
		Long: `Search titles by name. Without a query the popular list is used.
Results from every loaded page are de-duplicated, filtered and sorted locally.`,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			key, err := filter.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			st.Sort = key

			cred, err := a.credential()
			if err != nil {
				return err
			}

			query := strings.TrimSpace(strings.Join(args, " "))
			ctrl := paging.NewController(func(ctx context.Context, n int) (domain.PagedResult, error) {
				if query == "" {
					return a.client.FetchPage(ctx, domain.CategoryPopular, cred, n)
				}
				return a.client.Search(ctx, cred, query, n)
			}, a.logger)
			defer ctrl.Close()

			var genres []domain.Genre
			err = withSpinner("Searching...", func() error {
				for i := 0; i < pages && ctrl.State().HasMore; i++ {
					if err := ctrl.LoadNextPage(cmd.Context()); err != nil {
						return err
					}
				}
				// Genre names are decoration; a failure only drops the column
				if g, err := a.client.Genres(cmd.Context(), cred); err == nil {
					genres = g
				}
				return nil
			})
			if err != nil {
				return friendly(err)
			}

			loaded := ctrl.State()
			items := filter.NewEngine(a.cfg.TMDB.Language).Derive(loaded.Items, st)

			itemTable{
				items:     items,
				genres:    genres,
				favorited: a.wishlist.IsFavorited,
				caption: fmt.Sprintf("%d of %d loaded · %d of %d pages · sorted by %s",
					len(items), len(loaded.Items), loaded.Page-1, loaded.TotalPages, st.Sort.Label()),
			}.render(cmd.OutOrStdout())
			return nil
		}),
	}

	f := cmd.Flags()
	f.IntVar(&pages, "pages", 1, "number of result pages to load")
	f.IntVar(&st.GenreID, "genre", filter.AllGenres, "keep titles with this genre id (see `marquee genres`)")
	f.Float64Var(&st.MinRating, "min-rating", 0, "keep titles rated at least this")
	f.StringVar(&st.Language, "lang", filter.AllLanguages, "keep titles with this original language")
	f.StringVar(&st.Query, "match", "", "fuzzy title match applied to the loaded results")
	f.StringVar(&sortKey, "sort", filter.SortPopularity.String(),
		"popularity.desc, vote_average.desc, release_date.desc or title.asc")
	return cmd
}

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List catalog genres",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			cred, err := a.credential()
			if err != nil {
				return err
			}
			genres, err := a.client.Genres(cmd.Context(), cred)
			if err != nil {
				return friendly(err)
			}
			renderGenres(cmd.OutOrStdout(), genres)
			return nil
		}),
	}
}
