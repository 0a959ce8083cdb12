package main

import (
	"fmt"
	"strconv"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/spf13/cobra"
)

func newWishlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wishlist",
		Aliases: []string{"wl"},
		Short:   "Manage favorited titles",
	}
	cmd.AddCommand(
		newWishlistListCmd(),
		newWishlistAddCmd(),
		newWishlistRemoveCmd(),
		newWishlistClearCmd(),
	)
	return cmd
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid title id %q", arg)
	}
	return id, nil
}

func newWishlistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter]",
		Short: "Print the wishlist, optionally fuzzy-filtered by title",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			matches := a.wishlist.Filter(query)
			items := make([]domain.CatalogItem, len(matches))
			for i, m := range matches {
				items[i] = m.Item
			}

			caption := fmt.Sprintf("%d saved", a.wishlist.Len())
			if query != "" {
				caption = fmt.Sprintf("%d of %d match %q", len(items), a.wishlist.Len(), query)
			}
			itemTable{items: items, caption: caption}.render(cmd.OutOrStdout())
			return nil
		}),
	}
}

func newWishlistAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>",
		Short: "Favorite a title by id",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.wishlist.IsFavorited(id) {
				fmt.Fprintf(out, "%d is already in the wishlist.\n", id)
				return nil
			}

			cred, err := a.credential()
			if err != nil {
				return err
			}

			var item domain.CatalogItem
			err = withSpinner("Looking up title...", func() error {
				item, err = a.client.Movie(cmd.Context(), cred, id)
				return err
			})
			if err != nil {
				return friendly(err)
			}

			if _, err := a.wishlist.Toggle(item); err != nil {
				return fmt.Errorf("failed to save wishlist: %w", err)
			}
			fmt.Fprintf(out, "♥ Added %s (%s)\n", item.Title, item.Year())
			return nil
		}),
	}
}

func newWishlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a title from the wishlist",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			for _, item := range a.wishlist.Items() {
				if item.ID != id {
					continue
				}
				if _, err := a.wishlist.Toggle(item); err != nil {
					return fmt.Errorf("failed to save wishlist: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", item.Title)
				return nil
			}
			return fmt.Errorf("%d is not in the wishlist", id)
		}),
	}
}

func newWishlistClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every title from the wishlist",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			n := a.wishlist.Len()
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Wishlist is already empty.")
				return nil
			}
			if !yes {
				ok, err := confirm(fmt.Sprintf("Remove all %d titles", n))
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			if err := a.wishlist.Clear(); err != nil {
				return fmt.Errorf("failed to save wishlist: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d titles.\n", n)
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}
