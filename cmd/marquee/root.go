package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var route string

	root := &cobra.Command{
		Use:   "marquee",
		Short: "Browse the TMDB movie catalog from the terminal",
		Long: `Marquee is a terminal front-end for the TMDB catalog.
Run it without a command to open the interactive browser.
Sign in with your TMDB v3 API key as the password.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return runTUI(a, tui.ParseRoute(route))
		}),
	}
	root.Flags().StringVar(&route, "route", "/", "screen to open first (/, /popular, /search, /wishlist)")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newBrowseCmd(),
		newSearchCmd(),
		newGenresCmd(),
		newWishlistCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func runTUI(a *app, start tui.Route) error {
	model := tui.NewModel(a.cfg, a.session, a.home, a.client, a.wishlist, start, a.logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI", "route", start)

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marquee %s\n", Version)
		},
	}
}
