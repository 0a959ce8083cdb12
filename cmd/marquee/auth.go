package main

import (
	"fmt"

	"github.com/mmcdole/marquee/internal/auth"
	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var form auth.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a local account backed by a TMDB API key",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			var err error
			if form.Email == "" {
				if form.Email, err = promptEmail(); err != nil {
					return err
				}
			}
			if form.Secret == "" {
				if form.Secret, err = readSecret("API key"); err != nil {
					return err
				}
				if form.Confirm, err = readSecret("Confirm API key"); err != nil {
					return err
				}
			} else {
				form.Confirm = form.Secret
			}
			if !form.Agree {
				if form.Agree, err = confirm("Accept the TMDB terms of use"); err != nil {
					return err
				}
			}

			// Local checks first so a typo never costs a request
			if err := form.Validate(); err != nil {
				return friendly(err)
			}

			err = withSpinner("Checking API key...", func() error {
				return a.session.Register(cmd.Context(), form)
			})
			if err != nil {
				return friendly(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Registered %s. Run `marquee login` to sign in.\n", form.Email)
			return nil
		}),
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Secret, "key", "", "TMDB v3 API key (prompted when omitted)")
	cmd.Flags().BoolVar(&form.Agree, "agree", false, "accept the TMDB terms of use")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var form auth.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a registered email and API key",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			var err error
			if form.Email == "" {
				if form.Email, err = promptEmail(); err != nil {
					return err
				}
			}
			if form.Secret == "" {
				if form.Secret, err = readSecret("API key"); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("keep") && stdinIsTerminal() {
				if form.KeepLogin, err = confirm("Stay signed in"); err != nil {
					return err
				}
			}

			if err := form.Validate(); err != nil {
				return friendly(err)
			}

			err = withSpinner("Signing in...", func() error {
				_, err := a.session.Login(cmd.Context(), form)
				return err
			})
			if err != nil {
				return friendly(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Signed in as %s\n", form.Email)
			if !form.KeepLogin {
				fmt.Fprintln(out, "  The session ends when this command exits; pass --keep to stay signed in.")
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Secret, "key", "", "TMDB v3 API key (prompted when omitted)")
	cmd.Flags().BoolVar(&form.KeepLogin, "keep", true, "stay signed in across runs")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		}),
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			account, ok := a.session.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), account.Email)
			return nil
		}),
	}
}
