package main

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/auth"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
	"github.com/mmcdole/marquee/internal/wishlist"
	"github.com/spf13/cobra"
)

// app holds everything a command needs. It is built per invocation and
// closed when the command returns.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	kv       *store.Store
	client   *tmdb.Client
	session  *service.SessionService
	home     *service.HomeService
	wishlist *wishlist.Store
}

func openApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	kv, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	client := tmdb.NewClient(tmdb.Options{
		BaseURL:           cfg.TMDB.BaseURL,
		Language:          cfg.TMDB.Language,
		Timeout:           cfg.TMDB.Timeout,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
	}, logger)

	creds := auth.NewCredentialStore(kv, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		client:   client,
		session:  service.NewSessionService(creds, client, logger),
		home:     service.NewHomeService(client, logger),
		wishlist: wishlist.Open(kv, logger),
	}, nil
}

func (a *app) Close() {
	a.session.Close()
	if err := a.kv.Close(); err != nil {
		a.logger.Error("failed to close storage", "error", err)
	}
}

// credential returns the signed-in API key or a hint to sign in
func (a *app) credential() (string, error) {
	cred, err := a.session.Credential()
	if err != nil {
		return "", fmt.Errorf("%w (run `marquee login`)", domain.ErrNotAuthenticated)
	}
	return cred, nil
}

// withApp adapts a command body that needs the wired services
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		a.logger.Info("running command", "command", cmd.CommandPath(), "version", Version)
		return run(cmd, args, a)
	}
}
