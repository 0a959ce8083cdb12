package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/auth"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/paging"
	"github.com/mmcdole/marquee/internal/service"
)

// requestTimeout bounds every command that talks to the catalog API
const requestTimeout = 30 * time.Second

// Command factories for async operations

// TickCmd schedules the next spinner frame
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status line after d
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// LoadHomeCmd loads the four home rows
func LoadHomeCmd(svc *service.HomeService, credential string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		home, err := svc.Load(ctx, credential)
		return HomeLoadedMsg{Home: home, Err: err}
	}
}

// LoadGenresCmd loads the genre catalog
func LoadGenresCmd(repo domain.CatalogRepository, credential string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		genres, err := repo.Genres(ctx, credential)
		return GenresLoadedMsg{Genres: genres, Err: err}
	}
}

// LoadPageCmd runs the fetch for a request claimed with Controller.Begin.
// The result is applied in Update via Controller.Complete.
func LoadPageCmd(f feed, ctrl *paging.Controller, req paging.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := ctrl.Fetch(ctx, req)
		return PageLoadedMsg{Feed: f, Req: req, Result: result, Err: err}
	}
}

// LoadTablePageCmd runs the fetch for a request claimed with Pager.GoToPage
func LoadTablePageCmd(pager *paging.Pager, req paging.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := pager.Fetch(ctx, req)
		return TablePageLoadedMsg{Req: req, Result: result, Err: err}
	}
}

// LoginCmd signs in; the key is checked against the API first
func LoginCmd(svc *service.SessionService, form auth.LoginForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		account, err := svc.Login(ctx, form)
		return LoginResultMsg{Account: account, Err: err}
	}
}

// RegisterCmd creates an account
func RegisterCmd(svc *service.SessionService, form auth.RegisterForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := svc.Register(ctx, form)
		return RegisterResultMsg{Email: form.Email, Err: err}
	}
}

// LogoutCmd ends the session
func LogoutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		return LoggedOutMsg{Err: svc.Logout()}
	}
}
