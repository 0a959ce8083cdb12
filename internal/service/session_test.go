package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmcdole/marquee/internal/auth"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

// fakeValidator accepts keys in good and counts calls
type fakeValidator struct {
	good  map[string]bool
	calls int
}

func (f *fakeValidator) ValidateKey(_ context.Context, key string) error {
	f.calls++
	if f.good[key] {
		return nil
	}
	return domain.ErrInvalidAPIKey
}

func newSession(t *testing.T, kv *store.Store) (*SessionService, *fakeValidator) {
	t.Helper()
	v := &fakeValidator{good: map[string]bool{"k1": true, "k2": true}}
	return NewSessionService(auth.NewCredentialStore(kv, nil), v, nil), v
}

func register(t *testing.T, s *SessionService, email, key string) {
	t.Helper()
	err := s.Register(context.Background(), auth.RegisterForm{Email: email, Secret: key, Confirm: key, Agree: true})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
}

func TestLogin_Flow(t *testing.T) {
	kv, _ := store.Open("")
	s, _ := newSession(t, kv)
	register(t, s, "a@x.com", "k1")

	if s.IsLoggedIn() {
		t.Fatal("register must not sign in")
	}

	account, err := s.Login(context.Background(), auth.LoginForm{Email: "a@x.com", Secret: "k1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if account.Email != "a@x.com" {
		t.Fatalf("unexpected account %+v", account)
	}
	key, err := s.Credential()
	if err != nil || key != "k1" {
		t.Fatalf("expected credential k1, got %q %v", key, err)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := s.Credential(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestLogin_ValidKeyButWrongAccount(t *testing.T) {
	kv, _ := store.Open("")
	s, _ := newSession(t, kv)
	register(t, s, "a@x.com", "k1")

	_, err := s.Login(context.Background(), auth.LoginForm{Email: "a@x.com", Secret: "k2"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_RejectedKey(t *testing.T) {
	kv, _ := store.Open("")
	s, _ := newSession(t, kv)

	_, err := s.Login(context.Background(), auth.LoginForm{Email: "a@x.com", Secret: "nope"})
	if !errors.Is(err, domain.ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
}

func TestValidationNeverReachesNetwork(t *testing.T) {
	kv, _ := store.Open("")
	s, v := newSession(t, kv)

	_, err := s.Login(context.Background(), auth.LoginForm{Email: "bad", Secret: "k1"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	err = s.Register(context.Background(), auth.RegisterForm{Email: "a@x.com", Secret: "k1", Confirm: "k2", Agree: true})
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if v.calls != 0 {
		t.Fatalf("expected no key validation calls, got %d", v.calls)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	kv, _ := store.Open("")
	s, _ := newSession(t, kv)
	register(t, s, "a@x.com", "k1")

	err := s.Register(context.Background(), auth.RegisterForm{Email: "a@x.com", Secret: "k2", Confirm: "k2", Agree: true})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestSession_KeepLoginAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	for _, keep := range []bool{true, false} {
		kv, err := store.Open(path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		s, _ := newSession(t, kv)
		if keep {
			register(t, s, "a@x.com", "k1")
		}
		if _, err := s.Login(context.Background(), auth.LoginForm{Email: "a@x.com", Secret: "k1", KeepLogin: keep}); err != nil {
			t.Fatalf("login keep=%v: %v", keep, err)
		}
		s.Close()
		kv.Close()

		kv, _ = store.Open(path)
		restarted, _ := newSession(t, kv)
		if restarted.IsLoggedIn() != keep {
			t.Fatalf("keep=%v: expected logged in = %v after restart", keep, keep)
		}
		kv.Close()
	}
}
