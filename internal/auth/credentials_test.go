package auth

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

func newMemoryStore(t *testing.T) *CredentialStore {
	t.Helper()
	kv, err := store.Open("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewCredentialStore(kv, nil)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newMemoryStore(t)

	if err := s.Register("a@x.com", "k1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := s.Register("a@x.com", "k2"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if _, err := s.Authenticate("a@x.com", "k1"); err != nil {
		t.Fatalf("expected k1 to authenticate, got %v", err)
	}
	if _, err := s.Authenticate("a@x.com", "k2"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for k2, got %v", err)
	}
	if got := len(s.Accounts()); got != 1 {
		t.Fatalf("expected 1 account, got %d", got)
	}
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	s := newMemoryStore(t)
	if _, err := s.Authenticate("nobody@x.com", "k"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_MalformedUsersValueIsEmpty(t *testing.T) {
	kv, _ := store.Open("")
	_ = kv.SetRaw(KeyUsers, []byte(`{"oops":`))
	s := NewCredentialStore(kv, nil)

	if err := s.Register("b@x.com", "k"); err != nil {
		t.Fatalf("register over malformed value: %v", err)
	}
	if _, err := s.Authenticate("b@x.com", "k"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
}

func TestPersistSession_WithoutKeepDoesNotSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	kv, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s := NewCredentialStore(kv, nil)
	user := domain.Account{Email: "a@x.com", Secret: "k1"}

	if err := s.PersistSession(&user, true); err != nil {
		t.Fatalf("persist keep: %v", err)
	}
	if err := s.PersistSession(&user, false); err != nil {
		t.Fatalf("persist no keep: %v", err)
	}
	kv.Close()

	kv, err = store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()

	if got := NewCredentialStore(kv, nil).RecoverSession(); got != nil {
		t.Fatalf("expected no session after restart, got %+v", got)
	}
}

func TestPersistSession_KeepSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	kv, _ := store.Open(path)
	user := domain.Account{Email: "a@x.com", Secret: "k1"}
	if err := NewCredentialStore(kv, nil).PersistSession(&user, true); err != nil {
		t.Fatalf("persist: %v", err)
	}
	kv.Close()

	kv, _ = store.Open(path)
	defer kv.Close()

	got := NewCredentialStore(kv, nil).RecoverSession()
	if got == nil || *got != user {
		t.Fatalf("expected %+v, got %+v", user, got)
	}
}

func TestRecoverSession_IgnoresStaleAccountWithoutMarker(t *testing.T) {
	kv, _ := store.Open("")
	_ = kv.Set(KeyCurrentUser, domain.Account{Email: "a@x.com", Secret: "k1"})

	if got := NewCredentialStore(kv, nil).RecoverSession(); got != nil {
		t.Fatalf("expected stale account to be ignored, got %+v", got)
	}
}

func TestPersistSession_LogoutClears(t *testing.T) {
	s := newMemoryStore(t)
	user := domain.Account{Email: "a@x.com", Secret: "k1"}

	_ = s.PersistSession(&user, true)
	if err := s.PersistSession(nil, true); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if got := s.RecoverSession(); got != nil {
		t.Fatalf("expected nil after logout, got %+v", got)
	}
}
