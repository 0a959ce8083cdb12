// Package auth keeps locally registered accounts and the persisted
// "keep me signed in" session in the key-value store.
//
// Secrets are TMDB API keys and are stored exactly as entered.
package auth

import (
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// Storage keys
const (
	KeyUsers       = "users"
	KeyCurrentUser = "current_user"
	KeyKeepLogin   = "keep_login"
)

// CredentialStore reads and writes accounts and the persisted session
type CredentialStore struct {
	kv     domain.KeyValueStore
	logger *slog.Logger
}

// NewCredentialStore creates a CredentialStore over kv
func NewCredentialStore(kv domain.KeyValueStore, logger *slog.Logger) *CredentialStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialStore{kv: kv, logger: logger}
}

// loadUsers returns the stored accounts; a missing or malformed value is empty
func (s *CredentialStore) loadUsers() []domain.Account {
	var users []domain.Account
	if !s.kv.Get(KeyUsers, &users) {
		return nil
	}
	return users
}

// Register appends a new account. The email must not already be registered.
func (s *CredentialStore) Register(email, secret string) error {
	users := s.loadUsers()
	for _, u := range users {
		if u.Email == email {
			return domain.ErrAlreadyExists
		}
	}

	users = append(users, domain.Account{Email: email, Secret: secret})
	if err := s.kv.Set(KeyUsers, users); err != nil {
		return err
	}

	s.logger.Info("account registered", "email", email, "accounts", len(users))
	return nil
}

// Authenticate returns the stored account matching email and secret exactly
func (s *CredentialStore) Authenticate(email, secret string) (domain.Account, error) {
	for _, u := range s.loadUsers() {
		if u.Email == email && u.Secret == secret {
			return u, nil
		}
	}
	return domain.Account{}, domain.ErrInvalidCredentials
}

// Accounts returns a copy of every registered account
func (s *CredentialStore) Accounts() []domain.Account {
	return s.loadUsers()
}

// PersistSession writes the account and the keep marker when account is
// non-nil and keep is set. Every other combination clears both, so the next
// start sees no session.
func (s *CredentialStore) PersistSession(account *domain.Account, keep bool) error {
	if account != nil && keep {
		if err := s.kv.Set(KeyCurrentUser, account); err != nil {
			return err
		}
		return s.kv.Set(KeyKeepLogin, "true")
	}

	if err := s.kv.Delete(KeyCurrentUser); err != nil {
		return err
	}
	return s.kv.Delete(KeyKeepLogin)
}

// RecoverSession returns the persisted account, or nil when the keep marker
// is absent. A leftover account value without the marker is ignored.
func (s *CredentialStore) RecoverSession() *domain.Account {
	var keep string
	if !s.kv.Get(KeyKeepLogin, &keep) || keep != "true" {
		return nil
	}

	var account domain.Account
	if !s.kv.Get(KeyCurrentUser, &account) || account.Email == "" {
		return nil
	}
	return &account
}
