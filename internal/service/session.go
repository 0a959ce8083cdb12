package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/marquee/internal/auth"
	"github.com/mmcdole/marquee/internal/domain"
)

// SessionService manages sign-in state. It is created once at process start
// and shared by reference; the signed-in account is held in memory and only
// written to storage when the user asked to stay signed in.
type SessionService struct {
	creds     *auth.CredentialStore
	validator domain.KeyValidator
	logger    *slog.Logger

	mu      sync.RWMutex
	current *domain.Session
}

// NewSessionService creates a SessionService and recovers a persisted session
func NewSessionService(creds *auth.CredentialStore, validator domain.KeyValidator, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SessionService{creds: creds, validator: validator, logger: logger}

	if account := creds.RecoverSession(); account != nil {
		s.current = &domain.Session{Account: *account, Persist: true}
		logger.Info("session recovered", "email", account.Email)
	}
	return s
}

// Current returns the signed-in account
func (s *SessionService) Current() (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Account{}, false
	}
	return s.current.Account, true
}

// IsLoggedIn reports whether an account is signed in
func (s *SessionService) IsLoggedIn() bool {
	_, ok := s.Current()
	return ok
}

// Credential returns the API key of the signed-in account
func (s *SessionService) Credential() (string, error) {
	account, ok := s.Current()
	if !ok {
		return "", domain.ErrNotAuthenticated
	}
	return account.Secret, nil
}

// Login validates the form, checks the key with the API, matches it against
// the stored accounts, and starts the session
func (s *SessionService) Login(ctx context.Context, form auth.LoginForm) (domain.Account, error) {
	if err := form.Validate(); err != nil {
		return domain.Account{}, err
	}

	if err := s.validator.ValidateKey(ctx, form.Secret); err != nil {
		s.logger.Warn("key validation failed", "email", form.Email, "error", err)
		return domain.Account{}, err
	}

	account, err := s.creds.Authenticate(form.Email, form.Secret)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.creds.PersistSession(&account, form.KeepLogin); err != nil {
		return domain.Account{}, err
	}

	s.mu.Lock()
	s.current = &domain.Session{Account: account, Persist: form.KeepLogin}
	s.mu.Unlock()

	s.logger.Info("signed in", "email", account.Email, "keep", form.KeepLogin)
	return account, nil
}

// Register validates the form, checks the key with the API and stores the
// account. It does not sign in.
func (s *SessionService) Register(ctx context.Context, form auth.RegisterForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	if err := s.validator.ValidateKey(ctx, form.Secret); err != nil {
		s.logger.Warn("key validation failed", "email", form.Email, "error", err)
		return err
	}

	return s.creds.Register(form.Email, form.Secret)
}

// Logout ends the session and clears anything persisted for it
func (s *SessionService) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.creds.PersistSession(nil, false); err != nil {
		return err
	}
	s.logger.Info("signed out")
	return nil
}

// Close drops the in-memory session. A session without keep is gone for good.
func (s *SessionService) Close() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
