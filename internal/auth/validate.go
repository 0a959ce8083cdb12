package auth

import (
	"regexp"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginForm is the sign-in form input
type LoginForm struct {
	Email     string
	Secret    string
	KeepLogin bool
}

// RegisterForm is the sign-up form input
type RegisterForm struct {
	Email   string
	Secret  string
	Confirm string
	Agree   bool
}

// Validate checks the sign-in form
func (f LoginForm) Validate() error {
	if err := ValidateEmail(f.Email); err != nil {
		return err
	}
	if strings.TrimSpace(f.Secret) == "" {
		return domain.NewValidationError("password", "Enter your TMDB API key as the password.")
	}
	return nil
}

// Validate checks the sign-up form. Everything here is local; the key itself
// is checked against the API only after the form is valid.
func (f RegisterForm) Validate() error {
	if err := ValidateEmail(f.Email); err != nil {
		return err
	}
	if strings.TrimSpace(f.Secret) == "" {
		return domain.NewValidationError("password", "Enter your TMDB API key as the password.")
	}
	if f.Secret != f.Confirm {
		return domain.NewValidationError("confirm", "Passwords do not match.")
	}
	if !f.Agree {
		return domain.NewValidationError("agree", "You must accept the terms.")
	}
	return nil
}

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.NewValidationError("email", "Email is required.")
	}
	if !emailRegex.MatchString(email) {
		return domain.NewValidationError("email", "Email format is not valid.")
	}
	return nil
}
