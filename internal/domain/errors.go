package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrInvalidCredentials indicates no stored account matches the identifier and secret
	ErrInvalidCredentials = errors.New("invalid email or API key")

	// ErrAlreadyExists indicates an account with the identifier is already registered
	ErrAlreadyExists = errors.New("account already exists")

	// ErrRequestFailed indicates a catalog API call failed (network or non-2xx)
	ErrRequestFailed = errors.New("catalog request failed")

	// ErrInvalidAPIKey indicates the catalog API rejected the key
	ErrInvalidAPIKey = errors.New("API key was rejected")

	// ErrNotAuthenticated indicates an operation needs a signed-in session
	ErrNotAuthenticated = errors.New("not signed in")
)

// ValidationError is a form input problem detected before any network call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UserMessage converts an error into text suitable for the status line
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrInvalidAPIKey):
		return "The API key is not valid. Use the v3 key issued by TMDB."
	case errors.Is(err, ErrInvalidCredentials):
		return "Email or API key is incorrect."
	case errors.Is(err, ErrAlreadyExists):
		return "That email is already registered."
	case errors.Is(err, ErrNotAuthenticated):
		return "Please sign in first."
	case errors.Is(err, ErrRequestFailed):
		return "Could not load movies. Please try again."
	default:
		return err.Error()
	}
}
