package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/mmcdole/marquee/internal/auth"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
	"golang.org/x/term"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                        \r"

var stdinReader = bufio.NewReader(os.Stdin)

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptEmail asks for an email address, validating as the user types
func promptEmail() (string, error) {
	prompt := promptui.Prompt{
		Label: "Email",
		Validate: func(input string) error {
			return auth.ValidateEmail(strings.TrimSpace(input))
		},
	}
	email, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(email), nil
}

// readSecret reads an API key without echo when stdin is a terminal
func readSecret(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)

	if stdinIsTerminal() {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr) // Add newline after hidden input
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question. Declining is not an error.
func confirm(label string) (bool, error) {
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// withSpinner runs fn while animating a spinner on stderr
func withSpinner(label string, fn func() error) error {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return fn()
	}

	done := make(chan error, 1)
	go func() { done <- fn() }()

	frame := 0
	fmt.Fprintf(os.Stderr, "\r%s %s", components.SpinnerFrames[frame], label)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			fmt.Fprint(os.Stderr, clearSpinnerLine)
			return err
		case <-ticker.C:
			frame++
			fmt.Fprintf(os.Stderr, "\r%s %s", components.SpinnerFrames[frame%len(components.SpinnerFrames)], label)
		}
	}
}

// friendly turns domain errors into the message the user should see
func friendly(err error) error {
	if err == nil {
		return nil
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) || errors.Is(err, domain.ErrInvalidAPIKey) ||
		errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrAlreadyExists) {
		return errors.New(domain.UserMessage(err))
	}
	return err
}
