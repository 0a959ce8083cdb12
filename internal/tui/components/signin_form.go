package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/auth"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// FormMode selects between signing in and creating an account
type FormMode int

const (
	ModeLogin FormMode = iota
	ModeRegister
)

// Form fields in focus order. Which ones are shown depends on the mode.
const (
	fieldEmail = iota
	fieldSecret
	fieldConfirm
	fieldToggle // keep-login in login mode, agreement in register mode
	fieldCount
)

// SignInForm is the login / register form
type SignInForm struct {
	mode   FormMode
	focus  int
	inputs [3]textinput.Model
	keep   bool
	agree  bool

	err  string
	busy bool
}

// NewSignInForm creates an empty form in login mode
func NewSignInForm() SignInForm {
	newInput := func(placeholder string, secret bool) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 128
		ti.Width = 40
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		if secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		return ti
	}

	f := SignInForm{
		inputs: [3]textinput.Model{
			newInput("you@example.com", false),
			newInput("TMDB API key", true),
			newInput("repeat API key", true),
		},
	}
	f.inputs[fieldEmail].Focus()
	return f
}

// Mode returns the current mode
func (f SignInForm) Mode() FormMode { return f.mode }

// SetMode switches mode, clearing confirmation state and the error line
func (f *SignInForm) SetMode(mode FormMode) {
	f.mode = mode
	f.inputs[fieldConfirm].SetValue("")
	f.agree = false
	f.err = ""
	f.setFocus(fieldEmail)
}

// SetError shows a message under the form
func (f *SignInForm) SetError(msg string) { f.err = msg }

// SetBusy disables submission while a request is in flight
func (f *SignInForm) SetBusy(busy bool) { f.busy = busy }

// Busy reports whether a submission is in flight
func (f SignInForm) Busy() bool { return f.busy }

// Reset clears every field and returns to login mode
func (f *SignInForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.keep = false
	f.SetMode(ModeLogin)
}

// LoginForm returns the values as a login submission
func (f SignInForm) LoginForm() auth.LoginForm {
	return auth.LoginForm{
		Email:     strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Secret:    strings.TrimSpace(f.inputs[fieldSecret].Value()),
		KeepLogin: f.keep,
	}
}

// RegisterForm returns the values as a registration submission
func (f SignInForm) RegisterForm() auth.RegisterForm {
	return auth.RegisterForm{
		Email:   strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Secret:  strings.TrimSpace(f.inputs[fieldSecret].Value()),
		Confirm: strings.TrimSpace(f.inputs[fieldConfirm].Value()),
		Agree:   f.agree,
	}
}

func (f *SignInForm) visible(field int) bool {
	return field != fieldConfirm || f.mode == ModeRegister
}

func (f *SignInForm) setFocus(field int) {
	f.focus = field
	for i := range f.inputs {
		if i == field {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *SignInForm) moveFocus(delta int) {
	next := f.focus
	for {
		next = (next + delta + fieldCount) % fieldCount
		if f.visible(next) {
			break
		}
	}
	f.setFocus(next)
}

// Update handles input, returns (form, cmd, submitted)
func (f SignInForm) Update(msg tea.Msg) (SignInForm, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.focus == fieldToggle {
			return f, nil, false
		}
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd, false
	}

	switch keyMsg.String() {
	case "tab", "down":
		f.moveFocus(1)
		return f, nil, false
	case "shift+tab", "up":
		f.moveFocus(-1)
		return f, nil, false
	case "ctrl+r":
		if f.mode == ModeLogin {
			f.SetMode(ModeRegister)
		} else {
			f.SetMode(ModeLogin)
		}
		return f, nil, false
	case "enter":
		if f.busy {
			return f, nil, false
		}
		f.err = ""
		return f, nil, true
	case " ":
		if f.focus == fieldToggle {
			if f.mode == ModeLogin {
				f.keep = !f.keep
			} else {
				f.agree = !f.agree
			}
			return f, nil, false
		}
	}

	if f.focus == fieldToggle {
		return f, nil, false
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

// View renders the form
func (f SignInForm) View() string {
	const width = 44

	title := "Sign in"
	switch f.mode {
	case ModeRegister:
		title = "Create account"
	}

	label := func(field int, text string) string {
		if f.focus == field {
			return styles.AccentStyle.Render("› " + text)
		}
		return styles.SubtitleStyle.Render("  " + text)
	}

	checkbox := func(on bool, text string) string {
		box := "[ ] "
		if on {
			box = "[x] "
		}
		return label(fieldToggle, box+text)
	}

	lines := []string{
		styles.ModalTitleStyle.Render(title),
		label(fieldEmail, "Email"),
		"  " + f.inputs[fieldEmail].View(),
		label(fieldSecret, "API key"),
		"  " + f.inputs[fieldSecret].View(),
	}
	if f.mode == ModeRegister {
		lines = append(lines,
			label(fieldConfirm, "Confirm API key"),
			"  "+f.inputs[fieldConfirm].View(),
			"",
			checkbox(f.agree, "I agree to the terms"),
		)
	} else {
		lines = append(lines, "", checkbox(f.keep, "Keep me signed in"))
	}

	lines = append(lines, "")
	switch {
	case f.busy:
		lines = append(lines, styles.DimStyle.Render("Checking API key..."))
	case f.err != "":
		lines = append(lines, styles.ErrorStyle.Render(styles.Truncate(f.err, width)))
	default:
		lines = append(lines, " ")
	}

	switch f.mode {
	case ModeRegister:
		lines = append(lines, styles.DimStyle.Render("enter register · ctrl+r sign in instead"))
	default:
		lines = append(lines, styles.DimStyle.Render("enter sign in · ctrl+r create account"))
	}

	return styles.ModalStyle.Width(width).Render(strings.Join(lines, "\n"))
}
