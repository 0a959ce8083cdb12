package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/components"
)

// handleSignInKey feeds the form and submits it. Form errors are shown
// without any request being made.
func (m Model) handleSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.Form, cmd, submitted = m.Form.Update(msg)
	if !submitted {
		return m, cmd
	}

	if m.Form.Mode() == components.ModeRegister {
		form := m.Form.RegisterForm()
		if err := form.Validate(); err != nil {
			m.Form.SetError(domain.UserMessage(err))
			return m, nil
		}
		m.Form.SetBusy(true)
		return m, RegisterCmd(m.Session, form)
	}

	form := m.Form.LoginForm()
	if err := form.Validate(); err != nil {
		m.Form.SetError(domain.UserMessage(err))
		return m, nil
	}
	m.Form.SetBusy(true)
	return m, LoginCmd(m.Session, form)
}

func (m Model) handleLoginResult(msg LoginResultMsg) (tea.Model, tea.Cmd) {
	m.Form.SetBusy(false)
	if msg.Err != nil {
		m.logger.Warn("sign in failed", "error", msg.Err)
		m.Form.SetError(domain.UserMessage(msg.Err))
		return m, nil
	}

	m.resetSessionState()

	target := m.from
	if target == "" || !target.Protected() {
		target = RouteHome
	}
	m.from = ""

	status := m.setStatus("Signed in as "+msg.Account.Email, false)
	return m, tea.Batch(status, m.navigate(target))
}

func (m Model) handleRegisterResult(msg RegisterResultMsg) (tea.Model, tea.Cmd) {
	m.Form.SetBusy(false)
	if msg.Err != nil {
		var verr *domain.ValidationError
		if !errors.As(msg.Err, &verr) {
			m.logger.Warn("registration failed", "email", msg.Email, "error", msg.Err)
		}
		m.Form.SetError(domain.UserMessage(msg.Err))
		return m, nil
	}

	m.Form.SetMode(components.ModeLogin)
	return m, m.setStatus("Account created for "+msg.Email+". Sign in to continue.", false)
}
