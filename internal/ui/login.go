package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/storeops/storeops/internal/api"
	"github.com/storeops/storeops/internal/notify"
	"github.com/storeops/storeops/internal/workflow"
)

// loginScreen is the guest-only credential form.
type loginScreen struct {
	email      textinput.Model
	password   textinput.Model
	focusIdx   int
	submitting bool
	errText    string
}

func newLoginScreen() loginScreen {
	email := textinput.New()
	email.Placeholder = "staff email"
	email.CharLimit = 64
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginScreen{email: email, password: password}
}

func (s *loginScreen) reset() {
	s.email.SetValue("")
	s.password.SetValue("")
	s.errText = ""
	s.submitting = false
	s.focusIdx = 0
	s.email.Focus()
	s.password.Blur()
}

func (s *loginScreen) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if s.submitting {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return s.submitCmd(m)
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		s.toggleFocus()
		return nil
	}
	var cmd tea.Cmd
	if s.focusIdx == 0 {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return cmd
}

func (s *loginScreen) toggleFocus() {
	if s.focusIdx == 0 {
		s.focusIdx = 1
		s.email.Blur()
		s.password.Focus()
	} else {
		s.focusIdx = 0
		s.password.Blur()
		s.email.Focus()
	}
}

func (s *loginScreen) submitCmd(m *Model) tea.Cmd {
	email := strings.TrimSpace(s.email.Value())
	password := s.password.Value()
	if err := workflow.Required("email", email); err != nil {
		s.errText = err.Error()
		return nil
	}
	if err := workflow.Required("password", password); err != nil {
		s.errText = err.Error()
		return nil
	}

	s.submitting = true
	s.errText = ""
	backend := m.backend
	ctx := m.ctx
	return func() tea.Msg {
		token, err := backend.Login(ctx, email, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m *Model) handleLoginResult(msg loginResultMsg) tea.Cmd {
	m.login.submitting = false
	if msg.err != nil {
		var apiErr *api.Error
		if errors.As(msg.err, &apiErr) {
			m.login.errText = apiErr.UserMessage()
		} else {
			m.login.errText = msg.err.Error()
		}
		m.log.Warn(m.ctx, "login failed", "error", msg.err)
		return nil
	}
	if err := m.sessions.Save(msg.token); err != nil {
		// The session still works for this process; persistence failing
		// only costs the user a re-login later.
		m.log.Warn(m.ctx, "session persist failed", "error", err)
	}
	m.log.Info(m.ctx, "signed in")
	m.login.reset()
	return tea.Batch(
		m.navigate(routeHome),
		m.notifyCmd("Signed in", notify.Success),
	)
}

func (s *loginScreen) render(m *Model, width int) string {
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Bold(true).Render("storeops"))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("Sign in to the admin console"))
	b.WriteString("\n\n")

	b.WriteString(fieldRow(m, "Email", s.email.View(), s.focusIdx == 0))
	b.WriteString("\n")
	b.WriteString(fieldRow(m, "Password", s.password.View(), s.focusIdx == 1))
	b.WriteString("\n")

	if s.errText != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.DangerText.Render(s.errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if s.submitting {
		b.WriteString(m.styles.MutedText.Render("Signing in..."))
	} else {
		b.WriteString(m.styles.MutedText.Render("enter sign in · tab switch field"))
	}

	box := m.styles.Panel.Render(b.String())
	if width > lipgloss.Width(box) {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}

func fieldRow(m *Model, label, view string, focused bool) string {
	prefix := "  "
	if focused {
		prefix = m.styles.AccentText.Render("> ")
	}
	return prefix + padCell(label, 9) + view
}
