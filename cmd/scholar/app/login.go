package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"optischolar/cmd/scholar/ui"
)

// loginForm owns the screen until a session exists.
type loginForm struct {
	email    textinput.Model
	password textinput.Model
	errMsg   string
	busy     bool
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return loginForm{email: email, password: password}
}

// update handles keys while the login form is active. It returns a login
// command when the user submits.
func (f *loginForm) update(m *Model, msg tea.KeyMsg) tea.Cmd {
	if f.busy {
		return nil
	}
	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		if f.email.Focused() {
			f.email.Blur()
			f.password.Focus()
		} else {
			f.password.Blur()
			f.email.Focus()
		}
		return nil
	case "enter":
		email := strings.TrimSpace(f.email.Value())
		password := f.password.Value()
		if email == "" || password == "" {
			f.errMsg = "email and password are required"
			return nil
		}
		f.errMsg = ""
		f.busy = true
		return m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	if f.email.Focused() {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

// fail re-opens the form with the rejection message. The entered email stays
// so the user only re-types the password.
func (f *loginForm) fail(msg string) {
	f.busy = false
	f.errMsg = msg
	f.password.SetValue("")
	f.password.Focus()
	f.email.Blur()
}

func (f *loginForm) view(m *Model) string {
	s := m.styles
	body := []string{
		s.Title.Render("OptiScholar"),
		s.Subtitle.Render("Academic Administration"),
		"",
		s.FormLabel.Render("Email"), f.email.View(),
		s.FormLabel.Render("Password"), f.password.View(),
		"",
	}
	if f.busy {
		body = append(body, ui.LoadingState(s, m.spin.View(), "signing in"))
	} else {
		body = append(body, s.Muted.Render("enter to sign in"))
	}
	if f.errMsg != "" {
		body = append(body, s.FormError.Render("✗ "+f.errMsg))
	}

	card := s.Card.Width(48).Render(lipgloss.JoinVertical(lipgloss.Left, body...))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
	}
	return card
}
