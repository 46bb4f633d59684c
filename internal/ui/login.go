package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
)

type loginModel struct {
	form   form
	info   string
	errMsg string
}

func newLoginModel() loginModel {
	return loginModel{
		form: newForm([]fieldSpec{
			{label: "Username", placeholder: "username"},
			{label: "Password", placeholder: "password", secret: true},
		}),
	}
}

func (m *Model) updateLogin(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.login.form.Next()
		return nil
	case key.Matches(msg, m.keys.PrevField):
		m.login.form.Prev()
		return nil
	case key.Matches(msg, m.keys.Submit):
		username := m.login.form.Value(0)
		password := m.login.form.Value(1)
		if username == "" || password == "" {
			m.login.errMsg = "Username and password are required."
			return nil
		}
		m.login.errMsg = ""
		m.login.info = ""
		return m.dispatch(m.loginCmd(username, password))
	}
	return m.login.form.Update(msg)
}

func (m *Model) onLoginResult(msg loginResultMsg) tea.Cmd {
	if msg.err != nil {
		// A 401 here means bad credentials, not an expired session, so it
		// stays inline instead of going through the global error routing.
		m.login.errMsg = api.Detail(msg.err, "Login failed.")
		return nil
	}
	m.session.SetUser(msg.result)
	m.login = newLoginModel()
	m.section = SectionHome
	return nil
}

func (m *Model) onLoggedOut() {
	m.resetWorkflows()
	m.session.Reset()
	m.login = newLoginModel()
	m.login.info = "You have successfully logged out."
	m.section = SectionLogin
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.Logo.Render(" libdesk "))
	b.WriteString(m.styles.Muted.Render(" library circulation desk"))
	b.WriteString("\n\n")
	b.WriteString(m.login.form.View(m.styles))
	b.WriteString("\n")

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Muted.Render(" signing in"))
		b.WriteString("\n")
	}
	if m.login.info != "" {
		b.WriteString(m.styles.Info.Render(m.login.info))
		b.WriteString("\n")
	}
	if m.login.errMsg != "" {
		b.WriteString(m.styles.Danger.Render(m.login.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("tab next field · enter sign in · ctrl+c quit"))
	return b.String()
}
