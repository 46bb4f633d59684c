package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/state"
)

// testToday is the fixed clock for every UI test.
var testToday = time.Date(2024, 1, 11, 10, 0, 0, 0, time.UTC)

// stubService is a scriptable api.Service that records mutating calls.
type stubService struct {
	loginResult api.LoginResult
	loginErr    error

	books    []api.CatalogItem
	booksErr error

	searchResults []api.CatalogItem
	searchErr     error

	issues    []api.IssueRecord
	issuesErr error

	issueErr   error
	issueCalls []api.IssueRequest

	startRec   *api.IssueRecord
	startErr   error
	startCalls []string

	completeErr   error
	completeCalls []api.CompleteReturnRequest

	reportRows []map[string]any
	reportErr  error
}

func (s *stubService) Login(context.Context, string, string) (api.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubService) Logout(context.Context) error { return nil }

func (s *stubService) CurrentUser(context.Context) (api.LoginResult, error) {
	return s.loginResult, nil
}

func (s *stubService) SearchAvailability(_ context.Context, book, author string) ([]api.CatalogItem, error) {
	return s.searchResults, s.searchErr
}

func (s *stubService) ListBooks(context.Context) ([]api.CatalogItem, error) {
	return s.books, s.booksErr
}

func (s *stubService) ListActiveIssues(context.Context) ([]api.IssueRecord, error) {
	return s.issues, s.issuesErr
}

func (s *stubService) IssueBook(_ context.Context, req api.IssueRequest) error {
	s.issueCalls = append(s.issueCalls, req)
	return s.issueErr
}

func (s *stubService) StartReturn(_ context.Context, membershipID, serialNo, _ string) (*api.IssueRecord, error) {
	s.startCalls = append(s.startCalls, membershipID+"/"+serialNo)
	return s.startRec, s.startErr
}

func (s *stubService) CompleteReturn(_ context.Context, req api.CompleteReturnRequest) error {
	s.completeCalls = append(s.completeCalls, req)
	return s.completeErr
}

func (s *stubService) FetchReport(context.Context, string) ([]map[string]any, error) {
	return s.reportRows, s.reportErr
}

func (s *stubService) AddMembership(context.Context, api.MembershipForm) error { return nil }

func (s *stubService) GetMembership(context.Context, string) (*api.Membership, error) {
	return &api.Membership{}, nil
}

func (s *stubService) UpdateMembership(context.Context, string, string) (*api.MembershipUpdate, error) {
	return &api.MembershipUpdate{}, nil
}

func (s *stubService) AddBook(context.Context, api.BookForm) error { return nil }

func (s *stubService) GetBook(context.Context, string) (*api.CatalogItem, error) {
	return &api.CatalogItem{}, nil
}

func (s *stubService) UpdateBook(context.Context, api.BookUpdateForm) error { return nil }

var _ api.Service = (*stubService)(nil)

// newTestModel builds a logged-in model on the home view with a fixed clock.
func newTestModel(t *testing.T, svc api.Service) Model {
	t.Helper()
	m := New(Options{
		Client:    svc,
		Session:   &state.Session{},
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		Timeout:   time.Second,
		Now:       func() time.Time { return testToday },
	})
	m.session.SetUser(api.LoginResult{Username: "desk", Role: "user"})
	m.section = SectionHome
	return m
}

func keyMsg(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

func runeMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// apply feeds messages through Update without executing returned commands.
func apply(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var model tea.Model
		model, cmd = m.Update(msg)
		m = model.(Model)
	}
	return m, cmd
}

// pump feeds a message through Update and then runs the resulting command
// chain to completion, feeding every produced message back in. Spinner
// frames are dropped so the chain terminates.
func pump(m Model, msg tea.Msg) Model {
	model, cmd := m.Update(msg)
	m = model.(Model)
	for _, out := range collectMsgs(cmd) {
		if _, ok := out.(spinner.TickMsg); ok {
			continue
		}
		m = pump(m, out)
	}
	return m
}

func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
