package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/circulation"
)

// Debounce and notice windows. filterDebounce batches keystrokes in the
// availability filter; noticeWindow is how long a zero-match lookup notice
// stays on screen.
const (
	filterDebounce = 250 * time.Millisecond
	noticeWindow   = 5 * time.Second
)

func (m Model) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		result, err := m.client.Login(ctx, username, password)
		return loginResultMsg{result: result, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		return loggedOutMsg{err: m.client.Logout(ctx)}
	}
}

// loadCatalogCmd fetches the full catalog for the default availability view.
func (m Model) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		items, err := m.client.ListBooks(ctx)
		return workingSetMsg{items: items, err: err}
	}
}

// searchCmd runs a server-side availability search. Blank criteria never
// reach here; the availability page falls back to the default load instead.
func (m Model) searchCmd(title, author string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		items, err := m.client.SearchAvailability(ctx, title, author)
		return workingSetMsg{items: items, fromSearch: true, err: err}
	}
}

func filterTickCmd(gen int) tea.Cmd {
	return tea.Tick(filterDebounce, func(time.Time) tea.Msg {
		return filterTickMsg{gen: gen}
	})
}

func noticeTickCmd(gen int) tea.Cmd {
	return tea.Tick(noticeWindow, func(time.Time) tea.Msg {
		return noticeExpiredMsg{gen: gen}
	})
}

func (m Model) issueCmd(req api.IssueRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		return issueSubmittedMsg{err: m.client.IssueBook(ctx, req)}
	}
}

// lookupMemberCmd fetches all open issues for the by-member return path.
func (m Model) lookupMemberCmd(membershipID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		issues, err := m.client.ListActiveIssues(ctx)
		return openIssuesLoadedMsg{membershipID: membershipID, issues: issues, err: err}
	}
}

// resolveIssueCmd pairs a chosen open record with its catalog entry so the
// return page can show title and author.
func (m Model) resolveIssueCmd(rec api.IssueRecord) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		items, err := m.client.ListBooks(ctx)
		if err != nil {
			return returnResolvedMsg{rec: rec, err: err}
		}

		item, ok := circulation.FindBySerial(items, rec.SerialNo)
		if !ok {
			// Catalog lookup is cosmetic; fall back to the record's own
			// book fields rather than failing the return.
			item = api.CatalogItem{SerialNo: rec.SerialNo, Name: rec.BookName, Author: rec.Author}
		}
		return returnResolvedMsg{rec: rec, item: item}
	}
}

func (m Model) startReturnCmd(membershipID, serialNo, returnDate string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		rec, err := m.client.StartReturn(ctx, membershipID, serialNo, returnDate)
		return returnStartedMsg{rec: rec, err: err}
	}
}

func (m Model) completeReturnCmd(req api.CompleteReturnRequest, zeroFine bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		return returnCommittedMsg{zeroFine: zeroFine, err: m.client.CompleteReturn(ctx, req)}
	}
}

func (m Model) loadReportCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		rows, err := m.client.FetchReport(ctx, name)
		return reportLoadedMsg{name: name, rows: rows, err: err}
	}
}

func (m Model) addMembershipCmd(form api.MembershipForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		return memberSavedMsg{err: m.client.AddMembership(ctx, form)}
	}
}

func (m Model) memberInfoCmd(membershipID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		member, err := m.client.GetMembership(ctx, membershipID)
		return memberInfoMsg{member: member, err: err}
	}
}

func (m Model) updateMembershipCmd(membershipID, action string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		update, err := m.client.UpdateMembership(ctx, membershipID, action)
		return memberUpdatedMsg{update: update, err: err}
	}
}

func (m Model) addBookCmd(form api.BookForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		return bookSavedMsg{err: m.client.AddBook(ctx, form)}
	}
}

func (m Model) bookInfoCmd(serialNo string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		item, err := m.client.GetBook(ctx, serialNo)
		return bookInfoMsg{item: item, err: err}
	}
}

func (m Model) updateBookCmd(form api.BookUpdateForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.withTimeout()
		defer cancel()

		return bookUpdatedMsg{err: m.client.UpdateBook(ctx, form)}
	}
}
