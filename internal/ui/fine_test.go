package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/state"
)

// overdueReturnModel drives the explicit find path to an active return that
// is ten days late, so a fine of 100 is due.
func overdueReturnModel(t *testing.T, svc *stubService) Model {
	rec := openIssueFixture()
	svc.startRec = &rec

	m := returnPageModel(t, svc)
	m.ret.form.SetValue(retFieldMember, "M001")
	m.ret.form.SetValue(retFieldSerial, "B001")
	m = pump(m, keyMsg(tea.KeyEnter))

	rc, active := m.session.ActiveReturn()
	require.True(t, active)
	require.Equal(t, 100, rc.FineAmount)
	return m
}

func TestDueFineRoutesToFinePageWithoutCommitting(t *testing.T) {
	svc := &stubService{}
	m := overdueReturnModel(t, svc)

	m = pump(m, keyMsg(tea.KeyEnter))

	assert.Equal(t, PageFine, m.page)
	assert.Empty(t, svc.completeCalls)
	assert.Equal(t, "2024-01-11", m.fine.form.Value(fineFieldDate))
	assert.False(t, m.fine.paid)
}

func TestUnpaidFineIsBlockedLocally(t *testing.T) {
	svc := &stubService{}
	m := overdueReturnModel(t, svc)
	m = pump(m, keyMsg(tea.KeyEnter)) // to the fine page

	m = pump(m, keyMsg(tea.KeyEnter)) // commit without acknowledging

	assert.Equal(t, "fine pending, please mark fine paid", m.fine.errMsg)
	assert.Empty(t, svc.completeCalls)
	assert.Equal(t, SectionTransaction, m.section)

	_, active := m.session.ActiveReturn()
	assert.True(t, active)
}

func TestPaidFineCommitsAndClearsTheSlot(t *testing.T) {
	svc := &stubService{}
	m := overdueReturnModel(t, svc)
	m = pump(m, keyMsg(tea.KeyEnter)) // to the fine page

	m, _ = apply(m, keyMsg(tea.KeySpace)) // acknowledge payment
	require.True(t, m.fine.paid)

	m = pump(m, keyMsg(tea.KeyEnter))

	require.Len(t, svc.completeCalls, 1)
	call := svc.completeCalls[0]
	assert.Equal(t, int64(42), call.IssueID)
	assert.True(t, call.FinePaid)

	_, active := m.session.ActiveReturn()
	assert.False(t, active)
	assert.Equal(t, SectionStatus, m.section)
}

func TestCommitRejectionShowsBackendDetail(t *testing.T) {
	svc := &stubService{
		completeErr: &api.Error{StatusCode: 400, Detail: "Fine pending, please mark Fine Paid"},
	}
	m := overdueReturnModel(t, svc)
	m = pump(m, keyMsg(tea.KeyEnter))
	m, _ = apply(m, keyMsg(tea.KeySpace))

	m = pump(m, keyMsg(tea.KeyEnter))

	assert.Equal(t, "Fine pending, please mark Fine Paid", m.fine.errMsg)

	// The slot stays occupied so the operator can retry.
	_, active := m.session.ActiveReturn()
	assert.True(t, active)
}

func TestForbiddenActionLandsOnAccessDeniedStatus(t *testing.T) {
	svc := &stubService{
		issueErr: &api.Error{StatusCode: 403, Detail: "Admin access required"},
	}
	m := newTestModel(t, svc)
	m.section = SectionTransaction
	m.page = PageIssue
	m.issue.form.SetValue(issueFieldMember, "M001")
	m.issue.form.SetValue(issueFieldBook, "The Go Programming Language")
	m.issue.form.SetValue(issueFieldAuthor, "Donovan")
	m.issue.form.SetValue(issueFieldSerial, "B001")
	m.issue.form.SetValue(issueFieldIssueDate, "2024-01-11")
	m.issue.form.SetValue(issueFieldPlanned, "2024-01-26")

	m = pump(m, keyMsg(tea.KeyEnter))

	assert.Equal(t, SectionStatus, m.section)
	assert.Equal(t, "Access denied", m.statusTitle)
	assert.Equal(t, "Admin access required", m.statusBody)
}

func TestExpiredSessionForcesLogin(t *testing.T) {
	svc := &stubService{
		booksErr: &api.Error{StatusCode: 401, Detail: "Not authenticated"},
	}
	m := newTestModel(t, svc)
	m.session.BeginReturn(state.ReturnContext{IssueID: 42})

	m = pump(m, runeMsg("t"))

	assert.Equal(t, SectionLogin, m.section)
	assert.Equal(t, "Session expired. Please sign in again.", m.login.info)

	_, loggedIn := m.session.User()
	assert.False(t, loggedIn)
	_, active := m.session.ActiveReturn()
	assert.False(t, active)
}

func TestIncompleteIssueFormNeverReachesTheServer(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(t, svc)
	m.section = SectionTransaction
	m.page = PageIssue
	m.issue.form.SetValue(issueFieldMember, "M001")

	m = pump(m, keyMsg(tea.KeyEnter))

	assert.Equal(t, "all fields except remarks are mandatory", m.issue.errMsg)
	assert.Empty(t, svc.issueCalls)
}
