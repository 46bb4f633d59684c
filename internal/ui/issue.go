package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/circulation"
)

// Issue form field indices.
const (
	issueFieldMember = iota
	issueFieldBook
	issueFieldAuthor
	issueFieldSerial
	issueFieldIssueDate
	issueFieldPlanned
	issueFieldRemarks
)

type issueModel struct {
	form   form
	errMsg string
}

func newIssueModel() issueModel {
	return issueModel{
		form: newForm([]fieldSpec{
			{label: "Membership ID", placeholder: "M001"},
			{label: "Book name", placeholder: "title"},
			{label: "Author", placeholder: "author"},
			{label: "Serial no", placeholder: "serial"},
			{label: "Issue date", placeholder: api.DateLayout},
			{label: "Planned return", placeholder: api.DateLayout},
			{label: "Remarks", placeholder: "optional"},
		}),
	}
}

// prefill populates the form from an availability selection. The issue date
// is today; the planned return is left blank so the operator must choose it.
func (im *issueModel) prefill(item api.CatalogItem, today string) {
	im.form.Reset()
	im.form.SetValue(issueFieldBook, item.Name)
	im.form.SetValue(issueFieldAuthor, item.Author)
	im.form.SetValue(issueFieldSerial, item.SerialNo)
	im.form.SetValue(issueFieldIssueDate, today)
	im.errMsg = ""
	im.form.SetFocus(issueFieldMember)
}

func (m *Model) updateIssue(msg tea.KeyMsg) tea.Cmd {
	im := &m.issue

	switch {
	case key.Matches(msg, m.keys.Back):
		m.page = PageAvailability
		return nil
	case key.Matches(msg, m.keys.NextField):
		im.form.Next()
		return nil
	case key.Matches(msg, m.keys.PrevField):
		im.form.Prev()
		return nil
	case key.Matches(msg, m.keys.Submit):
		f := circulation.IssueForm{
			MembershipID:  im.form.Value(issueFieldMember),
			BookName:      im.form.Value(issueFieldBook),
			Author:        im.form.Value(issueFieldAuthor),
			SerialNo:      im.form.Value(issueFieldSerial),
			IssueDate:     im.form.Value(issueFieldIssueDate),
			PlannedReturn: im.form.Value(issueFieldPlanned),
			Remarks:       im.form.Value(issueFieldRemarks),
		}
		if err := f.Validate(); err != nil {
			im.errMsg = err.Error()
			return nil
		}
		im.errMsg = ""
		return m.dispatch(m.issueCmd(f.Request()))
	}
	return im.form.Update(msg)
}

func (m *Model) onIssueSubmitted(msg issueSubmittedMsg) {
	if m.routeError(msg.err, &m.issue.errMsg) {
		return
	}

	book := m.issue.form.Value(issueFieldBook)
	member := m.issue.form.Value(issueFieldMember)
	m.issue = newIssueModel()

	// The issued copy is no longer available, so the cached working set is
	// stale. Force a reload on the next availability visit.
	m.avail = newAvailabilityModel()

	m.showStatus("Book issued", fmt.Sprintf("Issued %q to %s.", book, member), false)
}

func (m Model) viewIssue() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Issue book"))
	b.WriteString("\n\n")
	b.WriteString(m.issue.form.View(m.styles))

	if m.issue.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Danger.Render(m.issue.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("all fields except remarks are mandatory · enter submit · esc back"))
	b.WriteString("\n")
	return b.String()
}
