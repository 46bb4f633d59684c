package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/circulation"
)

// Fine form field indices. The paid acknowledgement is an extra focus slot
// rendered as a checkbox.
const (
	fineFieldDate = iota
	fineFieldRemarks
	fineToggleSlot
)

type fineModel struct {
	form   form
	paid   bool
	errMsg string
}

func newFineModel() fineModel {
	f := newForm([]fieldSpec{
		{label: "Actual return date", placeholder: api.DateLayout},
		{label: "Remarks", placeholder: "optional"},
	})
	f.extras = 1
	return fineModel{form: f}
}

// prefill carries the return context's date into the settlement form. The
// paid acknowledgement always starts unchecked.
func (fm *fineModel) prefill(date string) {
	fm.form.Reset()
	fm.form.SetValue(fineFieldDate, date)
	fm.paid = false
	fm.errMsg = ""
	fm.form.SetFocus(fineToggleSlot)
}

func (m *Model) updateFine(msg tea.KeyMsg) tea.Cmd {
	fm := &m.fine

	switch {
	case key.Matches(msg, m.keys.Back):
		m.page = PageReturn
		return nil

	case key.Matches(msg, m.keys.NextField):
		fm.form.Next()
		return nil

	case key.Matches(msg, m.keys.PrevField):
		fm.form.Prev()
		return nil

	case key.Matches(msg, m.keys.Toggle) && !fm.form.onInput():
		fm.paid = !fm.paid
		return nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitFine()
	}

	before := fm.form.Value(fineFieldDate)
	cmd := fm.form.Update(msg)
	after := fm.form.Value(fineFieldDate)
	if before != after {
		if rc, ok := m.session.ActiveReturn(); ok {
			m.session.UpdateReturnFine(circulation.EstimateFine(rc.PlannedReturn, after, rc.FineAmount))
		}
	}
	return cmd
}

// submitFine commits the return. A due fine must be acknowledged as paid
// before any request goes out; the pending check never reaches the network.
func (m *Model) submitFine() tea.Cmd {
	fm := &m.fine

	rc, ok := m.session.ActiveReturn()
	if !ok {
		fm.errMsg = circulation.ErrNoReturnActive.Error()
		return nil
	}

	f := circulation.FineForm{
		IssueID:          rc.IssueID,
		ActualReturnDate: fm.form.Value(fineFieldDate),
		FineAmount:       rc.FineAmount,
		FinePaid:         fm.paid,
		Remarks:          fm.form.Value(fineFieldRemarks),
	}
	if err := f.Validate(); err != nil {
		fm.errMsg = err.Error()
		return nil
	}
	fm.errMsg = ""
	return m.dispatch(m.completeReturnCmd(f.Request(), false))
}

func (m Model) viewFine() string {
	fm := m.fine

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Pay fine"))
	b.WriteString("\n\n")

	rc, active := m.session.ActiveReturn()
	if !active {
		b.WriteString(m.styles.Muted.Render("No return in progress. Start one on the return page (F3)."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.styles.Label.Render("Book"))
	b.WriteString(m.styles.Text.Render(rc.BookName))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Membership ID"))
	b.WriteString(m.styles.Text.Render(rc.MembershipID))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Planned return"))
	b.WriteString(m.styles.Text.Render(rc.PlannedReturn))
	b.WriteString("\n")

	fineStyle := m.styles.Success
	if rc.FineAmount > 0 {
		fineStyle = m.styles.Warning
	}
	b.WriteString(m.styles.Label.Render("Fine due"))
	b.WriteString(fineStyle.Render(strconv.Itoa(rc.FineAmount)))
	b.WriteString("\n\n")

	b.WriteString(fm.form.View(m.styles))

	check := "[ ]"
	if fm.paid {
		check = "[x]"
	}
	checkStyle := m.styles.Text
	if fm.form.focus == fineToggleSlot {
		checkStyle = m.styles.Selected
	}
	b.WriteString(m.styles.Label.Render("Fine paid"))
	b.WriteString(checkStyle.Render(check))
	b.WriteString("\n")

	if fm.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Danger.Render(fm.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("space toggles fine paid · enter commit · esc back"))
	b.WriteString("\n")
	return b.String()
}
