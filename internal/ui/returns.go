package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/circulation"
	"github.com/rupam905/libdesk/internal/state"
)

// Return form field indices.
const (
	retFieldMember = iota
	retFieldSerial
	retFieldDate
)

// returnModel drives the return page. It has three shapes: the idle lookup
// form, a candidate list when a member has several open issues, and the
// active context card once the single return slot is filled.
type returnModel struct {
	form       form
	candidates []api.IssueRecord
	candCursor int
	lookedUp   string
	notice     string
	noticeGen  int
	errMsg     string
}

func newReturnModel() returnModel {
	return returnModel{
		form: newForm([]fieldSpec{
			{label: "Membership ID", placeholder: "M001"},
			{label: "Serial no", placeholder: "serial"},
			{label: "Actual return date", placeholder: api.DateLayout},
		}),
	}
}

func (m *Model) updateReturn(msg tea.KeyMsg) tea.Cmd {
	if _, active := m.session.ActiveReturn(); active {
		return m.updateReturnActive(msg)
	}
	if len(m.ret.candidates) > 0 {
		return m.updateReturnCandidates(msg)
	}
	return m.updateReturnIdle(msg)
}

func (m *Model) updateReturnIdle(msg tea.KeyMsg) tea.Cmd {
	r := &m.ret

	switch {
	case key.Matches(msg, m.keys.Back):
		m.page = PageAvailability
		return nil

	case key.Matches(msg, m.keys.NextField):
		return m.returnFieldLeft(r.form.Next())

	case key.Matches(msg, m.keys.PrevField):
		return m.returnFieldLeft(r.form.Prev())

	case key.Matches(msg, m.keys.Submit):
		member := r.form.Value(retFieldMember)
		serial := r.form.Value(retFieldSerial)
		if err := circulation.ValidateReturnLookup(member, serial); err != nil {
			r.errMsg = err.Error()
			return nil
		}
		r.errMsg = ""
		return m.dispatch(m.startReturnCmd(member, serial, r.form.Value(retFieldDate)))
	}
	return r.form.Update(msg)
}

// returnFieldLeft fires the by-member lookup when focus leaves a filled
// membership field, mirroring a blur event. Repeating the same lookup is
// suppressed until the value changes.
func (m *Model) returnFieldLeft(left int) tea.Cmd {
	r := &m.ret
	if left != retFieldMember {
		return nil
	}
	member := r.form.Value(retFieldMember)
	if member == "" || member == r.lookedUp {
		return nil
	}
	r.lookedUp = member
	r.errMsg = ""
	return m.dispatch(m.lookupMemberCmd(member))
}

func (m *Model) updateReturnCandidates(msg tea.KeyMsg) tea.Cmd {
	r := &m.ret

	switch {
	case key.Matches(msg, m.keys.Back):
		r.candidates = nil
		r.candCursor = 0
	case key.Matches(msg, m.keys.Up):
		if r.candCursor > 0 {
			r.candCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if r.candCursor < len(r.candidates)-1 {
			r.candCursor++
		}
	case key.Matches(msg, m.keys.Submit):
		chosen := r.candidates[r.candCursor]
		return m.dispatch(m.resolveIssueCmd(chosen))
	}
	return nil
}

func (m *Model) updateReturnActive(msg tea.KeyMsg) tea.Cmd {
	r := &m.ret

	switch {
	case key.Matches(msg, m.keys.Back):
		// Cancel the in-flight return and free the slot.
		m.session.ClearReturn()
		m.ret = newReturnModel()
		return nil

	case key.Matches(msg, m.keys.Submit):
		return m.proceedReturn()

	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		// Member and serial are fixed once the record is resolved. Only the
		// actual return date stays editable.
		return nil
	}

	before := r.form.Value(retFieldDate)
	cmd := r.form.Update(msg)
	after := r.form.Value(retFieldDate)
	if before != after {
		rc, ok := m.session.ActiveReturn()
		if ok {
			m.session.UpdateReturnFine(circulation.EstimateFine(rc.PlannedReturn, after, rc.FineAmount))
		}
	}
	return cmd
}

// proceedReturn moves an active return forward. A due fine goes to the fine
// page for settlement; a zero fine commits immediately with fine_paid false.
func (m *Model) proceedReturn() tea.Cmd {
	r := &m.ret

	rc, ok := m.session.ActiveReturn()
	if !ok {
		r.errMsg = circulation.ErrNoReturnActive.Error()
		return nil
	}
	date := r.form.Value(retFieldDate)
	if date == "" {
		r.errMsg = circulation.ErrReturnDateNeeded.Error()
		return nil
	}

	if rc.FineAmount > 0 {
		m.fine.prefill(date)
		m.page = PageFine
		return nil
	}

	f := circulation.FineForm{IssueID: rc.IssueID, ActualReturnDate: date}
	if err := f.Validate(); err != nil {
		r.errMsg = err.Error()
		return nil
	}
	r.errMsg = ""
	return m.dispatch(m.completeReturnCmd(f.Request(), true))
}

func (m *Model) onOpenIssuesLoaded(msg openIssuesLoadedMsg) tea.Cmd {
	r := &m.ret
	if m.routeError(msg.err, &r.errMsg) {
		return nil
	}
	if _, active := m.session.ActiveReturn(); active {
		return nil
	}

	matches := circulation.OpenIssuesFor(msg.issues, msg.membershipID)
	switch len(matches) {
	case 0:
		r.noticeGen++
		r.notice = "No active issues found for membership " + msg.membershipID + "."
		return noticeTickCmd(r.noticeGen)
	case 1:
		return m.dispatch(m.resolveIssueCmd(matches[0]))
	default:
		r.candidates = matches
		r.candCursor = 0
		return nil
	}
}

func (m *Model) onNoticeExpired(msg noticeExpiredMsg) {
	if msg.gen == m.ret.noticeGen {
		m.ret.notice = ""
	}
}

func (m *Model) onReturnResolved(msg returnResolvedMsg) {
	if m.routeError(msg.err, &m.ret.errMsg) {
		return
	}

	rec := msg.rec
	rc := state.ReturnContext{
		IssueID:       rec.IssueID,
		MembershipID:  rec.MembershipID,
		SerialNo:      rec.SerialNo,
		BookName:      msg.item.Name,
		Author:        msg.item.Author,
		PlannedReturn: rec.PlannedReturn,
		FineAmount:    circulation.EstimateFine(rec.PlannedReturn, m.todayStr(), rec.FineAmount),
	}
	m.activateReturn(rc)
}

func (m *Model) onReturnStarted(msg returnStartedMsg) {
	if m.routeError(msg.err, &m.ret.errMsg) {
		return
	}

	// The backend record is authoritative here, including its fine.
	rec := msg.rec
	m.activateReturn(state.ReturnContext{
		IssueID:       rec.IssueID,
		MembershipID:  rec.MembershipID,
		SerialNo:      rec.SerialNo,
		BookName:      rec.BookName,
		Author:        rec.Author,
		PlannedReturn: rec.PlannedReturn,
		FineAmount:    rec.FineAmount,
	})
}

// activateReturn fills the single return slot and reshapes the page into the
// context card. A refused slot means another return is mid-flight.
func (m *Model) activateReturn(rc state.ReturnContext) {
	r := &m.ret
	if !m.session.BeginReturn(rc) {
		r.errMsg = "A return is already in progress. Finish or cancel it first."
		return
	}

	r.candidates = nil
	r.candCursor = 0
	r.notice = ""
	r.errMsg = ""
	r.form.SetValue(retFieldMember, rc.MembershipID)
	r.form.SetValue(retFieldSerial, rc.SerialNo)
	if r.form.Value(retFieldDate) == "" {
		r.form.SetValue(retFieldDate, m.todayStr())
		m.session.UpdateReturnFine(circulation.EstimateFine(rc.PlannedReturn, m.todayStr(), rc.FineAmount))
	} else {
		m.session.UpdateReturnFine(circulation.EstimateFine(rc.PlannedReturn, r.form.Value(retFieldDate), rc.FineAmount))
	}
	r.form.SetFocus(retFieldDate)
}

func (m *Model) onReturnCommitted(msg returnCommittedMsg) {
	inline := &m.ret.errMsg
	if m.page == PageFine {
		inline = &m.fine.errMsg
	}
	if m.routeError(msg.err, inline) {
		return
	}

	rc, _ := m.session.ActiveReturn()
	m.session.ClearReturn()
	m.ret = newReturnModel()
	m.fine = newFineModel()

	// The returned copy is available again; reload the catalog next visit.
	m.avail = newAvailabilityModel()
	m.page = PageAvailability

	body := fmt.Sprintf("Issue #%d closed. Fine settled.", rc.IssueID)
	if msg.zeroFine {
		body = fmt.Sprintf("Issue #%d closed. No fine was due.", rc.IssueID)
	}
	m.showStatus("Return completed", body, false)
}

func (m Model) viewReturn() string {
	r := m.ret

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Return book"))
	b.WriteString("\n\n")

	if rc, active := m.session.ActiveReturn(); active {
		b.WriteString(m.styles.Label.Render("Book"))
		b.WriteString(m.styles.Text.Render(rc.BookName))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Author"))
		b.WriteString(m.styles.Text.Render(rc.Author))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Membership ID"))
		b.WriteString(m.styles.Text.Render(rc.MembershipID))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Serial no"))
		b.WriteString(m.styles.Text.Render(rc.SerialNo))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Planned return"))
		b.WriteString(m.styles.Text.Render(rc.PlannedReturn))
		b.WriteString("\n")
		b.WriteString(m.styles.Label.Render("Actual return date"))
		b.WriteString(r.form.inputs[retFieldDate].View())
		b.WriteString("\n")

		fineStyle := m.styles.Success
		if rc.FineAmount > 0 {
			fineStyle = m.styles.Warning
		}
		b.WriteString(m.styles.Label.Render("Fine"))
		b.WriteString(fineStyle.Render(strconv.Itoa(rc.FineAmount)))
		b.WriteString("\n")

		if r.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.Danger.Render(r.errMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("enter proceed · esc cancel return"))
		b.WriteString("\n")
		return b.String()
	}

	if len(r.candidates) > 0 {
		b.WriteString(m.styles.Text.Render("This member has several open issues. Pick the one being returned:"))
		b.WriteString("\n\n")
		for i, rec := range r.candidates {
			row := fmt.Sprintf("  %-12s %-34s due %s", rec.SerialNo, truncate(rec.BookName, 34), rec.PlannedReturn)
			style := m.styles.Text
			if i == r.candCursor {
				style = m.styles.Selected
			}
			b.WriteString(style.Render(row))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("↑/↓ choose · enter confirm · esc back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(r.form.View(m.styles))

	if r.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(r.notice))
		b.WriteString("\n")
	}
	if r.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Danger.Render(r.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("tab past membership looks up open issues · enter finds by member and serial"))
	b.WriteString("\n")
	return b.String()
}
