package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/circulation"
)

// availabilityModel drives the search page. The working set lives in the
// session; visible is the locally filtered view of it. Focus cycles through
// the two criteria inputs and then the result list.
type availabilityModel struct {
	form      form
	loaded    bool
	visible   []api.CatalogItem
	cursor    int
	selected  string
	filterGen int
	errMsg    string
}

const availListSlot = 2

func newAvailabilityModel() availabilityModel {
	f := newForm([]fieldSpec{
		{label: "Title", placeholder: "any part of the title"},
		{label: "Author", placeholder: "any part of the author"},
	})
	f.extras = 1
	return availabilityModel{form: f}
}

func (m *Model) updateAvailability(msg tea.KeyMsg) tea.Cmd {
	a := &m.avail

	switch {
	case key.Matches(msg, m.keys.Back):
		m.section = SectionHome
		return nil

	case key.Matches(msg, m.keys.NextField):
		a.form.Next()
		return nil

	case key.Matches(msg, m.keys.PrevField):
		a.form.Prev()
		return nil
	}

	if a.form.focus == availListSlot {
		return m.updateAvailabilityList(msg)
	}

	if key.Matches(msg, m.keys.Submit) {
		title := a.form.Value(0)
		author := a.form.Value(1)
		a.errMsg = ""
		if title == "" && author == "" {
			return m.dispatch(m.loadCatalogCmd())
		}
		return m.dispatch(m.searchCmd(title, author))
	}

	// Typing in a criteria input refilters the working set locally after a
	// short settle window. Each keystroke bumps the generation so only the
	// latest pending filter applies.
	before := a.form.Value(0) + "\x00" + a.form.Value(1)
	cmd := a.form.Update(msg)
	after := a.form.Value(0) + "\x00" + a.form.Value(1)
	if before != after {
		a.filterGen++
		return tea.Batch(cmd, filterTickCmd(a.filterGen))
	}
	return cmd
}

func (m *Model) updateAvailabilityList(msg tea.KeyMsg) tea.Cmd {
	a := &m.avail

	switch {
	case key.Matches(msg, m.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggleAvailabilitySelection()
	case key.Matches(msg, m.keys.Submit):
		m.takeSelectedToIssue()
	}
	return nil
}

// toggleAvailabilitySelection selects or clears the row under the cursor.
// Rows that are not available cannot be selected.
func (m *Model) toggleAvailabilitySelection() {
	a := &m.avail
	if a.cursor >= len(a.visible) {
		return
	}
	item := a.visible[a.cursor]
	if !item.Available() {
		a.errMsg = "Only available books can be selected."
		return
	}
	a.errMsg = ""
	if a.selected == item.SerialNo {
		a.selected = ""
		return
	}
	a.selected = item.SerialNo
}

// takeSelectedToIssue prefills the issue form from the selected row and
// switches to the issue page. Without a selection the page stays put.
func (m *Model) takeSelectedToIssue() {
	a := &m.avail
	if a.selected == "" {
		a.errMsg = circulation.ErrNoSelection.Error()
		return
	}

	set := m.session.WorkingSet()
	item, ok := circulation.FindBySerial(set, a.selected)
	if !ok {
		a.selected = ""
		a.errMsg = circulation.ErrNoSelection.Error()
		return
	}

	a.errMsg = ""
	m.issue.prefill(item, m.todayStr())
	m.page = PageIssue
}

func (m *Model) onWorkingSet(msg workingSetMsg) {
	a := &m.avail
	if m.routeError(msg.err, &a.errMsg) {
		return
	}

	items := msg.items
	if !msg.fromSearch {
		items = circulation.FilterAvailable(items)
	}

	m.session.SetWorkingSet(items)
	a.loaded = true
	a.visible = items
	a.cursor = 0
	a.errMsg = ""
	m.pruneAvailabilitySelection()
}

func (m *Model) onFilterTick(msg filterTickMsg) {
	a := &m.avail
	if msg.gen != a.filterGen {
		return
	}
	a.visible = circulation.FilterWorkingSet(m.session.WorkingSet(), a.form.Value(0), a.form.Value(1))
	if a.cursor >= len(a.visible) {
		a.cursor = 0
	}
	m.pruneAvailabilitySelection()
}

// pruneAvailabilitySelection drops the selection when the selected row is no
// longer in the visible list.
func (m *Model) pruneAvailabilitySelection() {
	a := &m.avail
	if a.selected == "" {
		return
	}
	if _, ok := circulation.FindBySerial(a.visible, a.selected); !ok {
		a.selected = ""
	}
}

func (m Model) viewAvailability() string {
	a := m.avail

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Book availability"))
	b.WriteString("\n\n")
	b.WriteString(a.form.View(m.styles))
	b.WriteString("\n")

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("  %-12s %-34s %-22s %-10s", "Serial", "Title", "Author", "Status")))
	b.WriteString("\n")

	if len(a.visible) == 0 {
		b.WriteString(m.styles.Muted.Render("  No books to show."))
		b.WriteString("\n")
	}
	for i, item := range a.visible {
		marker := " "
		if item.SerialNo == a.selected {
			marker = "*"
		}
		row := fmt.Sprintf("%s %-12s %-34s %-22s %-10s",
			marker, item.SerialNo, truncate(item.Name, 34), truncate(item.Author, 22), item.Status)

		style := m.styles.Text
		if !item.Available() {
			style = m.styles.Disabled
		}
		if i == a.cursor && a.form.focus == availListSlot {
			style = m.styles.Selected
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}

	if a.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Danger.Render(a.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter search (blank shows all available) · tab to list · space select · enter issue selected"))
	b.WriteString("\n")
	return b.String()
}
