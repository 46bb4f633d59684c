package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
)

type maintPage int

const (
	maintAddMember maintPage = iota
	maintUpdMember
	maintAddBook
	maintUpdBook
)

var planOptions = []struct {
	value string
	label string
}{
	{"6m", "6 months"},
	{"1y", "1 year"},
	{"2y", "2 years"},
}

var actionOptions = []struct {
	value string
	label string
}{
	{"6m", "Extend 6 months"},
	{"1y", "Extend 1 year"},
	{"2y", "Extend 2 years"},
	{"cancel", "Cancel membership"},
}

// Add membership field indices; the plan picker is the extra slot.
const (
	amFieldID = iota
	amFieldFirst
	amFieldLast
	amFieldPhone
	amFieldAddress
	amFieldAadhar
	amFieldStart
	amPlanSlot
)

// Add book field indices; the type picker is the extra slot.
const (
	abFieldSerial = iota
	abFieldName
	abFieldAuthor
	abFieldCategory
	abFieldDate
	abFieldCost
	abTypeSlot
)

// Update book field indices.
const (
	ubFieldSerial = iota
	ubFieldName
	ubFieldAuthor
	ubFieldCategory
	ubFieldStatus
	ubFieldDate
)

type maintenanceModel struct {
	page maintPage

	addMember form
	plan      int

	updMember    form
	action       int
	member       *api.Membership
	memberLooked string

	addBook  form
	bookType int

	updBook    form
	bookLooked string

	okMsg  string
	errMsg string
}

var bookTypes = []string{"book", "movie"}

func newMaintenanceModel() maintenanceModel {
	addMember := newForm([]fieldSpec{
		{label: "Membership ID", placeholder: "M001"},
		{label: "First name"},
		{label: "Last name"},
		{label: "Phone"},
		{label: "Address"},
		{label: "Aadhar"},
		{label: "Start date", placeholder: api.DateLayout},
	})
	addMember.extras = 1

	updMember := newForm([]fieldSpec{
		{label: "Membership ID", placeholder: "M001"},
	})
	updMember.extras = 1

	addBook := newForm([]fieldSpec{
		{label: "Serial no"},
		{label: "Name"},
		{label: "Author"},
		{label: "Category"},
		{label: "Procurement date", placeholder: api.DateLayout},
		{label: "Cost"},
	})
	addBook.extras = 1

	updBook := newForm([]fieldSpec{
		{label: "Serial no"},
		{label: "Name"},
		{label: "Author"},
		{label: "Category"},
		{label: "Status", placeholder: api.StatusAvailable},
		{label: "Procurement date", placeholder: api.DateLayout},
	})

	return maintenanceModel{
		addMember: addMember,
		updMember: updMember,
		addBook:   addBook,
		updBook:   updBook,
	}
}

func (mm *maintenanceModel) activeForm() *form {
	switch mm.page {
	case maintUpdMember:
		return &mm.updMember
	case maintAddBook:
		return &mm.addBook
	case maintUpdBook:
		return &mm.updBook
	default:
		return &mm.addMember
	}
}

func (m *Model) updateMaintenance(msg tea.KeyMsg) tea.Cmd {
	mm := &m.maint

	switch {
	case key.Matches(msg, m.keys.Back):
		m.section = SectionHome
		return nil

	case key.Matches(msg, m.keys.Page1):
		m.switchMaintPage(maintAddMember)
		return nil
	case key.Matches(msg, m.keys.Page2):
		m.switchMaintPage(maintUpdMember)
		return nil
	case key.Matches(msg, m.keys.Page3):
		m.switchMaintPage(maintAddBook)
		return nil
	case key.Matches(msg, m.keys.Page4):
		m.switchMaintPage(maintUpdBook)
		return nil
	}

	f := mm.activeForm()

	switch {
	case key.Matches(msg, m.keys.NextField):
		return m.maintFieldLeft(f.Next())
	case key.Matches(msg, m.keys.PrevField):
		return m.maintFieldLeft(f.Prev())
	case key.Matches(msg, m.keys.Toggle) && !f.onInput():
		m.cycleMaintPicker()
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitMaintenance()
	}
	return f.Update(msg)
}

func (m *Model) switchMaintPage(page maintPage) {
	m.maint.page = page
	m.maint.okMsg = ""
	m.maint.errMsg = ""
}

// maintFieldLeft triggers the blur-style lookups on the update pages: tabbing
// past a filled key field fetches the current record.
func (m *Model) maintFieldLeft(left int) tea.Cmd {
	mm := &m.maint

	switch mm.page {
	case maintUpdMember:
		if left != 0 {
			return nil
		}
		id := mm.updMember.Value(0)
		if id == "" || id == mm.memberLooked {
			return nil
		}
		mm.memberLooked = id
		mm.member = nil
		return m.dispatch(m.memberInfoCmd(id))

	case maintUpdBook:
		if left != ubFieldSerial {
			return nil
		}
		serial := mm.updBook.Value(ubFieldSerial)
		if serial == "" || serial == mm.bookLooked {
			return nil
		}
		mm.bookLooked = serial
		return m.dispatch(m.bookInfoCmd(serial))
	}
	return nil
}

func (m *Model) cycleMaintPicker() {
	mm := &m.maint
	switch mm.page {
	case maintAddMember:
		mm.plan = (mm.plan + 1) % len(planOptions)
	case maintUpdMember:
		mm.action = (mm.action + 1) % len(actionOptions)
	case maintAddBook:
		mm.bookType = (mm.bookType + 1) % len(bookTypes)
	}
}

func (m *Model) submitMaintenance() tea.Cmd {
	mm := &m.maint
	mm.okMsg = ""

	switch mm.page {
	case maintAddMember:
		form := api.MembershipForm{
			MembershipID: mm.addMember.Value(amFieldID),
			FirstName:    mm.addMember.Value(amFieldFirst),
			LastName:     mm.addMember.Value(amFieldLast),
			Phone:        mm.addMember.Value(amFieldPhone),
			Address:      mm.addMember.Value(amFieldAddress),
			Aadhar:       mm.addMember.Value(amFieldAadhar),
			StartDate:    mm.addMember.Value(amFieldStart),
			Plan:         planOptions[mm.plan].value,
		}
		if form.MembershipID == "" || form.FirstName == "" || form.LastName == "" ||
			form.Phone == "" || form.Address == "" || form.Aadhar == "" || form.StartDate == "" {
			mm.errMsg = "All fields are mandatory."
			return nil
		}
		mm.errMsg = ""
		return m.dispatch(m.addMembershipCmd(form))

	case maintUpdMember:
		id := mm.updMember.Value(0)
		if id == "" {
			mm.errMsg = "Membership ID is mandatory."
			return nil
		}
		mm.errMsg = ""
		return m.dispatch(m.updateMembershipCmd(id, actionOptions[mm.action].value))

	case maintAddBook:
		form := api.BookForm{
			SerialNo:        mm.addBook.Value(abFieldSerial),
			Name:            mm.addBook.Value(abFieldName),
			Author:          mm.addBook.Value(abFieldAuthor),
			Category:        mm.addBook.Value(abFieldCategory),
			ProcurementDate: mm.addBook.Value(abFieldDate),
			Cost:            mm.addBook.Value(abFieldCost),
			Type:            bookTypes[mm.bookType],
		}
		if form.SerialNo == "" || form.Name == "" || form.Author == "" ||
			form.Category == "" || form.ProcurementDate == "" || form.Cost == "" {
			mm.errMsg = "All fields are mandatory."
			return nil
		}
		mm.errMsg = ""
		return m.dispatch(m.addBookCmd(form))

	case maintUpdBook:
		form := api.BookUpdateForm{
			SerialNo:        mm.updBook.Value(ubFieldSerial),
			Name:            mm.updBook.Value(ubFieldName),
			Author:          mm.updBook.Value(ubFieldAuthor),
			Category:        mm.updBook.Value(ubFieldCategory),
			Status:          mm.updBook.Value(ubFieldStatus),
			ProcurementDate: mm.updBook.Value(ubFieldDate),
		}
		if form.SerialNo == "" {
			mm.errMsg = "Serial no is mandatory."
			return nil
		}
		mm.errMsg = ""
		return m.dispatch(m.updateBookCmd(form))
	}
	return nil
}

func (m *Model) onMemberSaved(msg memberSavedMsg) {
	mm := &m.maint
	if m.routeError(msg.err, &mm.errMsg) {
		return
	}
	id := mm.addMember.Value(amFieldID)
	mm.addMember.Reset()
	mm.plan = 0
	mm.okMsg = fmt.Sprintf("Membership %s added.", id)
}

func (m *Model) onMemberInfo(msg memberInfoMsg) {
	mm := &m.maint
	if m.routeError(msg.err, &mm.errMsg) {
		return
	}
	mm.errMsg = ""
	mm.member = msg.member
}

func (m *Model) onMemberUpdated(msg memberUpdatedMsg) {
	mm := &m.maint
	if m.routeError(msg.err, &mm.errMsg) {
		return
	}
	body := fmt.Sprintf("Status: %s", msg.update.Status)
	if msg.update.NewEndDate != "" {
		body = fmt.Sprintf("Status: %s. New end date: %s.", msg.update.Status, msg.update.NewEndDate)
	}
	mm.updMember.Reset()
	mm.member = nil
	mm.memberLooked = ""
	m.showStatus("Membership updated", body, false)
}

func (m *Model) onBookSaved(msg bookSavedMsg) {
	mm := &m.maint
	if m.routeError(msg.err, &mm.errMsg) {
		return
	}
	serial := mm.addBook.Value(abFieldSerial)
	mm.addBook.Reset()
	mm.bookType = 0
	mm.okMsg = fmt.Sprintf("Added %s to the catalog.", serial)

	// New stock changes availability.
	m.avail = newAvailabilityModel()
}

func (m *Model) onBookInfo(msg bookInfoMsg) {
	mm := &m.maint
	if m.routeError(msg.err, &mm.errMsg) {
		return
	}
	item := msg.item
	mm.errMsg = ""
	mm.updBook.SetValue(ubFieldName, item.Name)
	mm.updBook.SetValue(ubFieldAuthor, item.Author)
	mm.updBook.SetValue(ubFieldCategory, item.Category)
	mm.updBook.SetValue(ubFieldStatus, item.Status)
	mm.updBook.SetValue(ubFieldDate, item.ProcurementDate)
}

func (m *Model) onBookUpdated(msg bookUpdatedMsg) {
	mm := &m.maint
	if m.routeError(msg.err, &mm.errMsg) {
		return
	}
	serial := mm.updBook.Value(ubFieldSerial)
	mm.updBook.Reset()
	mm.bookLooked = ""
	m.avail = newAvailabilityModel()
	m.showStatus("Catalog updated", fmt.Sprintf("Updated %s.", serial), false)
}

func (m Model) viewMaintenance() string {
	mm := m.maint

	pages := []struct {
		name string
		page maintPage
	}{
		{"F1 Add membership", maintAddMember},
		{"F2 Update membership", maintUpdMember},
		{"F3 Add book", maintAddBook},
		{"F4 Update book", maintUpdBook},
	}

	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		style := m.styles.NavInactive
		if p.page == mm.page {
			style = m.styles.NavActive
		}
		parts = append(parts, style.Render(p.name))
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n\n")

	switch mm.page {
	case maintAddMember:
		b.WriteString(m.styles.Title.Render("Add membership"))
		b.WriteString("\n\n")
		b.WriteString(mm.addMember.View(m.styles))
		b.WriteString(m.maintPickerRow("Plan", planOptions[mm.plan].label, mm.addMember.focus == amPlanSlot))

	case maintUpdMember:
		b.WriteString(m.styles.Title.Render("Update membership"))
		b.WriteString("\n\n")
		b.WriteString(mm.updMember.View(m.styles))
		if mm.member != nil {
			b.WriteString(m.styles.Label.Render("Member"))
			b.WriteString(m.styles.Text.Render(mm.member.FirstName + " " + mm.member.LastName))
			b.WriteString("\n")
			b.WriteString(m.styles.Label.Render("Current end date"))
			b.WriteString(m.styles.Text.Render(mm.member.EndDate))
			b.WriteString("\n")
			b.WriteString(m.styles.Label.Render("Status"))
			b.WriteString(m.styles.Text.Render(mm.member.Status))
			b.WriteString("\n")
		}
		b.WriteString(m.maintPickerRow("Action", actionOptions[mm.action].label, mm.updMember.focus == 1))

	case maintAddBook:
		b.WriteString(m.styles.Title.Render("Add book or movie"))
		b.WriteString("\n\n")
		b.WriteString(mm.addBook.View(m.styles))
		b.WriteString(m.maintPickerRow("Type", bookTypes[mm.bookType], mm.addBook.focus == abTypeSlot))

	case maintUpdBook:
		b.WriteString(m.styles.Title.Render("Update book or movie"))
		b.WriteString("\n\n")
		b.WriteString(mm.updBook.View(m.styles))
	}

	if mm.okMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Success.Render(mm.okMsg))
		b.WriteString("\n")
	}
	if mm.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Danger.Render(mm.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("tab fields · space cycles pickers · enter submit · esc home"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) maintPickerRow(label, value string, focused bool) string {
	style := m.styles.Text
	if focused {
		style = m.styles.Selected
	}
	return m.styles.Label.Render(label) + style.Render("< "+value+" >") + "\n"
}
