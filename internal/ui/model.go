package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/prefs"
	"github.com/rupam905/libdesk/internal/state"
)

// Section identifies the top-level view.
type Section int

const (
	SectionLogin Section = iota
	SectionHome
	SectionTransaction
	SectionStatus
	SectionReports
	SectionMaintenance
)

// TxnPage identifies the page within the transaction section.
type TxnPage int

const (
	PageAvailability TxnPage = iota
	PageIssue
	PageReturn
	PageFine
)

// Model is the root bubbletea model for the desk UI. All workflow state
// lives here and in the session; commands only talk to the server.
type Model struct {
	client    api.Service
	session   *state.Session
	keys      KeyMap
	theme     Theme
	styles    Styles
	prefs     prefs.Prefs
	prefsPath string
	timeout   time.Duration

	// now is injectable so fine arithmetic is testable against fixed dates.
	now func() time.Time

	width  int
	height int

	// busy is true while a request is in flight. Keystrokes other than
	// quit are dropped so no control can be submitted twice.
	busy    bool
	spinner spinner.Model

	section Section
	page    TxnPage

	statusTitle string
	statusBody  string
	statusErr   bool

	login   loginModel
	avail   availabilityModel
	issue   issueModel
	ret     returnModel
	fine    fineModel
	reports reportsModel
	maint   maintenanceModel
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reports.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateAsync(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Theme):
		m.setTheme(NextTheme(m.theme.Name))
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		if m.section != SectionLogin && !m.busy {
			return m, m.dispatch(m.logoutCmd())
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch m.section {
	case SectionLogin:
		return m, m.updateLogin(msg)
	case SectionHome:
		return m, m.updateHome(msg)
	case SectionTransaction:
		return m, m.updateTransaction(msg)
	case SectionStatus:
		return m, m.updateStatus(msg)
	case SectionReports:
		return m, m.updateReports(msg)
	case SectionMaintenance:
		return m, m.updateMaintenance(msg)
	}
	return m, nil
}

func (m Model) updateAsync(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case loginResultMsg, loggedOutMsg, workingSetMsg, issueSubmittedMsg,
		openIssuesLoadedMsg, returnResolvedMsg, returnStartedMsg,
		returnCommittedMsg, reportLoadedMsg, memberSavedMsg, memberInfoMsg,
		memberUpdatedMsg, bookSavedMsg, bookInfoMsg, bookUpdatedMsg:
		m.busy = false
	}

	switch msg := msg.(type) {
	case loginResultMsg:
		return m, m.onLoginResult(msg)
	case loggedOutMsg:
		m.onLoggedOut()
		return m, nil
	case workingSetMsg:
		m.onWorkingSet(msg)
		return m, nil
	case filterTickMsg:
		m.onFilterTick(msg)
		return m, nil
	case issueSubmittedMsg:
		m.onIssueSubmitted(msg)
		return m, nil
	case openIssuesLoadedMsg:
		return m, m.onOpenIssuesLoaded(msg)
	case noticeExpiredMsg:
		m.onNoticeExpired(msg)
		return m, nil
	case returnResolvedMsg:
		m.onReturnResolved(msg)
		return m, nil
	case returnStartedMsg:
		m.onReturnStarted(msg)
		return m, nil
	case returnCommittedMsg:
		m.onReturnCommitted(msg)
		return m, nil
	case reportLoadedMsg:
		m.onReportLoaded(msg)
		return m, nil
	case memberSavedMsg:
		m.onMemberSaved(msg)
		return m, nil
	case memberInfoMsg:
		m.onMemberInfo(msg)
		return m, nil
	case memberUpdatedMsg:
		m.onMemberUpdated(msg)
		return m, nil
	case bookSavedMsg:
		m.onBookSaved(msg)
		return m, nil
	case bookInfoMsg:
		m.onBookInfo(msg)
		return m, nil
	case bookUpdatedMsg:
		m.onBookUpdated(msg)
		return m, nil
	}
	return m, nil
}

// dispatch marks a request in flight and starts the spinner alongside it.
func (m *Model) dispatch(cmd tea.Cmd) tea.Cmd {
	m.busy = true
	return tea.Batch(m.spinner.Tick, cmd)
}

// routeError applies the global error policy. Expired sessions go back to
// the login view, forbidden actions land on an access-denied status page,
// and everything else surfaces inline on the page that caused it.
func (m *Model) routeError(err error, inline *string) bool {
	if err == nil {
		return false
	}
	if api.IsUnauthorized(err) {
		m.resetWorkflows()
		m.session.Reset()
		m.login = newLoginModel()
		m.login.info = "Session expired. Please sign in again."
		m.section = SectionLogin
		return true
	}
	if api.IsForbidden(err) {
		m.showStatus("Access denied",
			api.Detail(err, "You do not have permission to perform this action."), true)
		return true
	}
	if inline != nil {
		*inline = api.Detail(err, "Server error.")
	}
	return true
}

func (m *Model) showStatus(title, body string, isErr bool) {
	m.statusTitle = title
	m.statusBody = body
	m.statusErr = isErr
	m.section = SectionStatus
}

// resetWorkflows drops all in-progress page state, including any active
// return context.
func (m *Model) resetWorkflows() {
	m.session.ClearReturn()
	m.avail = newAvailabilityModel()
	m.issue = newIssueModel()
	m.ret = newReturnModel()
	m.fine = newFineModel()
	m.page = PageAvailability
}

func (m *Model) setTheme(name string) {
	m.theme = GetTheme(name)
	m.styles = m.theme.Styles()
	m.prefs.Theme = m.theme.Name
	// Preference persistence is best effort.
	_ = prefs.Save(m.prefsPath, m.prefs)
}

func (m Model) todayStr() string {
	return m.now().Format(api.DateLayout)
}

func (m *Model) updateHome(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Transactions):
		return m.openTransactions()
	case key.Matches(msg, m.keys.Reports):
		return m.openReports()
	case key.Matches(msg, m.keys.Maintenance):
		if !m.session.IsAdmin() {
			m.showStatus("Access denied", "Maintenance requires an admin login.", true)
			return nil
		}
		m.section = SectionMaintenance
		return nil
	}
	return nil
}

func (m *Model) openTransactions() tea.Cmd {
	m.section = SectionTransaction
	m.page = PageAvailability
	if !m.avail.loaded {
		return m.dispatch(m.loadCatalogCmd())
	}
	return nil
}

func (m *Model) updateTransaction(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Page1):
		m.page = PageAvailability
		return nil
	case key.Matches(msg, m.keys.Page2):
		m.page = PageIssue
		return nil
	case key.Matches(msg, m.keys.Page3):
		m.page = PageReturn
		return nil
	case key.Matches(msg, m.keys.Page4):
		m.page = PageFine
		return nil
	}

	switch m.page {
	case PageAvailability:
		return m.updateAvailability(msg)
	case PageIssue:
		return m.updateIssue(msg)
	case PageReturn:
		return m.updateReturn(msg)
	case PageFine:
		return m.updateFine(msg)
	}
	return nil
}

func (m *Model) updateStatus(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Home), key.Matches(msg, m.keys.Back):
		m.section = SectionHome
	case key.Matches(msg, m.keys.Transactions):
		return m.openTransactions()
	}
	return nil
}

func (m Model) View() string {
	if m.section == SectionLogin {
		return m.viewLogin()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch m.section {
	case SectionHome:
		b.WriteString(m.viewHome())
	case SectionTransaction:
		b.WriteString(m.viewTransaction())
	case SectionStatus:
		b.WriteString(m.viewStatus())
	case SectionReports:
		b.WriteString(m.viewReports())
	case SectionMaintenance:
		b.WriteString(m.viewMaintenance())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	logo := m.styles.Logo.Render(" libdesk ")

	tabs := []struct {
		name    string
		section Section
	}{
		{"Home", SectionHome},
		{"Transactions", SectionTransaction},
		{"Reports", SectionReports},
		{"Maintenance", SectionMaintenance},
	}

	parts := []string{logo}
	for _, tab := range tabs {
		style := m.styles.NavInactive
		if tab.section == m.section {
			style = m.styles.NavActive
		}
		parts = append(parts, style.Render(tab.name))
	}

	who := ""
	if user, ok := m.session.User(); ok {
		who = m.styles.Muted.Render("  " + user.Username + " (" + user.Role + ")")
	}
	busy := ""
	if m.busy {
		busy = "  " + m.spinner.View()
	}

	return m.styles.Header.Render(strings.Join(parts, " ") + who + busy)
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Main page"))
	b.WriteString("\n\n")
	b.WriteString("  t  Transactions\n")
	b.WriteString("  r  Reports\n")
	if m.session.IsAdmin() {
		b.WriteString("  m  Maintenance\n")
	} else {
		b.WriteString(m.styles.Disabled.Render("  m  Maintenance (admin only)"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewTransaction() string {
	pages := []struct {
		name string
		page TxnPage
	}{
		{"F1 Availability", PageAvailability},
		{"F2 Issue", PageIssue},
		{"F3 Return", PageReturn},
		{"F4 Fine", PageFine},
	}

	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		style := m.styles.NavInactive
		if p.page == m.page {
			style = m.styles.NavActive
		}
		parts = append(parts, style.Render(p.name))
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n\n")

	switch m.page {
	case PageAvailability:
		b.WriteString(m.viewAvailability())
	case PageIssue:
		b.WriteString(m.viewIssue())
	case PageReturn:
		b.WriteString(m.viewReturn())
	case PageFine:
		b.WriteString(m.viewFine())
	}
	return b.String()
}

func (m Model) viewStatus() string {
	var b strings.Builder
	title := m.styles.Success
	if m.statusErr {
		title = m.styles.Danger
	}
	b.WriteString(title.Render(m.statusTitle))
	b.WriteString("\n\n")
	if m.statusBody != "" {
		b.WriteString(m.styles.Text.Render(m.statusBody))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Muted.Render("h home · t transactions"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewFooter() string {
	help := ""
	switch m.section {
	case SectionHome:
		help = "t/r/m navigate · ctrl+t theme · ctrl+q logout · ctrl+c quit"
	case SectionTransaction:
		help = "F1-F4 pages · tab fields · enter submit · esc back · ctrl+q logout"
	case SectionStatus:
		help = "h home · t transactions · ctrl+q logout"
	case SectionReports:
		help = "tab report · enter load · ↑/↓ scroll · esc back · ctrl+q logout"
	case SectionMaintenance:
		help = "F1-F4 pages · tab fields · enter submit · esc back"
	}
	return m.styles.Footer.Render(help)
}

var _ tea.Model = Model{}
