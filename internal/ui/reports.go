package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rupam905/libdesk/internal/prefs"
)

// reportDef names a backend report and the columns worth showing for it.
// Rows come back as raw maps so new backend fields never break the table.
type reportDef struct {
	name    string
	title   string
	columns []string
}

var reportDefs = []reportDef{
	{"books", "Master list of books", []string{"serial_no", "name", "author", "category", "status", "cost", "procurement_date"}},
	{"movies", "Master list of movies", []string{"serial_no", "name", "author", "category", "status", "cost", "procurement_date"}},
	{"memberships", "Master list of memberships", []string{"membership_id", "first_name", "last_name", "phone", "status", "end_date", "pending_fine"}},
	{"active-issues", "Active issues", []string{"issue_id", "membership_id", "serial_no", "book_name", "issue_date", "planned_return"}},
	{"overdue", "Overdue returns", []string{"issue_id", "membership_id", "serial_no", "book_name", "planned_return", "fine_amount"}},
	{"pending-fines", "Issues with pending fines", []string{"issue_id", "membership_id", "book_name", "fine_amount", "planned_return"}},
}

type reportsModel struct {
	cursor  int
	current string
	table   table.Model
	hasData bool
	loaded  bool
	errMsg  string
	width   int
	height  int
}

func newReportsModel(defaultReport string) reportsModel {
	r := reportsModel{width: 80, height: 24}
	for i, def := range reportDefs {
		if def.name == defaultReport {
			r.cursor = i
		}
	}
	return r
}

func (r *reportsModel) resize(width, height int) {
	if width > 0 {
		r.width = width
	}
	if height > 0 {
		r.height = height
	}
	if r.loaded {
		r.table.SetHeight(r.tableHeight())
	}
}

func (r *reportsModel) tableHeight() int {
	h := r.height - 10
	if h < 4 {
		h = 4
	}
	return h
}

func (m *Model) openReports() tea.Cmd {
	m.section = SectionReports
	def := reportDefs[m.reports.cursor]
	return m.dispatch(m.loadReportCmd(def.name))
}

func (m *Model) updateReports(msg tea.KeyMsg) tea.Cmd {
	r := &m.reports

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Home):
		m.section = SectionHome
		return nil

	case key.Matches(msg, m.keys.NextField):
		r.cursor = (r.cursor + 1) % len(reportDefs)
		return nil

	case key.Matches(msg, m.keys.PrevField):
		r.cursor = (r.cursor - 1 + len(reportDefs)) % len(reportDefs)
		return nil

	case key.Matches(msg, m.keys.Submit):
		return m.dispatch(m.loadReportCmd(reportDefs[r.cursor].name))
	}

	if r.loaded {
		var cmd tea.Cmd
		r.table, cmd = r.table.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) onReportLoaded(msg reportLoadedMsg) {
	r := &m.reports
	if m.routeError(msg.err, &r.errMsg) {
		return
	}

	def := reportDefByName(msg.name)
	r.current = msg.name
	r.errMsg = ""
	r.hasData = len(msg.rows) > 0
	r.loaded = true
	r.table = m.buildReportTable(def, msg.rows)

	// Remember the last opened report as the default for next session.
	if m.prefs.DefaultReport != msg.name {
		m.prefs.DefaultReport = msg.name
		_ = prefs.Save(m.prefsPath, m.prefs)
	}
}

func reportDefByName(name string) reportDef {
	for _, def := range reportDefs {
		if def.name == name {
			return def
		}
	}
	return reportDefs[0]
}

func (m Model) buildReportTable(def reportDef, data []map[string]any) table.Model {
	columns := make([]table.Column, len(def.columns))
	for i, col := range def.columns {
		columns[i] = table.Column{Title: columnTitle(col), Width: columnWidth(col)}
	}

	rows := make([]table.Row, len(data))
	for i, raw := range data {
		row := make(table.Row, len(def.columns))
		for j, col := range def.columns {
			row[j] = formatCell(raw[col])
		}
		rows[i] = row
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.reports.tableHeight()),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(lipgloss.Color(m.theme.Accent)).
		BorderForeground(lipgloss.Color(m.theme.Faint)).
		Bold(true)
	styles.Selected = styles.Selected.
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Foreground(lipgloss.Color(m.theme.SelectionText))
	t.SetStyles(styles)
	return t
}

func columnTitle(col string) string {
	words := strings.Split(col, "_")
	for i, w := range words {
		if w == "id" || w == "no" {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func columnWidth(col string) int {
	switch col {
	case "name", "book_name", "author", "address":
		return 28
	case "serial_no", "membership_id", "category":
		return 14
	default:
		return 12
	}
}

// formatCell renders a raw JSON value for table display.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func (m Model) viewReports() string {
	r := m.reports

	parts := make([]string, 0, len(reportDefs))
	for i, def := range reportDefs {
		style := m.styles.NavInactive
		if i == r.cursor {
			style = m.styles.NavActive
		}
		parts = append(parts, style.Render(def.name))
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("\n\n")

	if r.errMsg != "" {
		b.WriteString(m.styles.Danger.Render(r.errMsg))
		b.WriteString("\n")
		return b.String()
	}
	if !r.loaded {
		b.WriteString(m.styles.Muted.Render("Loading report..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.styles.Title.Render(reportDefByName(r.current).title))
	b.WriteString("\n\n")

	if !r.hasData {
		b.WriteString(m.styles.Muted.Render("No data available."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(r.table.View())
	b.WriteString("\n")
	return b.String()
}
