package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/prefs"
	"github.com/rupam905/libdesk/internal/state"
)

// Options configures the desk UI.
type Options struct {
	Client    api.Service
	Session   *state.Session
	Prefs     prefs.Prefs
	PrefsPath string
	Timeout   time.Duration

	// Now overrides the clock, mainly for tests. Defaults to time.Now.
	Now func() time.Time
}

// New builds the root model. The UI starts on the login view.
func New(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	theme := GetTheme(opts.Prefs.Theme)
	styles := theme.Styles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Accent

	m := Model{
		client:    opts.Client,
		session:   opts.Session,
		keys:      DefaultKeyMap(),
		theme:     theme,
		styles:    styles,
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
		timeout:   timeout,
		now:       now,
		spinner:   sp,
		section:   SectionLogin,
	}
	m.login = newLoginModel()
	m.avail = newAvailabilityModel()
	m.issue = newIssueModel()
	m.ret = newReturnModel()
	m.fine = newFineModel()
	m.reports = newReportsModel(opts.Prefs.DefaultReport)
	m.maint = newMaintenanceModel()
	return m
}

// Run starts the UI and blocks until the operator quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
