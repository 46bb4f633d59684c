package app

import (
	"context"
	"fmt"

	"github.com/rupam905/libdesk/internal/api"
	"github.com/rupam905/libdesk/internal/config"
	"github.com/rupam905/libdesk/internal/prefs"
	"github.com/rupam905/libdesk/internal/state"
	"github.com/rupam905/libdesk/internal/ui"
)

// Options configure the libdesk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/libdesk/prefs.toml
	ServerURL  string // overrides the configured backend URL
}

// Run boots the desk TUI until the context is cancelled or the operator quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := api.NewClient(cfg.ServerURL, cfg.Timeout())
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	return ui.Run(ctx, ui.Options{
		Client:    client,
		Session:   &state.Session{},
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Timeout:   cfg.Timeout(),
	})
}
