package app

import (
	"context"
	"fmt"

	"github.com/storeops/storeops/internal/api"
	"github.com/storeops/storeops/internal/config"
	"github.com/storeops/storeops/internal/logging"
	"github.com/storeops/storeops/internal/session"
	"github.com/storeops/storeops/internal/ui"
)

// Options configure the storeops application.
type Options struct {
	ConfigPath  string // empty uses default ~/.config/storeops/config.toml
	SessionPath string // empty uses default ~/.config/storeops/session.toml
	APIURL      string // overrides the configured backend URL
	LogFile     string // overrides the configured log file path
}

// Run boots the storeops TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}

	log, closeLog, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog.Close()

	sessions, err := session.Open(opts.SessionPath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	client, err := api.NewClient(cfg.APIURL, sessions, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	log.Info(ctx, "starting", "api_url", cfg.APIURL, "authenticated", sessions.Authenticated())

	return ui.Run(ui.Options{
		Context:  ctx,
		Backend:  client,
		Sessions: sessions,
		Config:   cfg,
		Logger:   log,
	})
}
