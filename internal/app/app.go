package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/linkcheck/internal/config"
	"github.com/five82/linkcheck/internal/linkcheck"
	"github.com/five82/linkcheck/internal/logging"
	"github.com/five82/linkcheck/internal/prefs"
	"github.com/five82/linkcheck/internal/state"
	"github.com/five82/linkcheck/internal/submit"
	"github.com/five82/linkcheck/internal/ui"
)

// Options configure a linkcheck session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/linkcheck/prefs.toml
	Verbose    bool   // forces debug logging

	// View seeds the results address, e.g. "/?filter_status=broken".
	View string
	// URL and Depth prefill the form. A URL is checked right away.
	URL   string
	Depth string
}

// Env is the wired set of dependencies shared by the TUI and the check
// command.
type Env struct {
	Config     config.Config
	Logger     logging.Logger
	Client     *linkcheck.Client
	Store      *state.Store
	Controller *submit.Controller
}

// Setup loads configuration and wires the logger, backend client, result
// store and submission controller.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, OutputPaths: []string{cfg.LogFile}})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := linkcheck.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init backend client: %w", err)
	}

	store := &state.Store{}
	controller := submit.New(client, store, logger, cfg.RequestTimeout)

	logger.Debug("configuration loaded",
		logging.String("api_url", client.BaseURL()),
		logging.Duration("request_timeout", cfg.RequestTimeout),
		logging.Int("page_size", cfg.PageSize),
	)

	return &Env{
		Config:     cfg,
		Logger:     logger,
		Client:     client,
		Store:      store,
		Controller: controller,
	}, nil
}

// Close flushes the logger.
func (e *Env) Close() {
	if e == nil || e.Logger == nil {
		return
	}
	_ = e.Logger.Sync()
}

// Run boots the linkcheck TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = config.DefaultPrefsPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		env.Logger.Warn("preferences unreadable, using defaults",
			logging.String("path", prefsPath),
			logging.Err(err),
		)
	}

	env.Logger.Info("starting ui", logging.String("api_url", env.Client.BaseURL()))

	uiOpts := ui.Options{
		Context:       ctx,
		Controller:    env.Controller,
		Health:        env.Client,
		BackendURL:    env.Client.BaseURL(),
		Logger:        env.Logger,
		PageSize:      env.Config.PageSize,
		PrefsPath:     prefsPath,
		Prefs:         userPrefs,
		DarkMode:      userPrefs.ResolveDarkMode(lipgloss.HasDarkBackground),
		InitialView:   opts.View,
		InitialURL:    opts.URL,
		InitialDepth:  opts.Depth,
		SubmitOnStart: opts.URL != "",
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
