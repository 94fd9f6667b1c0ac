package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/andy/rosterdash/internal/config"
	"github.com/andy/rosterdash/internal/identity"
	"github.com/andy/rosterdash/internal/metrics"
	"github.com/andy/rosterdash/internal/remote"
	"github.com/andy/rosterdash/internal/service"
	"github.com/andy/rosterdash/internal/session"
)

// App is the dependency injection container for all application components
type App struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Metrics    *metrics.Metrics

	// Roster
	IDs    identity.Generator
	Remote *remote.Client
	Store  *service.RosterStore

	Session session.Store

	logFile io.Closer
}

// Options controls how New builds the container
type Options struct {
	// ConfigPath overrides config.DefaultConfigPath when set
	ConfigPath string

	// LogToFile sends diagnostics to the configured log file instead of
	// stderr, for commands that take over the terminal
	LogToFile bool
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Building the logger
// 3. Creating the remote client and roster store
// 4. Opening the session store
//
// The roster store is returned uninitialized; callers decide when to load it.
func New(ctx context.Context, opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var (
		out     io.Writer = os.Stderr
		logFile io.Closer
	)
	if opts.LogToFile && cfg.Log.File != "" {
		// Ensure the log directory exists
		if err := cfg.EnsureDirectories(); err != nil {
			return nil, fmt.Errorf("failed to create directories: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, logFile = f, f
	}

	a := NewWithConfig(ctx, cfg, out)
	a.ConfigPath = path
	a.logFile = logFile
	return a, nil
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config, logOut io.Writer) *App {
	logger := NewLogger(logOut, cfg.Log)
	m := metrics.New()
	ids := identity.NewULIDGenerator()

	rc := remote.New(cfg.Remote.BaseURL, cfg.Remote.Timeout,
		remote.WithLogger(logger.With("component", "remote")),
	)

	store := service.NewRosterStore(rc, ids,
		service.WithStoreLogger(logger.With("component", "store")),
		service.WithSyncObserver(m),
		service.WithPageSize(cfg.Dashboard.PageSize),
	)

	logger.DebugContext(ctx, "app initialized", "remote", cfg.Remote.BaseURL)

	return &App{
		Config:     cfg,
		ConfigPath: config.DefaultConfigPath(),
		Logger:     logger,
		Metrics:    m,
		IDs:        ids,
		Remote:     rc,
		Store:      store,
		Session:    session.NewStore(),
	}
}

// Close waits for in-flight remote calls and releases the log file
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Wait()
	}
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(a.ConfigPath)
}
