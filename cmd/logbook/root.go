package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/logbook/internal/adapter"
	"github.com/mmcdole/logbook/internal/adapter/tracker"
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/library"
	"github.com/mmcdole/logbook/internal/lookup"
	"github.com/mmcdole/logbook/internal/session"
	"github.com/mmcdole/logbook/internal/store"
	"github.com/mmcdole/logbook/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile   string
	serverURL string

	cfg    *adapter.Config
	logger *slog.Logger
)

// rootCmd launches the interactive tracker when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "logbook",
	Short: "Track anime, manga, books, series and movies from the terminal.",
	Long: `logbook keeps a list of the media you follow on a tracker server:
progress, score, start date, notes, and metadata pulled from an external
lookup service.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/logbook/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "tracker server URL (overrides config)")

	rootCmd.AddCommand(listCmd, configCmd, cacheCmd)
}

// initConfig reads the config file and environment, then sets up logging
func initConfig() error {
	var err error
	cfg, err = adapter.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}

	logger, err = adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)
	return nil
}

// app bundles the wired services
type app struct {
	client   *tracker.Client
	commands *library.Commands
	lookup   *lookup.Service
	cache    *store.LookupCache
}

func wire() (*app, error) {
	client, err := tracker.NewClient(cfg.Server.URL, cfg.Server.Timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker client: %w", err)
	}

	cache, err := store.OpenLookupCache(cfg.Lookup.CacheDir, cfg.Server.URL, cfg.Lookup.CacheTTL)
	if err != nil {
		// Lookups still work uncached
		logger.Warn("lookup cache unavailable", "dir", cfg.Lookup.CacheDir, "error", err)
		cache, _ = store.OpenLookupCache("", cfg.Server.URL, cfg.Lookup.CacheTTL)
	}

	return &app{
		client:   client,
		commands: library.NewCommands(client, client, logger),
		lookup:   lookup.NewService(client, cache, cfg.Lookup.MinQuery, logger),
		cache:    cache,
	}, nil
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		logger.Warn("failed to close lookup cache", "error", err)
	}
}

func runTUI() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("logbook needs an interactive terminal; use 'logbook list' for plain output")
	}

	a, err := wire()
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Info("starting logbook", "version", Version, "server", a.client.BaseURL())

	prefsPath := adapter.DefaultPrefsPath()
	prefs := adapter.LoadPrefs(prefsPath)

	ctrl := session.NewController(prefs.CollapseComments, logger)
	state := library.NewState(ctrl, logger)

	model := tui.NewModel(state, a.commands, a.lookup, tui.Options{
		DefaultCategory: domain.ParseCategory(cfg.UI.DefaultCategory),
		DateFormat:      cfg.UI.DateFormat,
		Debounce:        cfg.Lookup.Debounce,
		Prefs:           prefs,
		PrefsPath:       prefsPath,
		Logger:          logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
