package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/quickactions/internal/app"
	"github.com/zjrosen/quickactions/internal/config"
	"github.com/zjrosen/quickactions/internal/infrastructure/sqlite"
	"github.com/zjrosen/quickactions/internal/log"
	"github.com/zjrosen/quickactions/internal/tracing"
	"github.com/zjrosen/quickactions/internal/watcher"
)

func init() {
	// Query the terminal background before any program starts so the OSC 11
	// reply does not land in the search field.
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".quickactions/config.yaml"
	debugEnv        = "QUICKACTIONS_DEBUG"
	defaultLogPath  = "debug.log"
)

var (
	version    = "dev"
	cfgFile    string
	dbFlag     string
	debugFlag  bool
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "quickactions",
	Short:   "A personal finance TUI with a ctrl+k command palette",
	Long:    `A terminal user interface for recent transactions, driven by a keyboard and mouse command palette.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Validate(cfg)
	},
	RunE:         runApp,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .quickactions/config.yaml, then ~/.config/quickactions/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "",
		"path to the transactions database (default: ~/.quickactions/transactions.db)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also QUICKACTIONS_DEBUG=1)")

	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))
}

// userConfigPath returns ~/.config/quickactions/config.yaml.
func userConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return localConfigPath
	}
	return filepath.Join(home, ".config", "quickactions", "config.yaml")
}

func initConfig() {
	var err error
	cfg, configPath, err = loadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
}

// loadConfig reads the first config file found into defaults. When none
// exists a commented default is written to the user config path.
func loadConfig(v *viper.Viper, explicit string) (config.Config, string, error) {
	setDefaults(v, config.Defaults())

	path := explicit
	if path == "" {
		path = userConfigPath()
		if _, err := os.Stat(localConfigPath); err == nil {
			path = localConfigPath
		}
	}
	v.SetConfigFile(path)

	var readErr error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case explicit == "" && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)):
			if writeErr := config.WriteDefaultConfig(path); writeErr != nil {
				readErr = writeErr
			} else {
				readErr = v.ReadInConfig()
			}
		default:
			readErr = fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Defaults(), path, fmt.Errorf("decoding config: %w", err)
	}
	return c, path, readErr
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.toast_duration", d.UI.ToastDuration)
	v.SetDefault("palette.lock_window", d.Palette.LockWindow)
	v.SetDefault("palette.max_recent", d.Palette.MaxRecent)
	v.SetDefault("palette.max_visible_items", d.Palette.MaxVisibleItems)
	v.SetDefault("palette.placeholder", d.Palette.Placeholder)
	v.SetDefault("palette.cache_ttl", d.Palette.CacheTTL)
	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("log.path", d.Log.Path)
}

// debugEnabled reports whether --debug or QUICKACTIONS_DEBUG asks for a log.
func debugEnabled() bool {
	return debugFlag || os.Getenv(debugEnv) != ""
}

// startLogging installs the debug logger when requested.
func startLogging() (func(), error) {
	if !debugEnabled() {
		return func() {}, nil
	}
	path := cfg.Log.Path
	if path == "" {
		path = defaultLogPath
	}
	cleanup, err := log.InitWithTeaLog(path, "quickactions")
	if err != nil {
		return nil, fmt.Errorf("starting debug log: %w", err)
	}
	log.Info(log.CatConfig, "config loaded", "path", configPath)
	return cleanup, nil
}

// openDB opens the configured database.
func openDB() (*sqlite.DB, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	db, err := sqlite.NewDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return db, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	stopLog, err := startLogging()
	if err != nil {
		return err
	}
	defer stopLog()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	provider, err := tracing.NewProvider(tracing.FromConfig(cfg.Tracing))
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "shutting down tracing", err)
		}
	}()

	var changes <-chan struct{}
	if cfg.Watch.Enabled {
		w, err := watcher.New(watcher.Config{DBPath: db.Path(), Debounce: cfg.Watch.Debounce})
		if err == nil {
			changes, err = w.Start()
		}
		if err != nil {
			// The app works without live reload.
			log.Warn(log.CatWatcher, "file watcher disabled", "error", err)
		}
		if w != nil {
			defer func() { _ = w.Stop() }()
		}
	}

	zone.NewGlobal()
	model := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Repository: db.Transactions(),
		Changes:    changes,
		Tracer:     provider.Tracer(),
		Debug:      debugEnabled(),
	})
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
