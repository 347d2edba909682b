// Package config provides configuration types and defaults for quickactions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/zjrosen/quickactions/internal/log"
)

// Config holds all configuration options for quickactions.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	UI       UIConfig       `mapstructure:"ui" yaml:"ui"`
	Palette  PaletteConfig  `mapstructure:"palette" yaml:"palette"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch"`
	Tracing  TracingConfig  `mapstructure:"tracing" yaml:"tracing"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// DatabaseConfig locates the transaction store.
type DatabaseConfig struct {
	// Path to the sqlite file. A leading ~ is expanded.
	// Default: ~/.quickactions/transactions.db
	Path string `mapstructure:"path" yaml:"path"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	Theme         string `mapstructure:"theme" yaml:"theme"`                     // "dark" (default) or "light"
	ShowStatusBar bool   `mapstructure:"show_status_bar" yaml:"show_status_bar"` // Show status bar at bottom

	// ToastDuration is how long notifications stay up. Zero keeps them until replaced.
	ToastDuration time.Duration `mapstructure:"toast_duration" yaml:"toast_duration"`
}

// Themes the UI can switch between.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// PaletteConfig holds command palette options.
type PaletteConfig struct {
	LockWindow      time.Duration `mapstructure:"lock_window" yaml:"lock_window"`             // keyboard priority over hover
	MaxRecent       int           `mapstructure:"max_recent" yaml:"max_recent"`               // 1..5
	MaxVisibleItems int           `mapstructure:"max_visible_items" yaml:"max_visible_items"` // rows before scrolling
	Placeholder     string        `mapstructure:"placeholder" yaml:"placeholder"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"` // dynamic slice memoization
}

// WatchConfig controls reloading recent transactions when the database changes.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/quickactions/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// LogConfig configures the debug log.
type LogConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // empty disables file logging unless --debug
}

// MaxRecentLimit caps the number of recent transactions shown in the palette.
const MaxRecentLimit = 5

// DefaultDatabasePath returns ~/.quickactions/transactions.db, or a relative
// path when the home directory is unavailable.
func DefaultDatabasePath() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".quickactions", "transactions.db")
	}
	return filepath.Join(home, ".quickactions", "transactions.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/quickactions/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quickactions", "traces", "traces.jsonl")
}

// ExpandPath expands a leading ~ in path.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", path, err)
	}
	return expanded, nil
}

// DatabasePath returns the configured database path with ~ expanded.
func (c Config) DatabasePath() (string, error) {
	if c.Database.Path == "" {
		return DefaultDatabasePath(), nil
	}
	return ExpandPath(c.Database.Path)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Database: DatabaseConfig{
			Path: DefaultDatabasePath(),
		},
		UI: UIConfig{
			Theme:         ThemeDark,
			ShowStatusBar: true,
			ToastDuration: 3 * time.Second,
		},
		Palette: PaletteConfig{
			LockWindow:      600 * time.Millisecond,
			MaxRecent:       MaxRecentLimit,
			MaxVisibleItems: 10,
			Placeholder:     "Type a command or search...",
			CacheTTL:        10 * time.Minute,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 250 * time.Millisecond,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from home dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	switch c.UI.Theme {
	case "", ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("ui.theme must be %q or %q, got %q", ThemeDark, ThemeLight, c.UI.Theme)
	}
	if c.UI.ToastDuration < 0 {
		return fmt.Errorf("ui.toast_duration must not be negative, got %s", c.UI.ToastDuration)
	}
	if err := ValidatePalette(c.Palette); err != nil {
		return err
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return ValidateTracing(c.Tracing)
}

// ValidatePalette checks palette configuration for errors.
// Zero values are valid and fall back to defaults.
func ValidatePalette(p PaletteConfig) error {
	if p.LockWindow < 0 {
		return fmt.Errorf("palette.lock_window must not be negative, got %s", p.LockWindow)
	}
	if p.CacheTTL < 0 {
		return fmt.Errorf("palette.cache_ttl must not be negative, got %s", p.CacheTTL)
	}
	if p.MaxRecent < 1 || p.MaxRecent > MaxRecentLimit {
		return fmt.Errorf("palette.max_recent must be between 1 and %d, got %d", MaxRecentLimit, p.MaxRecent)
	}
	if p.MaxVisibleItems < 0 {
		return fmt.Errorf("palette.max_visible_items must not be negative, got %d", p.MaxVisibleItems)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# quickactions configuration

# Transaction store
database:
  # path: ~/.quickactions/transactions.db

# UI settings
ui:
  theme: dark              # "dark" (default) or "light"; "Toggle Theme" rewrites this
  show_status_bar: true    # Show status bar at bottom
  toast_duration: 3s       # How long notifications stay up; 0 keeps them until replaced

# Command palette (ctrl+k)
palette:
  lock_window: 600ms       # After an arrow key, hover cannot steal the highlight for this long
  max_recent: 5            # Recent transactions listed in the palette (1-5)
  max_visible_items: 10    # Rows shown before the list scrolls
  placeholder: "Type a command or search..."
  cache_ttl: 10m           # How long a derived recent list is reused

# Reload recent transactions when the database changes
watch:
  enabled: true
  debounce: 250ms

# Distributed tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/quickactions/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

# Debug log (also enabled with --debug or QUICKACTIONS_DEBUG=1)
# log:
#   path: debug.log
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
