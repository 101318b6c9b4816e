// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/taskpilot/internal/dateutil"
	"github.com/javiermolinar/taskpilot/internal/density"
	"github.com/javiermolinar/taskpilot/internal/sorter"
	"github.com/javiermolinar/taskpilot/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	Density   DensityConfig  `toml:"density"`
	Reminders ReminderConfig `toml:"reminders"`
	Listing   ListingConfig  `toml:"listing"`
	Storage   StorageConfig  `toml:"storage"`
	Log       LogConfig      `toml:"log"`
	UI        UIConfig       `toml:"ui"`
}

// DensityConfig holds workload analysis settings.
type DensityConfig struct {
	BucketWidth   string  `toml:"bucket_width"`   // e.g., "1h", "1d"
	BusyThreshold float64 `toml:"busy_threshold"` // bucket load above which a slot is busy
	Mode          string  `toml:"mode"`           // "unit" or "weight"
	Span          string  `toml:"span"`           // how far ahead density and report look
}

// ReminderConfig holds reminder settings.
type ReminderConfig struct {
	Window    string `toml:"window"`     // e.g., "24h"
	NextCount int    `toml:"next_count"` // how many upcoming tasks to show
}

// ListingConfig holds the default ordering for task listings.
type ListingConfig struct {
	SortKey string `toml:"sort_key"`
	Order   string `toml:"order"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text", "json", "logfmt"
}

// UIConfig holds interactive menu settings.
type UIConfig struct {
	Theme string `toml:"theme"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Density: DensityConfig{
			BucketWidth:   "1h",
			BusyThreshold: 2,
			Mode:          string(density.ModeUnit),
			Span:          "168h",
		},
		Reminders: ReminderConfig{
			Window:    "24h",
			NextCount: 5,
		},
		Listing: ListingConfig{
			SortKey: string(sorter.KeyDeadline),
			Order:   string(sorter.Ascending),
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskpilot.db"
	}
	return filepath.Join(home, ".local", "share", "taskpilot", "taskpilot.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "taskpilot", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Density overrides
	if v := os.Getenv("TASKPILOT_BUCKET_WIDTH"); v != "" {
		cfg.Density.BucketWidth = v
	}
	if v := os.Getenv("TASKPILOT_BUSY_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TASKPILOT_BUSY_THRESHOLD: %w", err)
		}
		cfg.Density.BusyThreshold = f
	}
	if v := os.Getenv("TASKPILOT_DENSITY_MODE"); v != "" {
		cfg.Density.Mode = v
	}
	if v := os.Getenv("TASKPILOT_DENSITY_SPAN"); v != "" {
		cfg.Density.Span = v
	}

	// Reminder overrides
	if v := os.Getenv("TASKPILOT_REMINDER_WINDOW"); v != "" {
		cfg.Reminders.Window = v
	}
	if v := os.Getenv("TASKPILOT_NEXT_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TASKPILOT_NEXT_COUNT: %w", err)
		}
		cfg.Reminders.NextCount = n
	}

	// Listing overrides
	if v := os.Getenv("TASKPILOT_SORT_KEY"); v != "" {
		cfg.Listing.SortKey = v
	}
	if v := os.Getenv("TASKPILOT_SORT_ORDER"); v != "" {
		cfg.Listing.Order = v
	}

	// Storage overrides
	if v := os.Getenv("TASKPILOT_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	// Log overrides
	if v := os.Getenv("TASKPILOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TASKPILOT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("TASKPILOT_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	width, err := parsePositive(c.Density.BucketWidth, "bucket_width")
	if err != nil {
		return err
	}
	span, err := parsePositive(c.Density.Span, "span")
	if err != nil {
		return err
	}
	if span < width {
		return errors.New("span must be at least one bucket_width")
	}
	if c.Density.BusyThreshold < 0 {
		return fmt.Errorf("busy_threshold must not be negative, got %v", c.Density.BusyThreshold)
	}
	if _, err := density.ParseMode(c.Density.Mode); err != nil {
		return err
	}

	if _, err := parsePositive(c.Reminders.Window, "window"); err != nil {
		return err
	}
	if c.Reminders.NextCount < 1 {
		return fmt.Errorf("next_count must be at least 1, got %d", c.Reminders.NextCount)
	}

	if _, err := sorter.ParseKey(c.Listing.SortKey); err != nil {
		return err
	}
	if _, err := sorter.ParseOrder(c.Listing.Order); err != nil {
		return err
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s (available: %s)", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	return nil
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validFormats = map[string]bool{
	"text":   true,
	"json":   true,
	"logfmt": true,
}

func parsePositive(s, field string) (time.Duration, error) {
	d, err := dateutil.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", field, s)
	}
	return d, nil
}

// BucketWidth returns the parsed density bucket width.
func (c *Config) BucketWidth() time.Duration {
	d, _ := dateutil.ParseDuration(c.Density.BucketWidth)
	return d
}

// DensitySpan returns the parsed density look-ahead span.
func (c *Config) DensitySpan() time.Duration {
	d, _ := dateutil.ParseDuration(c.Density.Span)
	return d
}

// ReminderWindow returns the parsed reminder window.
func (c *Config) ReminderWindow() time.Duration {
	d, _ := dateutil.ParseDuration(c.Reminders.Window)
	return d
}

// DensityMode returns the configured density mode.
func (c *Config) DensityMode() density.Mode {
	m, _ := density.ParseMode(c.Density.Mode)
	return m
}

// SortKey returns the configured listing key.
func (c *Config) SortKey() sorter.Key {
	k, _ := sorter.ParseKey(c.Listing.SortKey)
	return k
}

// SortOrder returns the configured listing order.
func (c *Config) SortOrder() sorter.Order {
	o, _ := sorter.ParseOrder(c.Listing.Order)
	return o
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
