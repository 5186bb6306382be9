// Package config handles configuration file loading and parsing.
//
// Precedence, lowest first: built-in defaults, the TOML file, environment
// variables (AUTOWRITER_*, optionally seeded from .env files), CLI flags.
// Flags are applied by the caller after Load returns.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/riordanpawley/autowriter/internal/domain"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUTOWRITER_"

// Default configuration values.
const (
	DefaultLanguage        = "en"
	DefaultDurationMs      = 5000
	DefaultMaxVisible      = 5
	DefaultLogLevel        = "warn"
	appName                = "autowriter"
	defaultCatalogFileName = "catalog.yaml"
	defaultLogFileName     = "autowriter.log"
	defaultConfigFileName  = "config.toml"
)

// Config represents the autowriter configuration.
type Config struct {
	Version       int                 `toml:"version"`
	Language      string              `toml:"language" env:"LANGUAGE"`
	Notifications NotificationsConfig `toml:"notifications" envPrefix:"NOTIFICATIONS_"`
	I18n          I18nConfig          `toml:"i18n" envPrefix:"I18N_"`
	Flash         FlashConfig         `toml:"flash" envPrefix:"FLASH_"`
	Log           LogConfig           `toml:"log" envPrefix:"LOG_"`
}

// NotificationsConfig holds toast settings.
type NotificationsConfig struct {
	DefaultDurationMs int `toml:"default_duration_ms" env:"DEFAULT_DURATION_MS"` // 0 = persistent
	MaxVisible        int `toml:"max_visible" env:"MAX_VISIBLE"`                 // 0 = unlimited
}

// I18nConfig holds translation catalog settings.
type I18nConfig struct {
	CatalogPath string `toml:"catalog_path" env:"CATALOG_PATH"` // empty = builtin only
	Watch       bool   `toml:"watch" env:"WATCH"`
}

// FlashConfig holds the startup flash message source.
type FlashConfig struct {
	Path string `toml:"path" env:"PATH"`
}

// LogConfig holds log output settings.
type LogConfig struct {
	File  string `toml:"file" env:"FILE"`
	Level string `toml:"level" env:"LEVEL"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentVersion,
		Language: DefaultLanguage,
		Notifications: NotificationsConfig{
			DefaultDurationMs: DefaultDurationMs,
			MaxVisible:        DefaultMaxVisible,
		},
		I18n: I18nConfig{
			CatalogPath: "",
			Watch:       false,
		},
		Log: LogConfig{
			File:  LogPath(),
			Level: DefaultLogLevel,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), defaultConfigFileName)
}

// ConfigDir returns the autowriter config directory.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName)
}

// CatalogPath returns the conventional location of a user catalog.
func CatalogPath() string {
	return filepath.Join(ConfigDir(), defaultCatalogFileName)
}

// LogPath returns the default log file path.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state.
func LogPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, appName, defaultLogFileName)
}

// LoadConfig loads configuration from path, then applies environment
// overrides. If path is empty the default config path is used. A missing
// file yields the defaults. envFiles are loaded with godotenv first; with
// none given a .env in the working directory is used if present.
func LoadConfig(path string, envFiles ...string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		parsed, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, &domain.ConfigError{Op: "parse", Path: path, Err: err}
		}
		cfg = MergeWithDefaults(parsed)
	case errors.Is(err, os.ErrNotExist):
		// No config file, use defaults
	default:
		return nil, &domain.ConfigError{Op: "read", Path: path, Err: err}
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, &domain.ConfigError{Op: "env", Err: err}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, &domain.ConfigError{Op: "env", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &domain.ConfigError{Op: "validate", Path: path, Err: err}
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		// The .env file might not exist and that's ok
		_ = godotenv.Load()
		return nil
	}
	return godotenv.Load(files...)
}

// ApplyEnv overlays AUTOWRITER_* environment variables onto cfg. Unset
// variables leave the current values alone.
func ApplyEnv(cfg *Config) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
}

// MergeWithDefaults fills in missing values with defaults. Zero durations
// are meaningful (persistent toasts) and are kept.
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Language == "" {
		cfg.Language = defaults.Language
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	cfg.Version = CurrentVersion

	return cfg
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error

	if c.Notifications.DefaultDurationMs < 0 {
		errs = append(errs, fmt.Errorf("notifications.default_duration_ms must be >= 0, got %d", c.Notifications.DefaultDurationMs))
	}
	if c.Notifications.MaxVisible < 0 {
		errs = append(errs, fmt.Errorf("notifications.max_visible must be >= 0, got %d", c.Notifications.MaxVisible))
	}
	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Errorf("language %q: %w", c.Language, err))
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if c.I18n.Watch && c.I18n.CatalogPath == "" {
		errs = append(errs, errors.New("i18n.watch requires i18n.catalog_path"))
	}

	return errors.Join(errs...)
}

// DefaultDuration returns the toast lifetime as a duration.
func (c *Config) DefaultDuration() time.Duration {
	return time.Duration(c.Notifications.DefaultDurationMs) * time.Millisecond
}

// SlogLevel returns the configured log level. Invalid values map to warn.
func (c *Config) SlogLevel() slog.Level {
	lvl, ok := parseLevel(c.Log.Level)
	if !ok {
		return slog.LevelWarn
	}
	return lvl
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

// Save writes the configuration to the specified path with version
// information. Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.ConfigError{Op: "save", Path: path, Err: err}
	}

	data, err := MarshalVersionedConfig(c)
	if err != nil {
		return &domain.ConfigError{Op: "save", Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &domain.ConfigError{Op: "save", Path: path, Err: err}
	}
	return nil
}
