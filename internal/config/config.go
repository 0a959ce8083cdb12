package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	ImageBaseURL      string        `mapstructure:"image_base_url"`
	Language          string        `mapstructure:"language"` // e.g. "ko-KR"; also the title collation locale
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// StorageConfig holds local key-value store configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultView     string `mapstructure:"default_view"`     // "table" or "infinite"
	ScrollThreshold int    `mapstructure:"scroll_threshold"` // rows from the bottom that trigger the next page
	TopButtonRows   int    `mapstructure:"top_button_rows"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// View modes for the popular list
const (
	ViewTable    = "table"
	ViewInfinite = "infinite"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			Language:          "ko-KR",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 20,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "marquee.db"),
		},
		UI: UIConfig{
			DefaultView:     ViewTable,
			ScrollThreshold: 5,
			TopButtonRows:   20,
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), "marquee.log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// ConfigFile returns the path SaveConfig writes to
func ConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// LoadConfig loads configuration from file and environment.
// A .env file in the working directory is read first, so MARQUEE_* values
// can live there during development.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	cfg := DefaultConfig()
	v := newViper()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	// Environment variable overrides: MARQUEE_TMDB_LANGUAGE -> tmdb.language
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper knows about
	applyValues(v.SetDefault, DefaultConfig())
	return v
}

// normalize repairs values that would break the UI
func (c *Config) normalize() {
	if c.UI.DefaultView != ViewTable && c.UI.DefaultView != ViewInfinite {
		c.UI.DefaultView = ViewTable
	}
	if c.UI.ScrollThreshold <= 0 {
		c.UI.ScrollThreshold = 5
	}
	if c.UI.TopButtonRows <= 0 {
		c.UI.TopButtonRows = 20
	}
}

func applyValues(set func(key string, value any), cfg *Config) {
	set("tmdb.base_url", cfg.TMDB.BaseURL)
	set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	set("tmdb.language", cfg.TMDB.Language)
	set("tmdb.timeout", cfg.TMDB.Timeout.String())
	set("tmdb.requests_per_second", cfg.TMDB.RequestsPerSecond)

	set("storage.path", cfg.Storage.Path)

	set("ui.default_view", cfg.UI.DefaultView)
	set("ui.scroll_threshold", cfg.UI.ScrollThreshold)
	set("ui.top_button_rows", cfg.UI.TopButtonRows)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
	set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	set("logging.max_backups", cfg.Logging.MaxBackups)
	set("logging.max_age_days", cfg.Logging.MaxAgeDays)
}

// Setting is one flattened configuration value
type Setting struct {
	Key   string
	Value any
}

// Settings flattens the configuration to its file keys in a fixed order
func (c *Config) Settings() []Setting {
	var out []Setting
	applyValues(func(key string, value any) {
		out = append(out, Setting{Key: key, Value: value})
	}, c)
	return out
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	return SaveConfigAs(cfg, ConfigFile())
}

// SaveConfigAs saves the configuration to path
func SaveConfigAs(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	applyValues(v.Set, cfg)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
