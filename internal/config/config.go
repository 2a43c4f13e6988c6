// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Account AccountConfig `toml:"account"`
	Remote  RemoteConfig  `toml:"remote"`
	Storage StorageConfig `toml:"storage"`
	Grid    GridConfig    `toml:"grid"`
	UI      UIConfig      `toml:"ui"`
}

// AccountConfig identifies whose tasks this instance operates on.
type AccountConfig struct {
	Email string `toml:"email"`
}

// RemoteConfig holds the task service endpoint. When base_url is empty
// the application falls back to local SQLite storage.
type RemoteConfig struct {
	BaseURL string `toml:"base_url"` // e.g., "http://localhost:8000"
}

// StorageConfig holds local database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// GridConfig holds the calendar window and snapping settings.
type GridConfig struct {
	StartHour     int `toml:"start_hour"`      // first visible hour, e.g., 6
	EndHour       int `toml:"end_hour"`        // last visible hour, e.g., 23
	SnapMinutes   int `toml:"snap_minutes"`    // snap increment, e.g., 30
	PixelsPerHour int `toml:"pixels_per_hour"` // vertical scale of one hour
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "auto", "dark" or "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Email: "test@mulino.com",
		},
		Remote: RemoteConfig{
			BaseURL: "",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Grid: GridConfig{
			StartHour:     6,
			EndHour:       23,
			SnapMinutes:   30,
			PixelsPerHour: 60,
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "flowstate.db"
	}
	return filepath.Join(home, ".local", "share", "flowstate", "flowstate.db")
}

// DefaultConfigPath returns the default config file path. The
// FLOWSTATE_CONFIG environment variable overrides it.
func DefaultConfigPath() string {
	if v := os.Getenv("FLOWSTATE_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "flowstate", "config.toml")
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

	applyEnvOverrides(cfg)

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
			return nil // File doesn't exist, use defaults
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
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FLOWSTATE_EMAIL"); v != "" {
		cfg.Account.Email = v
	}
	if v := os.Getenv("FLOWSTATE_BASE_URL"); v != "" {
		cfg.Remote.BaseURL = v
	}
	if v := os.Getenv("FLOWSTATE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("FLOWSTATE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v, err := strconv.Atoi(os.Getenv("FLOWSTATE_START_HOUR")); err == nil {
		cfg.Grid.StartHour = v
	}
	if v, err := strconv.Atoi(os.Getenv("FLOWSTATE_END_HOUR")); err == nil {
		cfg.Grid.EndHour = v
	}
	if v, err := strconv.Atoi(os.Getenv("FLOWSTATE_SNAP_MINUTES")); err == nil {
		cfg.Grid.SnapMinutes = v
	}
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
	if c.Account.Email == "" {
		return errors.New("account email must be set")
	}
	if !strings.Contains(c.Account.Email, "@") {
		return fmt.Errorf("account email %q is not an address", c.Account.Email)
	}

	if c.Grid.StartHour < 0 || c.Grid.StartHour > 23 {
		return fmt.Errorf("start_hour %d out of range", c.Grid.StartHour)
	}
	if c.Grid.EndHour < 1 || c.Grid.EndHour > 24 {
		return fmt.Errorf("end_hour %d out of range", c.Grid.EndHour)
	}
	if c.Grid.StartHour >= c.Grid.EndHour {
		return errors.New("start_hour must be before end_hour")
	}
	if c.Grid.SnapMinutes <= 0 || 60%c.Grid.SnapMinutes != 0 {
		return fmt.Errorf("snap_minutes must divide an hour, got %d", c.Grid.SnapMinutes)
	}
	if c.Grid.PixelsPerHour <= 0 {
		return fmt.Errorf("pixels_per_hour must be positive, got %d", c.Grid.PixelsPerHour)
	}

	if c.Remote.BaseURL == "" && c.Storage.DBPath == "" {
		return errors.New("either remote base_url or storage db_path must be set")
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	return nil
}

// UseRemote reports whether a remote endpoint is configured.
func (c *Config) UseRemote() bool {
	return c.Remote.BaseURL != ""
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
