package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all tfsaroom configuration.
type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	TUI        TUIConfig        `toml:"tui"`
	Limits     LimitsConfig     `toml:"limits"`
}

// SimulationConfig holds the inputs the engine is run with by default.
type SimulationConfig struct {
	Year               int     `toml:"year"`
	StartingRoom       float64 `toml:"starting_room"`
	DefaultInstitution string  `toml:"default_institution,omitempty"`
}

// TUIConfig holds dashboard preferences.
type TUIConfig struct {
	Theme               string `toml:"theme"`
	AutoRefresh         bool   `toml:"auto_refresh"`
	RefreshIntervalSecs int    `toml:"refresh_interval_secs"`
}

// LimitsConfig holds the annual-limit feed URL and user overrides.
// Annual maps a year (as a string key, TOML requirement) to a dollar limit.
type LimitsConfig struct {
	FeedURL string             `toml:"feed_url,omitempty"`
	Annual  map[string]float64 `toml:"annual,omitempty"`
}

// DefaultConfig returns the default configuration. The simulation year
// defaults to the current UTC year.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			Year:               time.Now().UTC().Year(),
			DefaultInstitution: "Imported",
		},
		TUI: TUIConfig{
			Theme:               "flexoki-dark",
			RefreshIntervalSecs: 30,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tfsaroom")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tfsaroom")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the directory holding the ledger database.
// TFSAROOM_DATA_DIR overrides the XDG resolution.
func DataDir() string {
	if dir := os.Getenv("TFSAROOM_DATA_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tfsaroom")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tfsaroom")
}

// DataPath returns the full path to the ledger database.
func DataPath() string {
	return filepath.Join(DataDir(), "ledger.db")
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tfsaroom")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "tfsaroom")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// FeedURL returns the limits feed URL from env var or config, in that order,
// falling back to the published default.
func FeedURL(cfg Config) string {
	if url := os.Getenv("TFSAROOM_FEED_URL"); url != "" {
		return url
	}
	if cfg.Limits.FeedURL != "" {
		return cfg.Limits.FeedURL
	}
	return DefaultFeedURL
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
