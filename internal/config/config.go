// Package config loads rectplan's settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "~/.config/rectplan/config.toml"

// Storage locates the profile database.
type Storage struct {
	DBPath string `toml:"db_path"`
}

// Logging controls use-case logging on stderr.
type Logging struct {
	Level    string `toml:"level"`
	UseCases bool   `toml:"use_cases"`
}

// API configures `rectplan serve`.
type API struct {
	Bind               string `toml:"bind"`
	ReadTimeoutSeconds int    `toml:"read_timeout_seconds"`
}

// Config is the complete application configuration.
type Config struct {
	Storage Storage `toml:"storage"`
	Logging Logging `toml:"logging"`
	API     API     `toml:"api"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Storage: Storage{DBPath: "~/.rectplan/rectplan.db"},
		Logging: Logging{Level: "info"},
		API:     API{Bind: "127.0.0.1:8085", ReadTimeoutSeconds: 10},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads path (or the default location when empty), applies
// environment overrides, and returns the normalized config together with
// the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, "", false, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = defaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(expanded); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return expanded, true, nil
}

// applyEnv overrides file values with RECTPLAN_* variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("RECTPLAN_DB"); v != "" {
		c.Storage.DBPath = v
	}
	if v := getenv("RECTPLAN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getenv("RECTPLAN_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RECTPLAN_LOG_USE_CASES: %w", err)
		}
		c.Logging.UseCases = b
	}
	if v := getenv("RECTPLAN_API_BIND"); v != "" {
		c.API.Bind = v
	}
	return nil
}

func (c *Config) normalize() error {
	if c.Storage.DBPath != ":memory:" {
		p, err := expandPath(c.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("storage.db_path: %w", err)
		}
		c.Storage.DBPath = p
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("storage.db_path must be set")
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.API.Bind == "" {
		return errors.New("api.bind must be set")
	}
	if c.API.ReadTimeoutSeconds < 0 {
		return errors.New("api.read_timeout_seconds must not be negative")
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	lvl, _ := parseLevel(c.Logging.Level)
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// WriteSample writes the default configuration to path unless a file
// already exists there.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode sample config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
