// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/quizrun/internal/output"
	"github.com/jeranaias/quizrun/internal/storage"
	"github.com/jeranaias/quizrun/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete quizrun configuration.
type Config struct {
	// Version of the config file format
	Version string `toml:"version" json:"version"`

	// Storage configuration
	Storage StorageConfig `toml:"storage" json:"storage"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// StorageConfig selects the quiz store.
type StorageConfig struct {
	// Driver is "sqlite", "postgres", "json" or "memory"
	Driver string `toml:"driver" json:"driver"`
	// DSN is the database DSN, or the file path for sqlite and json.
	// Empty means a file in the config directory.
	DSN string `toml:"dsn" json:"dsn"`
	// Seed inserts starter quizzes into an empty store
	Seed bool `toml:"seed" json:"seed"`
}

// UIConfig contains terminal settings.
type UIConfig struct {
	// Prompt is the command prompt text; plain text only
	Prompt string `toml:"prompt" json:"prompt"`
	// Color is "auto", "always" or "never"
	Color string `toml:"color" json:"color"`
	// Markdown renders help and credits with glamour
	Markdown bool `toml:"markdown" json:"markdown"`
	// History keeps command history between sessions
	History bool `toml:"history" json:"history"`
	// HistoryFile overrides the default history path
	HistoryFile string `toml:"history_file" json:"history_file"`
}

// LogConfig controls the event log.
type LogConfig struct {
	// Enabled writes events to File; otherwise they are discarded
	Enabled bool `toml:"enabled" json:"enabled"`
	// File overrides the default log path
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// CurrentVersion is the config format written by Save.
const CurrentVersion = "1"

// DefaultPrompt is shown before each command.
const DefaultPrompt = "quiz > "

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,

		Storage: StorageConfig{
			Driver: string(storage.DriverSQLite),
			DSN:    "", // resolved by ResolvedDSN
			Seed:   true,
		},

		UI: UIConfig{
			Prompt:   DefaultPrompt,
			Color:    string(output.ColorAuto),
			Markdown: true,
			History:  true,
		},

		Log: LogConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the quizrun configuration directory path.
// QUIZRUN_HOME overrides the default ~/.quizrun.
func ConfigDir() (string, error) {
	if dir := os.Getenv("QUIZRUN_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".quizrun"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// inConfigDir joins name onto the config directory.
func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files may hold database credentials and should be 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// RESOLVED PATHS
// =============================================================================

// ResolvedDSN returns the storage DSN, defaulting file-backed drivers to a
// file in the config directory.
func (c *Config) ResolvedDSN() (string, error) {
	if c.Storage.DSN != "" {
		return c.Storage.DSN, nil
	}
	driver, err := storage.ParseDriver(c.Storage.Driver)
	if err != nil {
		return "", err
	}
	switch driver {
	case storage.DriverSQLite:
		return inConfigDir("quizzes.db")
	case storage.DriverJSON:
		return inConfigDir("quizzes.json")
	default:
		return "", nil
	}
}

// ResolvedHistoryFile returns the history path, or "" when history is off.
func (c *Config) ResolvedHistoryFile() (string, error) {
	if !c.UI.History {
		return "", nil
	}
	if c.UI.HistoryFile != "" {
		return c.UI.HistoryFile, nil
	}
	return inConfigDir("history")
}

// ResolvedLogFile returns the log path, or "" when logging is off.
func (c *Config) ResolvedLogFile() (string, error) {
	if !c.Log.Enabled {
		return "", nil
	}
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return inConfigDir("quizrun.log")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	return finish(cfg)
}

// LoadTOML loads configuration from a TOML file into cfg.
// Keys missing from the file keep their current values.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// finish applies env overrides and validates.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := fillDefaults(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = defaults.Storage.Driver
	}
	if cfg.UI.Prompt == "" {
		cfg.UI.Prompt = defaults.UI.Prompt
	}
	if cfg.UI.Color == "" {
		cfg.UI.Color = defaults.UI.Color
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# quizrun configuration file")
	fmt.Fprintln(&buf, "# Generated by quizrun - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
// Every invalid field is reported, not only the first.
func (c *Config) Validate() error {
	var errs ValidateErrors

	driver, err := storage.ParseDriver(c.Storage.Driver)
	if err != nil {
		errs = append(errs, ValidationError{
			Field:   "storage.driver",
			Message: fmt.Sprintf("invalid driver '%s', must be one of: sqlite, postgres, json, memory", c.Storage.Driver),
		})
	}

	if driver == storage.DriverPostgres {
		if c.Storage.DSN == "" {
			errs = append(errs, ValidationError{
				Field:   "storage.dsn",
				Message: "required for the postgres driver",
			})
		} else if strings.Contains(c.Storage.DSN, "://") {
			if _, err := url.Parse(c.Storage.DSN); err != nil {
				errs = append(errs, ValidationError{
					Field:   "storage.dsn",
					Message: "invalid URL",
				})
			}
		}
	}

	if strings.TrimSpace(c.UI.Prompt) == "" {
		errs = append(errs, ValidationError{
			Field:   "ui.prompt",
			Message: "must not be empty",
		})
	} else if strings.IndexFunc(c.UI.Prompt, unicode.IsControl) >= 0 {
		// The line editor rejects prompts with escape or control characters.
		errs = append(errs, ValidationError{
			Field:   "ui.prompt",
			Message: "must not contain control characters",
		})
	}

	if _, err := output.ParseColorMode(c.UI.Color); err != nil {
		errs = append(errs, ValidationError{
			Field:   "ui.color",
			Message: fmt.Sprintf("invalid color mode '%s', must be one of: auto, always, never", c.UI.Color),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - QUIZRUN_DB_DRIVER: overrides storage.driver
//   - QUIZRUN_DB_DSN: overrides storage.dsn
//   - QUIZRUN_PROMPT: overrides ui.prompt
//   - QUIZRUN_LOG_FILE: overrides log.file and enables logging
//
// NO_COLOR and FORCE_COLOR are read by the output package.
func (c *Config) ApplyEnvOverrides() {
	if driver := os.Getenv("QUIZRUN_DB_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}

	if dsn := os.Getenv("QUIZRUN_DB_DSN"); dsn != "" {
		c.Storage.DSN = dsn
	}

	if prompt := os.Getenv("QUIZRUN_PROMPT"); prompt != "" {
		c.UI.Prompt = prompt
	}

	if file := os.Getenv("QUIZRUN_LOG_FILE"); file != "" {
		c.Log.File = file
		c.Log.Enabled = true
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for debugging.
// SECURITY: The DSN password is redacted.
func (c *Config) String() string {
	safe := c.Clone()
	safe.Storage.DSN = redactDSN(safe.Storage.DSN)

	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// redactDSN hides the password of a URL-style DSN.
func redactDSN(dsn string) string {
	if !strings.Contains(dsn, "://") {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "[REDACTED]"
	}
	return u.Redacted()
}
